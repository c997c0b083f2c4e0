package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openlaptop/msiec-core/internal/attr"
	"github.com/openlaptop/msiec-core/internal/audit"
)

// AttributeInfo is one entry in the attribute listing.
type AttributeInfo struct {
	Name            string  `json:"name"`
	Group           string  `json:"group,omitempty"`
	Writable        bool    `json:"writable"`
	AddressVerified bool    `json:"address_verified"`
	Value           *string `json:"value,omitempty"`
	Error           string  `json:"error,omitempty"`
}

// AttributeValue is the response for a single attribute read.
type AttributeValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// setAttributeRequest is the body for an attribute write.
type setAttributeRequest struct {
	Value string `json:"value"`
}

// handleListAttributes returns every attribute this model exposes,
// with a best-effort current value for each.
func (s *Server) handleListAttributes(w http.ResponseWriter, _ *http.Request) {
	attrs := s.registry.List()
	infos := make([]AttributeInfo, 0, len(attrs))

	for _, a := range attrs {
		info := AttributeInfo{
			Name:            a.Name,
			Group:           a.Group,
			Writable:        a.Writable,
			AddressVerified: a.AddressVerified,
		}
		value, err := a.Show()
		if err != nil {
			info.Error = err.Error()
		} else {
			info.Value = &value
		}
		infos = append(infos, info)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"attributes": infos,
		"count":      len(infos),
	})
}

// handleGetAttribute reads a single attribute.
func (s *Server) handleGetAttribute(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")

	value, err := s.registry.Show(name)
	if err != nil {
		writeAttributeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AttributeValue{Name: name, Value: value})
}

// handleSetAttribute writes a single attribute. Every attempt is
// recorded in the audit trail, including rejected and failed writes.
func (s *Server) handleSetAttribute(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")

	var req setAttributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	previous, prevErr := s.registry.Show(name)

	if err := s.registry.Store(name, req.Value); err != nil {
		s.recordWrite(r, name, req.Value, writeOutcome(err), err.Error())
		writeAttributeError(w, err)
		return
	}

	detail := ""
	if prevErr == nil {
		detail = "previous: " + previous
	}
	s.recordWrite(r, name, req.Value, audit.OutcomeApplied, detail)

	// Read back so the confirmed value is what gets broadcast. Some
	// writes land verbatim, thresholds and modes do not.
	confirmed, err := s.registry.Show(name)
	if err != nil {
		confirmed = req.Value
	}

	if s.hub != nil {
		s.hub.BroadcastAttributeChange(name, confirmed)
	}
	if s.state != nil {
		s.state.PublishAttributeState(name, confirmed)
	}

	writeJSON(w, http.StatusOK, AttributeValue{Name: name, Value: confirmed})
}

// writeOutcome classifies a store error for the audit trail. Validation
// failures never touched the EC; everything else did, or tried to.
func writeOutcome(err error) string {
	switch {
	case errors.Is(err, attr.ErrInvalidValue),
		errors.Is(err, attr.ErrReadOnly),
		errors.Is(err, attr.ErrNotSupported),
		errors.Is(err, attr.ErrAddressUnknown):
		return audit.OutcomeRejected
	default:
		return audit.OutcomeFailed
	}
}

// recordWrite appends a write attempt to the audit trail.
func (s *Server) recordWrite(r *http.Request, name, value, outcome, detail string) {
	if s.audit == nil {
		return
	}

	entry := &audit.Entry{
		Attribute: name,
		Value:     value,
		Outcome:   outcome,
		Detail:    detail,
		Source:    "api",
	}
	if err := s.audit.Record(r.Context(), entry); err != nil {
		s.logger.Warn("audit record failed", "attribute", name, "error", err)
	}
}
