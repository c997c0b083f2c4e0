package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/openlaptop/msiec-core/internal/attr"
)

// debugRegisterRequest is the body for POST /debug/register. Exactly one
// of the fields must be set: "set" writes a register from a "xx=xx"
// pair, "select" picks the register that GET /debug/register reads.
type debugRegisterRequest struct {
	Set    string `json:"set,omitempty"`
	Select string `json:"select,omitempty"`
}

// handleDebugDump returns the full 256-byte register file as a hex grid.
func (s *Server) handleDebugDump(w http.ResponseWriter, _ *http.Request) {
	grid, err := s.debug.DumpGrid()
	if err != nil {
		writeError(w, http.StatusBadGateway, ErrCodeECFault, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // Best-effort write to response
	w.Write([]byte(grid))
}

// handleDebugGet reads the currently selected register.
func (s *Server) handleDebugGet(w http.ResponseWriter, _ *http.Request) {
	value, err := s.debug.Get()
	if err != nil {
		writeError(w, http.StatusBadGateway, ErrCodeECFault, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"value": value})
}

// handleDebugSet writes or selects a raw register.
func (s *Server) handleDebugSet(w http.ResponseWriter, r *http.Request) {
	var req debugRegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	switch {
	case req.Set != "" && req.Select != "":
		writeBadRequest(w, "set and select are mutually exclusive")
	case req.Set != "":
		if err := s.debug.Set(req.Set); err != nil {
			writeDebugError(w, err)
			return
		}
		s.logger.Warn("debug register write", "input", req.Set)
		writeJSON(w, http.StatusOK, map[string]string{"set": req.Set})
	case req.Select != "":
		if err := s.debug.Select(req.Select); err != nil {
			writeDebugError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"selected": req.Select})
	default:
		writeBadRequest(w, "one of set or select is required")
	}
}

func writeDebugError(w http.ResponseWriter, err error) {
	if errors.Is(err, attr.ErrInvalidValue) {
		writeError(w, http.StatusUnprocessableEntity, ErrCodeValidation, err.Error())
		return
	}
	writeError(w, http.StatusBadGateway, ErrCodeECFault, err.Error())
}
