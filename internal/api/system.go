package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/openlaptop/msiec-core/internal/audit"
	"github.com/openlaptop/msiec-core/internal/telemetry"
)

// handleFirmware returns the EC firmware identity and the profile it
// resolved to.
func (s *Server) handleFirmware(w http.ResponseWriter, _ *http.Request) {
	version, err := s.registry.Show("fw_version")
	if err != nil {
		writeAttributeError(w, err)
		return
	}

	// Some firmwares leave the date registers blank; that is not fatal.
	releaseDate, err := s.registry.Show("fw_release_date")
	if err != nil {
		releaseDate = ""
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"version":      version,
		"release_date": releaseDate,
		"profile":      s.prof.Name,
	})
}

// handleTelemetry reads the thermal and fan registers on demand. This
// is independent of the periodic sampler, so it works even when
// background telemetry is disabled.
func (s *Server) handleTelemetry(w http.ResponseWriter, _ *http.Request) {
	sample := telemetry.Sample{Timestamp: time.Now().UTC()}
	sample.CPUTemperature = s.readMetric("cpu/realtime_temperature")
	sample.CPUFanSpeed = s.readMetric("cpu/realtime_fan_speed")
	sample.GPUTemperature = s.readMetric("gpu/realtime_temperature")
	sample.GPUFanSpeedRaw = s.readMetric("gpu/realtime_fan_speed")

	writeJSON(w, http.StatusOK, sample)
}

// readMetric reads a numeric attribute, returning nil when the model
// does not expose it or the read faulted.
func (s *Server) readMetric(name string) *int {
	value, err := s.registry.Show(name)
	if err != nil {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &n
}

// handleHistory returns the attribute write audit trail.
//
// Query parameters:
//   - attribute: filter by attribute name
//   - outcome: filter by outcome (applied, rejected, failed)
//   - limit, offset: pagination
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.audit == nil {
		writeNotFound(w, "write history is not enabled")
		return
	}

	filter := audit.Filter{
		Attribute: r.URL.Query().Get("attribute"),
		Outcome:   r.URL.Query().Get("outcome"),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeBadRequest(w, "limit must be a non-negative integer")
			return
		}
		filter.Limit = n
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeBadRequest(w, "offset must be a non-negative integer")
			return
		}
		filter.Offset = n
	}

	result, err := s.audit.List(r.Context(), filter)
	if err != nil {
		s.logger.Error("history query failed", "error", err)
		writeInternalError(w, "failed to query write history")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
