package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"smart-stadium/internal/app/status"
	"smart-stadium/internal/domain/contests"
	"smart-stadium/internal/history"
	"smart-stadium/internal/logging"
	"smart-stadium/internal/timeutil"
)

type nowFunc func() time.Time

// MonitorControl is the slice of the monitor the pause/resume endpoints need.
type MonitorControl interface {
	Pause()
	Resume()
}

// Handler serves the read-only status surface plus monitor pause/resume.
type Handler struct {
	svc     *status.Service
	control MonitorControl
	logger  *slog.Logger
	now     nowFunc
}

// NewHandler constructs a Handler with defaults.
func NewHandler(svc *status.Service, control MonitorControl, logger *slog.Logger) *Handler {
	return &Handler{
		svc:     svc,
		control: control,
		logger:  logger,
		now:     time.Now,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.svc == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	st := h.svc.MonitorStatus()
	if st.IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := st.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// Status returns the aggregated operational report.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Report(), h.logger)
}

// Contests returns the latest snapshot per tracked contest.
func (h *Handler) Contests(w http.ResponseWriter, r *http.Request) {
	payload := contests.NewScoreboardResponse(timeutil.FormatDate(h.now()), h.svc.Contests())
	writeJSON(w, http.StatusOK, payload, h.logger)
}

type historyResponse struct {
	Count   int              `json:"count"`
	Records []history.Record `json:"records"`
}

// History returns recent celebration records, newest first.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, r, http.StatusBadRequest, "invalid limit", h.logger)
			return
		}
		limit = n
	}

	records, err := h.svc.History(limit)
	if err != nil {
		logger := loggerFromContext(r, h.logger)
		logging.Warn(logger, "history read failed", slog.Any("err", err))
		writeError(w, r, http.StatusInternalServerError, "history unavailable", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{Count: len(records), Records: records}, h.logger)
}

// Pause suspends celebration processing; the loop keeps ticking but skips work.
func (h *Handler) Pause(w http.ResponseWriter, r *http.Request) {
	if h.control == nil {
		writeError(w, r, http.StatusServiceUnavailable, "monitor not configured", h.logger)
		return
	}
	h.control.Pause()
	logging.Info(loggerFromContext(r, h.logger), "monitoring paused")
	writeJSON(w, http.StatusOK, map[string]string{"status": "paused"}, h.logger)
}

// Resume reverses a pause.
func (h *Handler) Resume(w http.ResponseWriter, r *http.Request) {
	if h.control == nil {
		writeError(w, r, http.StatusServiceUnavailable, "monitor not configured", h.logger)
		return
	}
	h.control.Resume()
	logging.Info(loggerFromContext(r, h.logger), "monitoring resumed")
	writeJSON(w, http.StatusOK, map[string]string{"status": "active"}, h.logger)
}
