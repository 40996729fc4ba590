package handlers

import (
	"log/slog"
	"net/http"
	"os"

	"smart-stadium/internal/http/requestutil"
	"smart-stadium/internal/logging"
)

// PollForcer is the slice of the monitor the admin surface needs.
type PollForcer interface {
	ForcePoll() bool
}

// AdminHandler exposes admin-only endpoints (e.g., forcing a poll cycle).
type AdminHandler struct {
	monitor PollForcer
	token   string
	logger  *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(monitor PollForcer, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		monitor: monitor,
		token:   token,
		logger:  logger,
	}
}

// ForcePoll queues an immediate poll cycle outside the regular cadence.
// Guarded by ADMIN_TOKEN env; returns 401 if missing/invalid.
func (h *AdminHandler) ForcePoll(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String("path", r.URL.Path),
			slog.String("client_ip", clientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.monitor == nil {
		writeError(w, r, http.StatusServiceUnavailable, "monitor not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	if !h.monitor.ForcePoll() {
		writeError(w, r, http.StatusConflict, "monitor not accepting polls", logger)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"}, logger)
	logging.Info(logger, "admin poll queued")
}

// AdminTokenFromEnv reads ADMIN_TOKEN (optional).
func AdminTokenFromEnv() string {
	return os.Getenv("ADMIN_TOKEN")
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+h.token
}

func clientIP(r *http.Request) string {
	return requestutil.ClientIP(r)
}
