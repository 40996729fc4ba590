package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"smart-stadium/internal/lights"
	"smart-stadium/internal/logging"
)

// DeviceHandler exposes the device fleet: listing, runtime enable/disable,
// per-device test blinks, and the return to default lighting.
type DeviceHandler struct {
	controller *lights.Controller
	logger     *slog.Logger
}

// NewDeviceHandler constructs a DeviceHandler.
func NewDeviceHandler(controller *lights.Controller, logger *slog.Logger) *DeviceHandler {
	return &DeviceHandler{controller: controller, logger: logger}
}

type deviceListResponse struct {
	Count   int                  `json:"count"`
	Devices []lights.DeviceState `json:"devices"`
}

// List returns every configured device with its registry state.
func (h *DeviceHandler) List(w http.ResponseWriter, r *http.Request) {
	devices := h.controller.Registry().List()
	writeJSON(w, http.StatusOK, deviceListResponse{Count: len(devices), Devices: devices}, h.logger)
}

type toggleRequest struct {
	Enabled *bool `json:"enabled"`
}

// Toggle flips or sets a device's enabled flag. An empty body inverts the
// current state; {"enabled": bool} sets it explicitly.
func (h *DeviceHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	registry := h.controller.Registry()

	current, ok := registry.Get(id)
	if !ok {
		writeError(w, r, http.StatusNotFound, "device not found", h.logger)
		return
	}

	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	target := !current.Enabled
	if req.Enabled != nil {
		target = *req.Enabled
	}

	state, err := registry.SetEnabled(id, target)
	if err != nil {
		writeError(w, r, http.StatusNotFound, "device not found", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, state, h.logger)
}

type testResponse struct {
	Device  string         `json:"device"`
	Outcome lights.Outcome `json:"outcome"`
}

// Test blinks one device so an operator can verify wiring, enabled or not.
func (h *DeviceHandler) Test(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	outcome, err := h.controller.TestDevice(r.Context(), id)
	if err != nil {
		writeError(w, r, http.StatusNotFound, "device not found", h.logger)
		return
	}
	logging.Info(loggerFromContext(r, h.logger), "device test requested",
		slog.String(logging.FieldDevice, id),
		slog.String(logging.FieldState, string(outcome.Status)),
	)
	writeJSON(w, http.StatusOK, testResponse{Device: id, Outcome: outcome}, h.logger)
}

type outcomesResponse struct {
	Status   string                    `json:"status"`
	Outcomes map[string]lights.Outcome `json:"outcomes"`
}

// DefaultLighting returns every enabled device to the resting state.
func (h *DeviceHandler) DefaultLighting(w http.ResponseWriter, r *http.Request) {
	outcomes := h.controller.RestoreDefault(r.Context())
	writeJSON(w, http.StatusOK, outcomesResponse{Status: "ok", Outcomes: outcomes}, h.logger)
}
