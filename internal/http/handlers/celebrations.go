package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"smart-stadium/internal/domain/contests"
	"smart-stadium/internal/domain/events"
	"smart-stadium/internal/effects"
	"smart-stadium/internal/history"
	"smart-stadium/internal/lights"
	"smart-stadium/internal/logging"
)

// CelebrationHandler runs operator-triggered celebrations through the same
// resolve, dispatch, and record path as live events.
type CelebrationHandler struct {
	resolver   *effects.Resolver
	controller *lights.Controller
	recorder   *history.Recorder
	logger     *slog.Logger
	now        nowFunc
}

// NewCelebrationHandler constructs a CelebrationHandler.
func NewCelebrationHandler(resolver *effects.Resolver, controller *lights.Controller, recorder *history.Recorder, logger *slog.Logger) *CelebrationHandler {
	return &CelebrationHandler{
		resolver:   resolver,
		controller: controller,
		recorder:   recorder,
		logger:     logger,
		now:        time.Now,
	}
}

type triggerRequest struct {
	EventKind string `json:"eventKind"`
	Sport     string `json:"sport,omitempty"`
	Team      string `json:"team"`
	TeamName  string `json:"teamName,omitempty"`
	Delta     int    `json:"delta,omitempty"`
	PlayType  string `json:"playType,omitempty"`
}

type triggerResponse struct {
	Status   string                    `json:"status"`
	Effect   effects.Effect            `json:"effect"`
	Outcomes map[string]lights.Outcome `json:"outcomes"`
}

var triggerKinds = map[events.Kind]struct{}{
	events.KindScoreChanged:   {},
	events.KindScoringPlay:    {},
	events.KindGameEnded:      {},
	events.KindRedZoneEntered: {},
	events.KindRedZoneCleared: {},
}

// Trigger plays a celebration on demand. The request names the event kind and
// team; the payload is resolved, dispatched, and recorded exactly as a live
// event would be.
func (h *CelebrationHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	var req triggerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	kind := events.Kind(strings.ToUpper(strings.TrimSpace(req.EventKind)))
	if _, ok := triggerKinds[kind]; !ok {
		writeError(w, r, http.StatusBadRequest, "unknown event kind", h.logger)
		return
	}

	ev := events.Event{
		Kind:       kind,
		Sport:      contests.Sport(strings.ToLower(strings.TrimSpace(req.Sport))),
		Team:       contests.Team{Name: req.TeamName, Abbreviation: strings.ToUpper(strings.TrimSpace(req.Team))},
		Delta:      req.Delta,
		PlayType:   events.PlayType(strings.ToLower(strings.TrimSpace(req.PlayType))),
		DetectedAt: h.now(),
	}

	effect, ok := h.resolver.Resolve(ev)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "event has no effect", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	outcomes := h.controller.Celebrate(r.Context(), effect)

	if err := h.recorder.Append(history.Record{
		Sport:      ev.Sport,
		EventKind:  ev.Kind,
		Team:       ev.Team,
		Effect:     effect,
		Outcomes:   outcomes,
		Trigger:    history.TriggerManual,
		RecordedAt: ev.DetectedAt,
	}); err != nil {
		logging.Warn(logger, "celebration record failed", slog.Any("err", err))
	}

	logging.Info(logger, "manual celebration fired",
		slog.String(logging.FieldEvent, string(ev.Kind)),
		slog.String(logging.FieldTeam, ev.Team.Abbreviation),
		slog.String(logging.FieldPattern, string(effect.Pattern)),
	)
	writeJSON(w, http.StatusOK, triggerResponse{Status: "celebrated", Effect: effect, Outcomes: outcomes}, h.logger)
}
