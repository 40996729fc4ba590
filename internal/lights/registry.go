package lights

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"smart-stadium/internal/logging"
)

// Registry tracks configured devices, their enabled flags, and the
// reachability learned from dispatch outcomes. Reachability for a device is
// only ever written from that device's own outcome.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	devices map[string]*deviceEntry
	logger  *slog.Logger
}

type deviceEntry struct {
	device      Device
	reachable   *bool
	lastOutcome OutcomeStatus
	lastAttempt time.Time
}

func NewRegistry(devices []Device, logger *slog.Logger) *Registry {
	r := &Registry{
		devices: make(map[string]*deviceEntry, len(devices)),
		logger:  logger,
	}
	for _, d := range devices {
		r.order = append(r.order, d.ID)
		r.devices[d.ID] = &deviceEntry{device: d}
	}
	return r
}

// All returns every configured device in configuration order.
func (r *Registry) All() []Device {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Device, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.devices[id].device)
	}
	return out
}

// List returns the registry's view of every device in configuration order.
func (r *Registry) List() []DeviceState {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]DeviceState, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.devices[id].state())
	}
	return out
}

// Get returns one device's state.
func (r *Registry) Get(id string) (DeviceState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.devices[id]
	if !ok {
		return DeviceState{}, false
	}
	return e.state(), true
}

// SetEnabled toggles whether a device participates in celebrations.
func (r *Registry) SetEnabled(id string, enabled bool) (DeviceState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.devices[id]
	if !ok {
		return DeviceState{}, fmt.Errorf("device %q not configured", id)
	}
	e.device.Enabled = enabled
	logging.Info(r.logger, "device toggled",
		logging.FieldDevice, id,
		logging.FieldState, fmt.Sprintf("enabled=%t", enabled))
	return e.state(), nil
}

// Counts reports configured, enabled, and known-reachable device totals.
func (r *Registry) Counts() (total, enabled, reachable int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.devices {
		total++
		if e.device.Enabled {
			enabled++
		}
		if e.reachable != nil && *e.reachable {
			reachable++
		}
	}
	return total, enabled, reachable
}

// ApplyOutcomes folds dispatch results into per-device reachability. Skipped
// devices were never attempted, so their state is left alone.
func (r *Registry) ApplyOutcomes(outcomes map[string]Outcome, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, o := range outcomes {
		e, ok := r.devices[id]
		if !ok || o.Status == OutcomeSkipped {
			continue
		}
		reachable := o.Status == OutcomeSucceeded
		e.reachable = &reachable
		e.lastOutcome = o.Status
		e.lastAttempt = at
	}
}

func (e *deviceEntry) state() DeviceState {
	s := DeviceState{Device: e.device, LastAttempt: e.lastAttempt}
	if e.reachable != nil {
		v := *e.reachable
		s.Reachable = &v
	}
	if e.lastOutcome != "" {
		s.LastOutcome = string(e.lastOutcome)
	}
	return s
}
