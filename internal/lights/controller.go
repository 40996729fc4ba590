package lights

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"smart-stadium/internal/effects"
	"smart-stadium/internal/logging"
)

// Controller is the lights facade: it fans effects out through the
// dispatcher, folds outcomes back into the registry, and returns devices to
// default lighting once a timed effect has played out.
type Controller struct {
	registry   *Registry
	dispatcher *Dispatcher
	logger     *slog.Logger
	now        func() time.Time

	mu      sync.Mutex
	restore *time.Timer
	closed  bool
}

func NewController(registry *Registry, dispatcher *Dispatcher, logger *slog.Logger) *Controller {
	return &Controller{
		registry:   registry,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// Celebrate plays the effect on every device and schedules the return to
// default lighting for timed effects. Holding effects (red zone) cancel any
// pending restore instead.
func (c *Controller) Celebrate(ctx context.Context, effect effects.Effect) map[string]Outcome {
	outcomes := c.dispatcher.Dispatch(ctx, effect, c.registry.All())
	c.registry.ApplyOutcomes(outcomes, c.now())
	c.scheduleRestore(effect)

	logging.Info(c.logger, "celebration dispatched",
		logging.FieldEvent, effect.Label,
		logging.FieldPattern, string(effect.Pattern),
		logging.FieldCount, len(outcomes))
	return outcomes
}

// RestoreDefault returns every device to the resting warm-white state.
func (c *Controller) RestoreDefault(ctx context.Context) map[string]Outcome {
	c.cancelRestore()
	outcomes := c.dispatcher.Dispatch(ctx, effects.DefaultLighting(), c.registry.All())
	c.registry.ApplyOutcomes(outcomes, c.now())
	return outcomes
}

// TestDevice sends the short verification pattern to one device, enabled or
// not; an operator asking for a test overrides the celebration flag.
func (c *Controller) TestDevice(ctx context.Context, id string) (Outcome, error) {
	state, ok := c.registry.Get(id)
	if !ok {
		return Outcome{}, fmt.Errorf("device %q not configured", id)
	}

	dev := state.Device
	dev.Enabled = true
	outcomes := c.dispatcher.Dispatch(ctx, effects.DeviceTest(), []Device{dev})
	c.registry.ApplyOutcomes(outcomes, c.now())
	return outcomes[id], nil
}

// Registry exposes the device registry for read surfaces.
func (c *Controller) Registry() *Registry {
	return c.registry
}

// Shutdown cancels any pending restore and leaves the room in default
// lighting.
func (c *Controller) Shutdown(ctx context.Context) {
	c.mu.Lock()
	c.closed = true
	if c.restore != nil {
		c.restore.Stop()
		c.restore = nil
	}
	c.mu.Unlock()

	c.dispatcher.Dispatch(ctx, effects.DefaultLighting(), c.registry.All())
}

func (c *Controller) scheduleRestore(effect effects.Effect) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.restore != nil {
		c.restore.Stop()
		c.restore = nil
	}
	if c.closed || effect.DurationMs <= 0 {
		return
	}

	wait := time.Duration(effect.DurationMs) * time.Millisecond
	c.restore = time.AfterFunc(wait, func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.dispatcher.deadline)
		defer cancel()
		c.RestoreDefault(ctx)
	})
}

func (c *Controller) cancelRestore() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.restore != nil {
		c.restore.Stop()
		c.restore = nil
	}
}
