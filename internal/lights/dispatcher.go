package lights

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"time"

	"smart-stadium/internal/effects"
	"smart-stadium/internal/logging"
	"smart-stadium/internal/metrics"
)

const (
	defaultCommandTimeout   = 2 * time.Second
	defaultRetryDelay       = 250 * time.Millisecond
	defaultDispatchDeadline = 10 * time.Second
)

// Dispatcher fans one effect out to a set of devices. Every enabled device is
// attempted concurrently and independently; a slow or dead device never holds
// up the rest.
type Dispatcher struct {
	commander      Commander
	logger         *slog.Logger
	metrics        *metrics.Recorder
	commandTimeout time.Duration
	retryDelay     time.Duration
	deadline       time.Duration
	now            func() time.Time
}

// DispatcherConfig bounds one dispatch. Zero values fall back to defaults.
type DispatcherConfig struct {
	CommandTimeout time.Duration
	RetryDelay     time.Duration
	Deadline       time.Duration
}

func NewDispatcher(commander Commander, logger *slog.Logger, recorder *metrics.Recorder, cfg DispatcherConfig) *Dispatcher {
	if cfg.CommandTimeout <= 0 {
		cfg.CommandTimeout = defaultCommandTimeout
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	if cfg.Deadline <= 0 {
		cfg.Deadline = defaultDispatchDeadline
	}
	return &Dispatcher{
		commander:      commander,
		logger:         logger,
		metrics:        recorder,
		commandTimeout: cfg.CommandTimeout,
		retryDelay:     cfg.RetryDelay,
		deadline:       cfg.Deadline,
		now:            time.Now,
	}
}

// Dispatch sends the effect to each device and returns a terminal outcome per
// device. Disabled devices are skipped without an attempt. The call returns
// once every device resolves or the overall deadline elapses; devices still
// pending at the deadline are recorded as timed out.
func (d *Dispatcher) Dispatch(ctx context.Context, effect effects.Effect, devices []Device) map[string]Outcome {
	results := make(map[string]Outcome, len(devices))
	if len(devices) == 0 {
		return results
	}

	overall, cancel := context.WithTimeout(ctx, d.deadline)
	defer cancel()

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, dev := range devices {
		if !dev.Enabled {
			mu.Lock()
			results[dev.ID] = Outcome{Status: OutcomeSkipped}
			mu.Unlock()
			continue
		}
		wg.Add(1)
		go func(dev Device) {
			defer wg.Done()
			outcome := d.send(overall, dev, effect)
			mu.Lock()
			results[dev.ID] = outcome
			mu.Unlock()
		}(dev)
	}

	finished := make(chan struct{})
	go func() {
		wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
	case <-overall.Done():
		// Commanders honor their context, so this only trips when one wedges.
	}

	mu.Lock()
	final := make(map[string]Outcome, len(devices))
	for id, o := range results {
		final[id] = o
	}
	mu.Unlock()

	for _, dev := range devices {
		if _, ok := final[dev.ID]; !ok {
			final[dev.ID] = Outcome{Status: OutcomeTimedOut, Error: "dispatch deadline elapsed"}
		}
	}

	logging.Debug(d.logger, "dispatch finished",
		logging.FieldPattern, string(effect.Pattern),
		logging.FieldCount, len(final))
	return final
}

// send resolves one device: a timeout is terminal on the spot, any other
// failure earns a single retry after a short pause.
func (d *Dispatcher) send(ctx context.Context, dev Device, effect effects.Effect) Outcome {
	start := d.now()

	err := d.attempt(ctx, dev, effect)
	if err == nil {
		return d.finish(dev, OutcomeSucceeded, 1, nil, start)
	}
	if timedOut(err) {
		return d.finish(dev, OutcomeTimedOut, 1, err, start)
	}

	if !sleepContext(ctx, d.retryDelay) {
		return d.finish(dev, OutcomeTimedOut, 1, ctx.Err(), start)
	}

	err = d.attempt(ctx, dev, effect)
	if err == nil {
		return d.finish(dev, OutcomeSucceeded, 2, nil, start)
	}
	if timedOut(err) {
		return d.finish(dev, OutcomeTimedOut, 2, err, start)
	}
	return d.finish(dev, OutcomeFailed, 2, err, start)
}

func (d *Dispatcher) attempt(ctx context.Context, dev Device, effect effects.Effect) error {
	cctx, cancel := context.WithTimeout(ctx, d.commandTimeout)
	defer cancel()
	return d.commander.Apply(cctx, dev, effect)
}

func (d *Dispatcher) finish(dev Device, status OutcomeStatus, attempts int, err error, start time.Time) Outcome {
	elapsed := d.now().Sub(start)
	outcome := Outcome{
		Status:    status,
		Attempts:  attempts,
		ElapsedMs: elapsed.Milliseconds(),
	}
	if err != nil {
		outcome.Error = err.Error()
		logging.Warn(d.logger, "device command unresolved",
			logging.FieldDevice, dev.ID,
			logging.FieldState, string(status),
			"error", err.Error())
	}
	d.metrics.RecordDeviceSend(dev.ID, elapsed, string(status), err)
	return outcome
}

func timedOut(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
