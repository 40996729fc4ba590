package monitor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"smart-stadium/internal/domain/contests"
	"smart-stadium/internal/domain/events"
	"smart-stadium/internal/effects"
	"smart-stadium/internal/history"
	"smart-stadium/internal/lights"
	"smart-stadium/internal/logging"
	"smart-stadium/internal/metrics"
	"smart-stadium/internal/providers"
	"smart-stadium/internal/timeutil"
	"smart-stadium/internal/tracker"
)

// State labels where the polling loop currently sits.
type State string

const (
	StateIdle    State = "IDLE"
	StatePolling State = "POLLING"
	StateBackoff State = "BACKOFF"
	StateStopped State = "STOPPED"
)

const (
	defaultPollInterval   = 7 * time.Second
	defaultIdleInterval   = 2 * time.Minute
	defaultBackoffCeiling = 5 * time.Minute
	defaultFinalRetention = time.Hour
	defaultFetchTimeout   = 15 * time.Second
)

// Config tunes the loop cadence. Zero values fall back to defaults.
type Config struct {
	Sports         []contests.Sport
	PollInterval   time.Duration // while any tracked contest is live
	IdleInterval   time.Duration // while nothing is live
	BackoffCeiling time.Duration // cap for rate-limit backoff
	FinalRetention time.Duration // how long finished contests stay tracked
	FetchTimeout   time.Duration // budget for one scoreboard fetch
}

// Monitor owns the polling loop: fetch scoreboards on an adaptive interval,
// reconcile snapshots into events, run the celebrations those events resolve
// to, and record every celebration. Rate limiting moves the loop into a
// backoff state; one clean cycle moves it back out.
type Monitor struct {
	provider   providers.ScoreboardProvider
	tracker    *tracker.Tracker
	resolver   *effects.Resolver
	controller *lights.Controller
	history    *history.Recorder
	logger     *slog.Logger
	metrics    *metrics.Recorder

	sports         []contests.Sport
	pollInterval   time.Duration
	idleInterval   time.Duration
	backoffCeiling time.Duration
	finalRetention time.Duration
	fetchTimeout   time.Duration
	now            func() time.Time

	kick     chan struct{}
	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	mu           sync.RWMutex
	state        State
	paused       bool
	delay        time.Duration
	backoff      *backoff.ExponentialBackOff
	failures     int
	lastError    string
	lastAttempt  time.Time
	lastSuccess  time.Time
	celebrations int
}

// Status describes the recent health of the polling loop.
type Status struct {
	State               State
	Paused              bool
	NextDelay           time.Duration
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	ContestsTracked     int
	CelebrationsFired   int
}

// IsReady reports whether the loop has had a recent success and is not
// failing repeatedly.
func (s Status) IsReady() bool {
	if s.State == StateStopped {
		return false
	}
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Monitor with sane defaults.
func New(provider providers.ScoreboardProvider, trk *tracker.Tracker, resolver *effects.Resolver, controller *lights.Controller, recorder *history.Recorder, logger *slog.Logger, metricsRecorder *metrics.Recorder, cfg Config) *Monitor {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.IdleInterval <= 0 {
		cfg.IdleInterval = defaultIdleInterval
	}
	if cfg.BackoffCeiling <= 0 {
		cfg.BackoffCeiling = defaultBackoffCeiling
	}
	if cfg.FinalRetention <= 0 {
		cfg.FinalRetention = defaultFinalRetention
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}
	if len(cfg.Sports) == 0 {
		cfg.Sports = []contests.Sport{contests.SportNFL}
	}
	return &Monitor{
		provider:       provider,
		tracker:        trk,
		resolver:       resolver,
		controller:     controller,
		history:        recorder,
		logger:         logger,
		metrics:        metricsRecorder,
		sports:         cfg.Sports,
		pollInterval:   cfg.PollInterval,
		idleInterval:   cfg.IdleInterval,
		backoffCeiling: cfg.BackoffCeiling,
		finalRetention: cfg.FinalRetention,
		fetchTimeout:   cfg.FetchTimeout,
		now:            time.Now,
		kick:           make(chan struct{}, 1),
		done:           make(chan struct{}),
		stopped:        make(chan struct{}),
		state:          StateIdle,
		delay:          cfg.IdleInterval,
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (m *Monitor) Start(ctx context.Context) {
	m.startMu.Lock()
	if m.started {
		m.startMu.Unlock()
		return
	}
	m.started = true
	m.startMu.Unlock()

	go m.run(ctx)
}

// Stop halts the loop and waits for any in-flight cycle, including its
// dispatch and history write, to finish. The context bounds the wait.
func (m *Monitor) Stop(ctx context.Context) error {
	m.stopOnce.Do(func() {
		close(m.done)
	})

	m.startMu.Lock()
	started := m.started
	m.startMu.Unlock()
	if !started {
		m.setState(StateStopped)
		return nil
	}

	select {
	case <-m.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pause keeps the loop ticking but skips fetching until Resume.
func (m *Monitor) Pause() {
	m.mu.Lock()
	m.paused = true
	m.mu.Unlock()
	logging.Info(m.logger, "monitoring paused")
}

// Resume re-enables fetching after a Pause.
func (m *Monitor) Resume() {
	m.mu.Lock()
	m.paused = false
	m.mu.Unlock()
	logging.Info(m.logger, "monitoring resumed")
}

// ForcePoll asks the loop to poll now instead of waiting out the timer. It
// reports false when the loop is not running or a poll is already queued.
func (m *Monitor) ForcePoll() bool {
	m.startMu.Lock()
	started := m.started
	m.startMu.Unlock()
	if !started {
		return false
	}
	select {
	case <-m.stopped:
		return false
	default:
	}

	select {
	case m.kick <- struct{}{}:
		return true
	default:
		return false
	}
}

// Status returns a snapshot of the loop's recent health.
func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Status{
		State:               m.state,
		Paused:              m.paused,
		NextDelay:           m.delay,
		ConsecutiveFailures: m.failures,
		LastError:           m.lastError,
		LastAttempt:         m.lastAttempt,
		LastSuccess:         m.lastSuccess,
		ContestsTracked:     m.tracker.Len(),
		CelebrationsFired:   m.celebrations,
	}
}

func (m *Monitor) run(ctx context.Context) {
	defer close(m.stopped)
	defer m.setState(StateStopped)

	logging.Info(m.logger, "monitor started",
		logging.FieldCount, len(m.sports),
		logging.FieldDurationMS, m.pollInterval.Milliseconds())
	// Initial poll to warm the tracker on boot.
	m.pollOnce(ctx)

	for {
		timer := time.NewTimer(m.nextDelay())
		select {
		case <-ctx.Done():
			timer.Stop()
			logging.Info(m.logger, "monitor stopped")
			return
		case <-m.done:
			timer.Stop()
			logging.Info(m.logger, "monitor stopped")
			return
		case <-m.kick:
			timer.Stop()
			m.pollOnce(ctx)
		case <-timer.C:
			m.pollOnce(ctx)
		}
	}
}

// pollOnce runs one full cycle: fetch every configured sport, reconcile the
// snapshots concurrently per contest, celebrate the events that resolve to an
// effect, then pick the delay before the next cycle.
func (m *Monitor) pollOnce(ctx context.Context) {
	if m.isPaused() {
		m.setState(StateIdle)
		return
	}
	m.setState(StatePolling)

	start := time.Now()
	m.recordAttempt(m.now())

	var rateLimit *providers.RateLimitError
	var firstErr error
	var snapshots []contests.Snapshot
	for _, sport := range m.sports {
		snaps, err := m.fetchSport(ctx, sport)
		if err != nil {
			if rl, ok := providers.AsRateLimitError(err); ok && rateLimit == nil {
				rateLimit = rl
			}
			if firstErr == nil {
				firstErr = err
			}
			logging.Error(m.logger, "scoreboard fetch failed", err,
				logging.FieldSport, string(sport))
			continue
		}
		snapshots = append(snapshots, snaps...)
	}

	var wg sync.WaitGroup
	for _, snap := range snapshots {
		snap := snap
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, ev := range m.tracker.Reconcile(snap) {
				m.celebrate(ctx, ev)
			}
		}()
	}
	wg.Wait()

	m.tracker.EvictFinished(m.finalRetention)
	m.metrics.RecordPollCycle(time.Since(start), firstErr)

	switch {
	case rateLimit != nil:
		delay := m.enterBackoff(rateLimit)
		m.recordFailure(firstErr)
		logging.Warn(m.logger, "upstream rate limited, backing off",
			logging.FieldDurationMS, delay.Milliseconds())
	case firstErr != nil:
		m.recordFailure(firstErr)
		m.settle(false)
	default:
		m.recordSuccess(m.now())
		m.settle(true)
	}
}

// celebrate resolves one event, drives the devices, and records the result.
// Storage failures log inside the recorder and never unwind the dispatch.
func (m *Monitor) celebrate(ctx context.Context, ev events.Event) {
	effect, ok := m.resolver.Resolve(ev)
	if !ok {
		return
	}

	outcomes := m.controller.Celebrate(ctx, effect)
	m.metrics.RecordCelebration(string(ev.Kind))
	m.mu.Lock()
	m.celebrations++
	m.mu.Unlock()

	_ = m.history.Append(history.Record{
		ContestID: ev.ContestID,
		Sport:     ev.Sport,
		EventKind: ev.Kind,
		DedupeKey: ev.DedupeKey,
		Team:      ev.Team,
		Effect:    effect,
		Outcomes:  outcomes,
		Trigger:   history.TriggerLive,
	})

	logging.Info(m.logger, "celebration fired",
		logging.FieldEvent, string(ev.Kind),
		logging.FieldContest, ev.ContestID,
		logging.FieldPattern, string(effect.Pattern))
}

func (m *Monitor) fetchSport(ctx context.Context, sport contests.Sport) ([]contests.Snapshot, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, m.fetchTimeout)
	defer cancel()
	date := timeutil.FormatDate(m.now().UTC())
	return m.provider.FetchScoreboard(fetchCtx, sport, date)
}

// enterBackoff doubles the interval on the first rate-limited cycle and lets
// the exponential curve grow it toward the ceiling on every consecutive one.
// An upstream Retry-After hint wins when it asks for a longer wait.
func (m *Monitor) enterBackoff(rl *providers.RateLimitError) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.backoff == nil {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = 2 * m.nominalLocked()
		b.RandomizationFactor = 0
		b.Multiplier = 2
		b.MaxInterval = m.backoffCeiling
		b.MaxElapsedTime = 0
		m.backoff = b
	}
	m.state = StateBackoff

	delay := m.backoff.NextBackOff()
	if delay > m.backoffCeiling {
		delay = m.backoffCeiling
	}
	if rl != nil && rl.RetryAfter > delay {
		delay = rl.RetryAfter
	}
	m.delay = delay
	return delay
}

// settle picks the post-cycle state and delay. A clean cycle drops any
// backoff and returns to the nominal interval; a failed one keeps whatever
// backoff was in force.
func (m *Monitor) settle(clean bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if clean && m.backoff != nil {
		m.backoff = nil
		logging.Info(m.logger, "backoff cleared",
			logging.FieldState, string(StatePolling))
	}
	if m.backoff != nil {
		m.state = StateBackoff
		return
	}
	m.state = StatePolling
	m.delay = m.nominalLocked()
}

// nominalLocked returns the interval dictated by tracked contests. Callers
// hold m.mu; the tracker has its own lock.
func (m *Monitor) nominalLocked() time.Duration {
	if m.tracker.HasLive() {
		return m.pollInterval
	}
	return m.idleInterval
}

func (m *Monitor) nextDelay() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.delay
}

func (m *Monitor) isPaused() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.paused
}

func (m *Monitor) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

func (m *Monitor) recordAttempt(at time.Time) {
	m.mu.Lock()
	m.lastAttempt = at
	m.mu.Unlock()
}

func (m *Monitor) recordSuccess(at time.Time) {
	m.mu.Lock()
	m.failures = 0
	m.lastError = ""
	m.lastSuccess = at
	m.mu.Unlock()
}

func (m *Monitor) recordFailure(err error) {
	m.mu.Lock()
	m.failures++
	if err != nil {
		m.lastError = err.Error()
	}
	m.mu.Unlock()
}
