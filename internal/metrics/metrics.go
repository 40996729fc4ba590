package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type deviceStats struct {
	sends    int
	failures int
	lastSend time.Duration
}

// Recorder captures lightweight, in-memory metrics about the engine.
// It is intentionally simple so it can be swapped for a real backend later.
type Recorder struct {
	mu           sync.Mutex
	stats        map[string]*providerStats
	devices      map[string]*deviceStats
	events       map[string]int
	celebrations int
	pollCycles   int
	pollErrors   int
	otel         *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:   make(map[string]*providerStats),
		devices: make(map[string]*deviceStats),
		events:  make(map[string]int),
		otel:    otel,
	}
}

// RecordProviderAttempt increments counters for an upstream call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	stats := r.ensureStats(provider)
	r.mu.Lock()
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that an upstream response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	stats := r.ensureStats(provider)
	r.mu.Lock()
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// RecordPollCycle tracks poll cycles and errors.
func (r *Recorder) RecordPollCycle(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.pollCycles++
	if err != nil {
		r.pollErrors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordPoll(duration, err)
	}
}

// RecordEvent counts a synthesized domain event by kind.
func (r *Recorder) RecordEvent(kind string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.events[kind]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordEvent(kind)
	}
}

// RecordCelebration counts one dispatched celebration.
func (r *Recorder) RecordCelebration(kind string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.celebrations++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordCelebration(kind)
	}
}

// RecordDeviceSend tracks one device command attempt with its outcome.
func (r *Recorder) RecordDeviceSend(device string, duration time.Duration, outcome string, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	stats, ok := r.devices[device]
	if !ok {
		stats = &deviceStats{}
		r.devices[device] = stats
	}
	stats.sends++
	stats.lastSend = duration
	if err != nil {
		stats.failures++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordDeviceSend(device, duration, outcome, err)
	}
}

// RecordHistoryAppend tracks one history write attempt.
func (r *Recorder) RecordHistoryAppend(err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHistoryAppend(err)
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// EventCount returns how many events of the given kind were synthesized.
func (r *Recorder) EventCount(kind string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[kind]
}

// Celebrations returns the total celebrations dispatched.
func (r *Recorder) Celebrations() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.celebrations
}

// DeviceSends returns the total send attempts recorded for a device.
func (r *Recorder) DeviceSends(device string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.devices[device]; ok {
		return stats.sends
	}
	return 0
}

// DeviceFailures returns the failed send attempts recorded for a device.
func (r *Recorder) DeviceFailures(device string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.devices[device]; ok {
		return stats.failures
	}
	return 0
}

// PollCycles returns the total poll cycles recorded.
func (r *Recorder) PollCycles() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pollCycles
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	stats := r.snapshot(provider)
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

func (r *Recorder) ensureStats(provider string) *providerStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}

func (r *Recorder) snapshot(provider string) providerStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats, ok := r.stats[provider]; ok && stats != nil {
		return *stats
	}
	return providerStats{}
}
