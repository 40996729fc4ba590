package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup configures OpenTelemetry metrics with a Prometheus exporter and optional OTLP exporter.
// It returns a Recorder, the Prometheus HTTP handler, and a shutdown function.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = "smart-stadium"
	}

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	opts = append(opts, sdkmetric.WithResource(res))

	provider := sdkmetric.NewMeterProvider(opts...)

	otelInst, err := instrumentFactory(provider)
	if err != nil {
		return nil, nil, nil, err
	}

	rec := newRecorder(otelInst)
	shutdown := func(c context.Context) error {
		return provider.Shutdown(c)
	}

	return rec, promHandler, shutdown, nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
	}
	otlpExp, err := otlpmetrichttp.New(ctx, otlpOpts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(otlpExp, sdkmetric.WithInterval(15*time.Second)), nil
}

type otelInstruments struct {
	ctx                context.Context
	meter              metric.Meter
	requests           metric.Int64Counter
	requestLatencyMs   metric.Float64Histogram
	providerAttempts   metric.Int64Counter
	providerErrors     metric.Int64Counter
	providerLatencyMs  metric.Float64Histogram
	rateLimitHits      metric.Int64Counter
	retryAfterMs       metric.Float64Histogram
	pollCycles         metric.Int64Counter
	pollErrors         metric.Int64Counter
	pollLatencyMs      metric.Float64Histogram
	eventsSynthesized  metric.Int64Counter
	celebrations       metric.Int64Counter
	deviceSends        metric.Int64Counter
	deviceFailures     metric.Int64Counter
	deviceLatencyMs    metric.Float64Histogram
	historyAppends     metric.Int64Counter
	historyAppendFails metric.Int64Counter
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return promExp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	meter := provider.Meter("smart-stadium")
	ctx := context.Background()

	requests, err := meter.Int64Counter("http_requests_total")
	if err != nil {
		return nil, err
	}
	requestLatency, err := meter.Float64Histogram("http_request_duration_ms")
	if err != nil {
		return nil, err
	}

	providerAttempts, err := meter.Int64Counter("provider_attempts_total")
	if err != nil {
		return nil, err
	}
	providerErrors, err := meter.Int64Counter("provider_errors_total")
	if err != nil {
		return nil, err
	}
	providerLatency, err := meter.Float64Histogram("provider_duration_ms")
	if err != nil {
		return nil, err
	}
	rateLimitHits, err := meter.Int64Counter("provider_rate_limit_hits_total")
	if err != nil {
		return nil, err
	}
	retryAfter, err := meter.Float64Histogram("provider_retry_after_ms")
	if err != nil {
		return nil, err
	}

	pollCycles, err := meter.Int64Counter("poll_cycles_total")
	if err != nil {
		return nil, err
	}
	pollErrors, err := meter.Int64Counter("poll_errors_total")
	if err != nil {
		return nil, err
	}
	pollLatency, err := meter.Float64Histogram("poll_cycle_duration_ms")
	if err != nil {
		return nil, err
	}

	eventsSynthesized, err := meter.Int64Counter("events_synthesized_total")
	if err != nil {
		return nil, err
	}
	celebrations, err := meter.Int64Counter("celebrations_dispatched_total")
	if err != nil {
		return nil, err
	}
	deviceSends, err := meter.Int64Counter("device_sends_total")
	if err != nil {
		return nil, err
	}
	deviceFailures, err := meter.Int64Counter("device_send_failures_total")
	if err != nil {
		return nil, err
	}
	deviceLatency, err := meter.Float64Histogram("device_send_duration_ms")
	if err != nil {
		return nil, err
	}
	historyAppends, err := meter.Int64Counter("history_appends_total")
	if err != nil {
		return nil, err
	}
	historyAppendFails, err := meter.Int64Counter("history_append_failures_total")
	if err != nil {
		return nil, err
	}

	return &otelInstruments{
		ctx:                ctx,
		meter:              meter,
		requests:           requests,
		requestLatencyMs:   requestLatency,
		providerAttempts:   providerAttempts,
		providerErrors:     providerErrors,
		providerLatencyMs:  providerLatency,
		rateLimitHits:      rateLimitHits,
		retryAfterMs:       retryAfter,
		pollCycles:         pollCycles,
		pollErrors:         pollErrors,
		pollLatencyMs:      pollLatency,
		eventsSynthesized:  eventsSynthesized,
		celebrations:       celebrations,
		deviceSends:        deviceSends,
		deviceFailures:     deviceFailures,
		deviceLatencyMs:    deviceLatency,
		historyAppends:     historyAppends,
		historyAppendFails: historyAppendFails,
	}, nil
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, path),
		attribute.Int(AttrStatus, status),
	}
	o.recordCounter(o.requests, 1, attrs...)
	o.recordHistogram(o.requestLatencyMs, float64(duration.Milliseconds()), attrs...)
}

func (o *otelInstruments) recordProviderAttempt(provider string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrProvider, provider)}
	o.recordCounter(o.providerAttempts, 1, attrs...)
	o.recordHistogram(o.providerLatencyMs, float64(duration.Milliseconds()), attrs...)
	if err != nil {
		o.recordCounter(o.providerErrors, 1, attrs...)
	}
}

func (o *otelInstruments) recordRateLimit(provider string, retryAfter time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrProvider, provider)}
	o.recordCounter(o.rateLimitHits, 1, attrs...)
	if retryAfter > 0 {
		o.recordHistogram(o.retryAfterMs, float64(retryAfter.Milliseconds()), attrs...)
	}
}

func (o *otelInstruments) recordPoll(duration time.Duration, err error) {
	if o == nil {
		return
	}
	o.recordCounter(o.pollCycles, 1)
	o.recordHistogram(o.pollLatencyMs, float64(duration.Milliseconds()))
	if err != nil {
		o.recordCounter(o.pollErrors, 1)
	}
}

func (o *otelInstruments) recordEvent(kind string) {
	if o == nil {
		return
	}
	o.recordCounter(o.eventsSynthesized, 1, attribute.String(AttrKind, kind))
}

func (o *otelInstruments) recordCelebration(kind string) {
	if o == nil {
		return
	}
	o.recordCounter(o.celebrations, 1, attribute.String(AttrKind, kind))
}

func (o *otelInstruments) recordDeviceSend(device string, duration time.Duration, outcome string, err error) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrDevice, device),
		attribute.String(AttrOutcome, outcome),
	}
	o.recordCounter(o.deviceSends, 1, attrs...)
	o.recordHistogram(o.deviceLatencyMs, float64(duration.Milliseconds()), attrs...)
	if err != nil {
		o.recordCounter(o.deviceFailures, 1, attrs...)
	}
}

func (o *otelInstruments) recordHistoryAppend(err error) {
	if o == nil {
		return
	}
	o.recordCounter(o.historyAppends, 1)
	if err != nil {
		o.recordCounter(o.historyAppendFails, 1)
	}
}

func (o *otelInstruments) recordCounter(counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	counter.Add(o.ctx, value, metric.WithAttributes(attrs...))
}

func (o *otelInstruments) recordHistogram(hist metric.Float64Histogram, value float64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	hist.Record(o.ctx, value, metric.WithAttributes(attrs...))
}
