package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("briefforge/generation")

// Outcome labels how a generation request finished.
type Outcome string

const (
	OutcomeFresh    Outcome = "fresh"
	OutcomeCached   Outcome = "cached"
	OutcomeFallback Outcome = "fallback"
)

// GenerationMetrics collects counters for the generation entry points.
type GenerationMetrics struct {
	requestsCounter   metric.Int64Counter
	cacheHitsCounter  metric.Int64Counter
	cacheMissCounter  metric.Int64Counter
	retriesCounter    metric.Int64Counter
	fallbacksCounter  metric.Int64Counter
	durationHistogram metric.Float64Histogram
}

// NewGenerationMetrics registers the instruments on the global meter
// provider.
func NewGenerationMetrics() (*GenerationMetrics, error) {
	requestsCounter, err := meter.Int64Counter(
		"briefforge.generation.requests",
		metric.WithDescription("Total number of generation requests by entry point and outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	cacheHitsCounter, err := meter.Int64Counter(
		"briefforge.cache.hits",
		metric.WithDescription("Generation results served from cache"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	cacheMissCounter, err := meter.Int64Counter(
		"briefforge.cache.misses",
		metric.WithDescription("Generation requests that missed the cache"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	retriesCounter, err := meter.Int64Counter(
		"briefforge.generation.retries",
		metric.WithDescription("Model calls retried after a rate limit"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	fallbacksCounter, err := meter.Int64Counter(
		"briefforge.generation.fallbacks",
		metric.WithDescription("Requests answered by the fallback generator"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	durationHistogram, err := meter.Float64Histogram(
		"briefforge.generation.duration",
		metric.WithDescription("Duration of generation requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &GenerationMetrics{
		requestsCounter:   requestsCounter,
		cacheHitsCounter:  cacheHitsCounter,
		cacheMissCounter:  cacheMissCounter,
		retriesCounter:    retriesCounter,
		fallbacksCounter:  fallbacksCounter,
		durationHistogram: durationHistogram,
	}, nil
}

// RecordRequest records a finished request.
func (m *GenerationMetrics) RecordRequest(ctx context.Context, operation, model string, outcome Outcome, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("model", model),
		attribute.String("outcome", string(outcome)),
	)
	m.requestsCounter.Add(ctx, 1, attrs)
	m.durationHistogram.Record(ctx, duration.Seconds(), attrs)
}

func (m *GenerationMetrics) RecordCacheLookup(ctx context.Context, operation string, hit bool) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("operation", operation))
	if hit {
		m.cacheHitsCounter.Add(ctx, 1, attrs)
		return
	}
	m.cacheMissCounter.Add(ctx, 1, attrs)
}

func (m *GenerationMetrics) RecordRetry(ctx context.Context, operation, model string) {
	if m == nil {
		return
	}
	m.retriesCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("model", model),
		),
	)
}

// RecordFallback records why a request fell back, e.g. "not_ready" or an
// error category.
func (m *GenerationMetrics) RecordFallback(ctx context.Context, operation, reason string) {
	if m == nil {
		return
	}
	m.fallbacksCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("reason", reason),
		),
	)
}
