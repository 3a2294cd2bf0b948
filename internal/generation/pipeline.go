package generation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"briefforge/internal/artifact"
	"briefforge/internal/cache"
	"briefforge/internal/llm"
	"briefforge/internal/llmclient"
	"briefforge/internal/metrics"
)

const reasonNotReady = "not_ready"

// fallbackPolicy says whether a fallback produced on the error path is
// written to the cache. Not-ready fallbacks are never cached.
type fallbackPolicy int

const (
	skipFallbackCache fallbackPolicy = iota
	cacheFallback
)

// job describes one entry point call. build turns model text into a value
// and may mark it as partly mocked; an error from build sends the request
// to fallback.
type job[T any] struct {
	op       string
	modelID  string
	key      string
	prompt   func() string
	build    func(text string) (value T, mock bool, err error)
	fallback func() T
	policy   fallbackPolicy
}

type cached[T any] struct {
	Value  T
	IsMock bool
}

type outcome[T any] struct {
	value T
	env   artifact.Envelope
}

// execute runs the per-request state machine:
// not ready -> fallback; cache hit -> cached; miss -> model call (one retry
// on rate limit) -> normalize -> cache write; any error -> fallback.
func execute[T any](ctx context.Context, s *Service, j job[T]) (T, artifact.Envelope) {
	start := time.Now()
	log := s.log.With(
		zap.String("request_id", uuid.NewString()),
		zap.String("operation", j.op),
		zap.String("model_id", j.modelID),
	)
	ctx, span := tracer.Start(ctx, "generation."+j.op, trace.WithAttributes(
		attribute.String("operation", j.op),
		attribute.String("model_id", j.modelID),
	))
	defer span.End()

	finish := func(out outcome[T], result metrics.Outcome) (T, artifact.Envelope) {
		span.SetAttributes(
			attribute.String("outcome", string(result)),
			attribute.Bool("from_cache", out.env.FromCache),
			attribute.Bool("is_mock", out.env.IsMock),
		)
		s.metrics.RecordRequest(ctx, j.op, j.modelID, result, time.Since(start))
		log.Debug("generation finished",
			zap.String("outcome", string(result)),
			zap.Bool("is_mock", out.env.IsMock),
			zap.Duration("elapsed", time.Since(start)))
		return out.value, out.env
	}

	if !s.gateway.Ready() {
		log.Info("model gateway not ready; serving fallback")
		s.metrics.RecordFallback(ctx, j.op, reasonNotReady)
		return finish(outcome[T]{value: j.fallback(), env: artifact.Envelope{IsMock: true}}, metrics.OutcomeFallback)
	}

	if hit, ok := cache.Load[cached[T]](s.results, j.key); ok {
		s.metrics.RecordCacheLookup(ctx, j.op, true)
		return finish(outcome[T]{value: hit.Value, env: artifact.Envelope{FromCache: true, IsMock: hit.IsMock}}, metrics.OutcomeCached)
	}
	s.metrics.RecordCacheLookup(ctx, j.op, false)

	out, err := generateShared(ctx, s, j, log)
	if err != nil {
		reason := string(llmclient.Diagnose(err))
		log.Warn("generation failed; serving fallback", zap.String("category", reason), zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, reason)
		s.metrics.RecordFallback(ctx, j.op, reason)

		value := j.fallback()
		if j.policy == cacheFallback {
			cache.Store(s.results, j.key, cached[T]{Value: value, IsMock: true})
		}
		return finish(outcome[T]{value: value, env: artifact.Envelope{IsMock: true}}, metrics.OutcomeFallback)
	}
	return finish(out, metrics.OutcomeFresh)
}

// generateShared routes misses through the single-flight group when one is
// configured. Followers receive the leader's result, usage included.
func generateShared[T any](ctx context.Context, s *Service, j job[T], log *zap.Logger) (outcome[T], error) {
	if s.group == nil {
		return generate(ctx, s, j, log)
	}
	v, err, shared := s.group.Do(j.key, func() (any, error) {
		return generate(ctx, s, j, log)
	})
	if shared {
		log.Debug("joined in-flight generation", zap.String("key", j.key))
	}
	if err != nil {
		return outcome[T]{}, err
	}
	return v.(outcome[T]), nil
}

// generate performs the model call, normalizes the text and writes the
// cache.
func generate[T any](ctx context.Context, s *Service, j job[T], log *zap.Logger) (outcome[T], error) {
	h, err := s.gateway.Resolve(ctx, j.modelID)
	if err != nil {
		return outcome[T]{}, err
	}
	ext, err := invokeWithRetry(ctx, s, h, j, log)
	if err != nil {
		return outcome[T]{}, err
	}
	value, mock, err := j.build(ext.Text)
	if err != nil {
		return outcome[T]{}, err
	}
	cache.Store(s.results, j.key, cached[T]{Value: value, IsMock: mock})
	return outcome[T]{value: value, env: artifact.Envelope{IsMock: mock, Usage: ext.Usage}}, nil
}

// invokeWithRetry calls the model and, when the first failure is a rate
// limit, waits once and tries exactly one more time.
func invokeWithRetry[T any](ctx context.Context, s *Service, h *llm.Handle, j job[T], log *zap.Logger) (llmclient.Extracted, error) {
	prompt := j.prompt()
	ext, err := s.gateway.Invoke(ctx, h, prompt)
	if err == nil || !llmclient.IsRateLimited(err) {
		return ext, err
	}
	log.Warn("rate limited; retrying once", zap.Duration("delay", s.retryDelay), zap.Error(err))
	s.metrics.RecordRetry(ctx, j.op, h.Profile.Model)
	if werr := s.sleep(ctx, s.retryDelay); werr != nil {
		return llmclient.Extracted{}, errors.Join(err, werr)
	}
	return s.gateway.Invoke(ctx, h, prompt)
}
