// Package generation is the entry point for every generation request. It
// consults the result cache, calls the model gateway with one bounded retry
// on rate limits, normalizes the output and falls back to deterministic
// results when the model is unavailable. Entry points never return errors.
package generation

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"briefforge/internal/cache"
	"briefforge/internal/llm"
	"briefforge/internal/metrics"
)

var tracer = otel.Tracer("briefforge/generation")

const (
	defaultRetryDelay    = 2 * time.Second
	defaultSweepInterval = 10 * time.Minute
)

// Status is a snapshot of the service for health endpoints and the CLI.
type Status struct {
	Initialized bool  `json:"initialized"`
	CacheKeys   int   `json:"cacheKeys"`
	CacheHits   int64 `json:"cacheHits"`
	CacheMisses int64 `json:"cacheMisses"`
}

// Service owns the gateway and result cache for one process.
type Service struct {
	gateway       *llm.Gateway
	results       *cache.Results
	log           *zap.Logger
	metrics       *metrics.GenerationMetrics
	defaultModel  string
	retryDelay    time.Duration
	sweepInterval time.Duration
	group         *singleflight.Group
	sleep         func(ctx context.Context, d time.Duration) error
}

type Option func(*Service)

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithMetrics(m *metrics.GenerationMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithDefaultModel sets the model used by Analyze and GenerateWebsite.
func WithDefaultModel(id string) Option {
	return func(s *Service) { s.defaultModel = id }
}

// WithRetryDelay sets the fixed pause before the single rate-limit retry.
func WithRetryDelay(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.retryDelay = d
		}
	}
}

func WithSweepInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.sweepInterval = d
		}
	}
}

// WithSingleFlight collapses concurrent misses for the same cache key into
// one model call.
func WithSingleFlight(on bool) Option {
	return func(s *Service) {
		if on {
			s.group = &singleflight.Group{}
		} else {
			s.group = nil
		}
	}
}

func New(gateway *llm.Gateway, results *cache.Results, opts ...Option) *Service {
	s := &Service{
		gateway:       gateway,
		results:       results,
		log:           zap.NewNop(),
		defaultModel:  string(llm.DefaultModel),
		retryDelay:    defaultRetryDelay,
		sweepInterval: defaultSweepInterval,
		sleep:         sleepCtx,
	}
	for _, o := range opts {
		o(s)
	}
	if s.gateway == nil {
		s.gateway = llm.NewGateway(llm.WithLogger(s.log))
	}
	if s.results == nil {
		s.results = cache.NewResults(time.Hour)
	}
	return s
}

// Init connects the gateway and starts the cache sweeper. A gateway that
// cannot connect leaves the service serving fallback results.
func (s *Service) Init(ctx context.Context, creds llm.Credentials) llm.InitResult {
	res := s.gateway.Initialize(ctx, creds)
	s.results.StartSweeper(s.sweepInterval, func(removed int) {
		if removed > 0 {
			s.log.Debug("cache sweep", zap.Int("removed", removed))
		}
	})
	return res
}

// Shutdown stops the sweeper, drops cached results and closes the gateway.
func (s *Service) Shutdown() error {
	s.results.Close()
	return s.gateway.Close()
}

func (s *Service) Status() Status {
	st := s.results.Stats()
	return Status{
		Initialized: s.gateway.Ready(),
		CacheKeys:   st.Keys,
		CacheHits:   st.Hits,
		CacheMisses: st.Misses,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
