package llm

import (
	"context"
	"time"

	"go.uber.org/zap"

	"briefforge/internal/llmclient"
)

// Middleware decorates a model handle to inject cross-cutting concerns.
// The profile the handle is bound to is passed for labeling.
type Middleware func(ModelProfile, llmclient.Model) llmclient.Model

// Wrap applies middlewares in left-to-right order.
// Example: Wrap(p, inner, A, B) => A(B(inner))
func Wrap(p ModelProfile, inner llmclient.Model, mws ...Middleware) llmclient.Model {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		out = mws[i](p, out)
	}
	return out
}

// WithLogging logs prompt size, latency and errors for every call.
func WithLogging(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(p ModelProfile, next llmclient.Model) llmclient.Model {
		return &logging{next: next, log: logger.With(zap.String("model_id", string(p.ID)), zap.String("model", p.Model))}
	}
}

type logging struct {
	next llmclient.Model
	log  *zap.Logger
}

func (l *logging) GenerateContent(ctx context.Context, text string) (any, error) {
	start := time.Now()
	l.log.Debug("llm request", zap.Int("prompt_bytes", len(text)))
	resp, err := l.next.GenerateContent(ctx, text)
	if err != nil {
		l.log.Warn("llm error",
			zap.Duration("elapsed", time.Since(start)),
			zap.Bool("rate_limited", llmclient.IsRateLimited(err)),
			zap.Error(err))
		return nil, err
	}
	l.log.Debug("llm response", zap.Duration("elapsed", time.Since(start)))
	return resp, nil
}

// ModelFunc adapts a function to llmclient.Model.
type ModelFunc func(ctx context.Context, text string) (any, error)

func (f ModelFunc) GenerateContent(ctx context.Context, text string) (any, error) {
	return f(ctx, text)
}
