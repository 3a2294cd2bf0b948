package llm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"briefforge/internal/llmclient"
)

// ErrNotReady is returned by Resolve and Invoke before a successful
// Initialize.
var ErrNotReady = errors.New("llm: gateway is not ready")

const probePrompt = "Reply with the single word: ok"

// Credentials locate the provider project. A missing Project means the
// gateway stays not ready.
type Credentials = llmclient.ConnectOptions

// InitResult reports the outcome of Initialize. Category is set when the
// gateway is not ready.
type InitResult struct {
	Ready    bool
	Category llmclient.Category
}

// Handle is a memoized model bound to one profile.
type Handle struct {
	Profile ModelProfile
	model   llmclient.Model
}

// Gateway owns the provider connection and the per-profile model handles.
type Gateway struct {
	connect     llmclient.Connector
	log         *zap.Logger
	middlewares []Middleware
	probe       bool

	mu       sync.Mutex
	provider llmclient.Provider
	ready    atomic.Bool
	handles  *lru.Cache[ModelID, *Handle]
}

type Option func(*Gateway)

// WithConnector replaces the provider connector (ConnectGemini by default).
func WithConnector(c llmclient.Connector) Option {
	return func(g *Gateway) {
		if c != nil {
			g.connect = c
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.log = l
		}
	}
}

// WithProbe makes Initialize issue one tiny call against the default
// profile so credential, model and quota problems surface at startup.
func WithProbe(on bool) Option {
	return func(g *Gateway) { g.probe = on }
}

// WithMiddleware adds middlewares applied to every handle.
func WithMiddleware(mws ...Middleware) Option {
	return func(g *Gateway) { g.middlewares = append(g.middlewares, mws...) }
}

func NewGateway(opts ...Option) *Gateway {
	g := &Gateway{
		connect: llmclient.ConnectGemini,
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(g)
	}
	// Sized above the number of profiles so handles are never evicted.
	g.handles, _ = lru.New[ModelID, *Handle](len(profiles) * 4)
	g.middlewares = append([]Middleware{WithLogging(g.log)}, g.middlewares...)
	return g
}

// Initialize connects to the provider once. It never fails: any problem is
// logged with a diagnostic category and reported as Ready=false. Calling it
// again after success is a no-op.
func (g *Gateway) Initialize(ctx context.Context, creds Credentials) InitResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.ready.Load() {
		return InitResult{Ready: true}
	}
	provider, err := g.connect(ctx, creds)
	if err != nil {
		return g.notReady(err)
	}
	g.provider = provider
	if g.probe {
		if err := g.probeLocked(ctx); err != nil {
			_ = provider.Close()
			g.provider = nil
			g.handles.Purge()
			return g.notReady(err)
		}
	}
	g.ready.Store(true)
	g.log.Info("model gateway ready", zap.String("project", creds.Project), zap.Bool("probed", g.probe))
	return InitResult{Ready: true}
}

func (g *Gateway) probeLocked(ctx context.Context) error {
	h, err := g.resolveLocked(ctx, string(DefaultModel))
	if err != nil {
		return err
	}
	resp, err := h.model.GenerateContent(ctx, probePrompt)
	if err != nil {
		return err
	}
	_, err = llmclient.Extract(resp)
	return err
}

func (g *Gateway) notReady(err error) InitResult {
	cat := llmclient.Diagnose(err)
	g.log.Warn("model gateway unavailable; requests will use fallback output",
		zap.String("category", string(cat)),
		zap.String("hint", llmclient.Guidance(cat)),
		zap.Error(err))
	return InitResult{Ready: false, Category: cat}
}

// Ready reports whether Initialize has succeeded.
func (g *Gateway) Ready() bool { return g.ready.Load() }

// Resolve returns the memoized handle for id. Unsupported ids resolve to
// the default profile with a warning.
func (g *Gateway) Resolve(ctx context.Context, id string) (*Handle, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.ready.Load() {
		return nil, ErrNotReady
	}
	return g.resolveLocked(ctx, id)
}

func (g *Gateway) resolveLocked(ctx context.Context, id string) (*Handle, error) {
	mid, ok := NormalizeModelID(id)
	if !ok && id != "" {
		g.log.Warn("unsupported model id; using default", zap.String("requested", id), zap.String("model_id", string(mid)))
	}
	if h, ok := g.handles.Get(mid); ok {
		return h, nil
	}
	if g.provider == nil {
		return nil, ErrNotReady
	}
	profile := profiles[mid]
	model, err := g.provider.CreateModel(ctx, profile.Config())
	if err != nil {
		return nil, fmt.Errorf("llm: create model %s: %w", profile.Model, err)
	}
	h := &Handle{Profile: profile, model: Wrap(profile, model, g.middlewares...)}
	g.handles.Add(mid, h)
	return h, nil
}

// Invoke performs one model call and extracts its text and usage.
func (g *Gateway) Invoke(ctx context.Context, h *Handle, prompt string) (llmclient.Extracted, error) {
	if h == nil || h.model == nil {
		return llmclient.Extracted{}, ErrNotReady
	}
	resp, err := h.model.GenerateContent(ctx, prompt)
	if err != nil {
		return llmclient.Extracted{}, err
	}
	return llmclient.Extract(resp)
}

// Close releases the provider and forgets all handles.
func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ready.Store(false)
	g.handles.Purge()
	if g.provider == nil {
		return nil
	}
	err := g.provider.Close()
	g.provider = nil
	return err
}
