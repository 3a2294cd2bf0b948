package llm

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"sync/atomic"

	"briefforge/internal/llmclient"
)

// Responder scripts a FakeProvider. call is 1-based across all handles.
type Responder func(ctx context.Context, cfg llmclient.ModelConfig, call int, text string) (any, error)

// FakeProvider returns deterministic responses for offline runs and tests.
// With a nil Responder it answers each prompt kind with a minimal payload.
type FakeProvider struct {
	Respond Responder

	mu      sync.Mutex
	prompts []string
	calls   atomic.Int64
	created atomic.Int64
}

var _ llmclient.Provider = (*FakeProvider)(nil)

// Connector returns a llmclient.Connector that always yields f.
func (f *FakeProvider) Connector() llmclient.Connector {
	return func(context.Context, llmclient.ConnectOptions) (llmclient.Provider, error) { return f, nil }
}

func (f *FakeProvider) CreateModel(_ context.Context, cfg llmclient.ModelConfig) (llmclient.Model, error) {
	f.created.Add(1)
	return ModelFunc(func(ctx context.Context, text string) (any, error) {
		n := int(f.calls.Add(1))
		f.mu.Lock()
		f.prompts = append(f.prompts, text)
		f.mu.Unlock()
		if f.Respond != nil {
			return f.Respond(ctx, cfg, n, text)
		}
		return map[string]any{
			"text": fakePayload(text),
			"usageMetadata": map[string]any{
				"promptTokenCount":     len(text) / 4,
				"candidatesTokenCount": 32,
				"totalTokenCount":      len(text)/4 + 32,
			},
		}, nil
	}), nil
}

func (f *FakeProvider) Close() error { return nil }

// Calls returns the number of GenerateContent calls so far.
func (f *FakeProvider) Calls() int { return int(f.calls.Load()) }

// Created returns the number of CreateModel calls so far.
func (f *FakeProvider) Created() int { return int(f.created.Load()) }

// Prompts returns a copy of every prompt received.
func (f *FakeProvider) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

const fakeComponent = "function App() {\n  const [page, setPage] = React.useState('Home');\n  return <main className=\"p-8\">{page}</main>;\n}\n\nexport default App;"

var fakeAnalysis = map[string]any{
	"title":           "Fake Project",
	"overview":        "Offline analysis produced without a model.",
	"features":        []string{"Landing page"},
	"techStack":       map[string]any{"frontend": "React", "backend": "Node.js", "database": "PostgreSQL", "deployment": "Vercel", "other": []string{}},
	"timeline":        map[string]any{"totalWeeks": 4, "phases": []any{map[string]any{"phase": "Build", "weeks": 4, "deliverables": []string{"MVP"}}}},
	"budgetBreakdown": map[string]any{"total": "TBD", "breakdown": []any{map[string]any{"category": "Development", "percentage": 100, "description": "All work"}}},
	"risks":           []string{},
	"recommendations": []string{},
}

func fakePayload(prompt string) string {
	switch {
	case strings.Contains(prompt, `{"analysis": {...}, "code": "..."}`):
		b, _ := json.Marshal(map[string]any{"analysis": fakeAnalysis, "code": fakeComponent})
		return string(b)
	case strings.Contains(prompt, "- techStack ("):
		b, _ := json.Marshal(fakeAnalysis)
		return string(b)
	default:
		return "```jsx\n" + fakeComponent + "\n```"
	}
}
