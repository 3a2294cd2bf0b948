package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"briefforge/internal/artifact"
	"briefforge/internal/cache"
	"briefforge/internal/config"
	"briefforge/internal/generation"
	"briefforge/internal/llm"
	"briefforge/internal/metrics"
	"briefforge/internal/util/jsonutil"
)

type rootOptions struct {
	fake       bool
	verbose    bool
	trace      bool
	model      string
	inputs     map[string]string
	inputsFile string
}

func (o *rootOptions) bind(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.BoolVar(&o.fake, "fake", false, "answer with a local fake model instead of Vertex AI")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "log at debug level")
	f.BoolVar(&o.trace, "trace", false, "print OpenTelemetry spans to stderr")
	f.StringVarP(&o.model, "model", "m", "", "model id: flash or pro (default from config)")
	f.StringToStringVarP(&o.inputs, "input", "i", nil, "structured input key=value; list values are comma separated")
	f.StringVar(&o.inputsFile, "inputs-file", "", "JSON file with structured inputs")
}

// structuredInputs merges --inputs-file with --input flags; flags win.
// Comma-separated flag values become lists.
func (o *rootOptions) structuredInputs() (artifact.Inputs, error) {
	in := artifact.Inputs{}
	if o.inputsFile != "" {
		data, err := os.ReadFile(o.inputsFile)
		if err != nil {
			return nil, fmt.Errorf("read inputs: %w", err)
		}
		if err := json.Unmarshal(data, &in); err != nil {
			return nil, fmt.Errorf("parse inputs: %w", err)
		}
	}
	for k, v := range o.inputs {
		if strings.Contains(v, ",") {
			parts := strings.Split(v, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			in[k] = parts
			continue
		}
		in[k] = v
	}
	return in, nil
}

// session is one configured service plus everything that must be released
// when the command finishes.
type session struct {
	svc      *generation.Service
	cfg      *config.Config
	log      *zap.Logger
	shutdown []func(context.Context) error
}

func (o *rootOptions) open(ctx context.Context) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := newLogger(o.verbose)
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg, log: log}

	if o.trace {
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(os.Stderr), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
		otel.SetTracerProvider(tp)
		s.shutdown = append(s.shutdown, tp.Shutdown)
	}

	m, err := metrics.NewGenerationMetrics()
	if err != nil {
		return nil, err
	}

	gwOpts := []llm.Option{llm.WithLogger(log), llm.WithProbe(cfg.Model.ProbeOnInit)}
	creds := llm.Credentials{
		Project:         cfg.Model.Project,
		Location:        cfg.Model.Location,
		CredentialsFile: cfg.Model.CredentialsFile,
	}
	if o.fake {
		gwOpts = append(gwOpts, llm.WithConnector((&llm.FakeProvider{}).Connector()))
		if creds.Project == "" {
			creds.Project = "local-fake"
		}
	}

	defaultModel := cfg.Model.Default
	if o.model != "" {
		defaultModel = o.model
	}
	s.svc = generation.New(
		llm.NewGateway(gwOpts...),
		cache.NewResults(cfg.Cache.TTL),
		generation.WithLogger(log),
		generation.WithMetrics(m),
		generation.WithDefaultModel(defaultModel),
		generation.WithRetryDelay(cfg.Generation.RetryDelay),
		generation.WithSweepInterval(cfg.Cache.SweepInterval),
		generation.WithSingleFlight(cfg.Generation.SingleFlight),
	)
	s.svc.Init(ctx, creds)
	return s, nil
}

func (s *session) close(ctx context.Context) {
	if err := s.svc.Shutdown(); err != nil {
		s.log.Warn("shutdown", zap.Error(err))
	}
	for _, fn := range s.shutdown {
		if err := fn(ctx); err != nil {
			s.log.Warn("shutdown", zap.Error(err))
		}
	}
	_ = s.log.Sync()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

func writeJSON(w io.Writer, v any) error {
	b, err := jsonutil.MarshalNoEscapeIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// readText returns the flag value, the contents of the file it names when
// prefixed with '@', or stdin for "-".
func readText(in io.Reader, value string) (string, error) {
	switch {
	case value == "-":
		b, err := io.ReadAll(in)
		return string(b), err
	case strings.HasPrefix(value, "@"):
		b, err := os.ReadFile(strings.TrimPrefix(value, "@"))
		return string(b), err
	default:
		return value, nil
	}
}
