package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultLocation      = "us-central1"
	defaultModel         = "flash"
	defaultCacheTTL      = time.Hour
	defaultSweepInterval = 10 * time.Minute
	defaultRetryDelay    = 2 * time.Second
)

type Config struct {
	Model      ModelConfig      `yaml:"model"`
	Cache      CacheConfig      `yaml:"cache"`
	Generation GenerationConfig `yaml:"generation"`
}

// ModelConfig locates the Vertex AI project. An empty Project leaves the
// gateway not ready and every request is answered by the fallback generator.
type ModelConfig struct {
	Project         string `yaml:"project"`
	Location        string `yaml:"location"`
	CredentialsFile string `yaml:"credentials_file"`
	Default         string `yaml:"default"`
	ProbeOnInit     bool   `yaml:"probe_on_init"`
}

type CacheConfig struct {
	TTL           time.Duration `yaml:"ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

type GenerationConfig struct {
	RetryDelay   time.Duration `yaml:"retry_delay"`
	SingleFlight bool          `yaml:"single_flight"`
}

// Default returns a Config with every default applied and nothing read from
// the environment.
func Default() *Config {
	return &Config{
		Model: ModelConfig{
			Location:    defaultLocation,
			Default:     defaultModel,
			ProbeOnInit: true,
		},
		Cache: CacheConfig{
			TTL:           defaultCacheTTL,
			SweepInterval: defaultSweepInterval,
		},
		Generation: GenerationConfig{
			RetryDelay: defaultRetryDelay,
		},
	}
}

// Load reads .env (if present), the environment, then the YAML file named by
// BRIEFFORGE_CONFIG. File values win over the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := fromEnv()
	if err != nil {
		return nil, err
	}
	if path := strings.TrimSpace(os.Getenv("BRIEFFORGE_CONFIG")); path != "" {
		if err := overlayFile(cfg, path); err != nil {
			return nil, err
		}
	}
	cfg.applyDefaults()
	return cfg, nil
}

func fromEnv() (*Config, error) {
	cfg := Default()
	cfg.Model.Project = firstNonEmpty(env("GOOGLE_CLOUD_PROJECT"), env("GCP_PROJECT_ID"))
	cfg.Model.Location = firstNonEmpty(env("GOOGLE_CLOUD_LOCATION"), env("GCP_LOCATION"), defaultLocation)
	cfg.Model.CredentialsFile = env("GOOGLE_APPLICATION_CREDENTIALS")
	cfg.Model.Default = firstNonEmpty(env("BRIEFFORGE_DEFAULT_MODEL"), defaultModel)

	var err error
	if cfg.Model.ProbeOnInit, err = envBool("BRIEFFORGE_PROBE_ON_INIT", true); err != nil {
		return nil, err
	}
	if cfg.Generation.SingleFlight, err = envBool("BRIEFFORGE_SINGLE_FLIGHT", false); err != nil {
		return nil, err
	}
	if cfg.Cache.TTL, err = envDuration("BRIEFFORGE_CACHE_TTL", defaultCacheTTL); err != nil {
		return nil, err
	}
	if cfg.Cache.SweepInterval, err = envDuration("BRIEFFORGE_CACHE_SWEEP", defaultSweepInterval); err != nil {
		return nil, err
	}
	if cfg.Generation.RetryDelay, err = envDuration("BRIEFFORGE_RETRY_DELAY", defaultRetryDelay); err != nil {
		return nil, err
	}
	return cfg, nil
}

func overlayFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	c.Model.Project = strings.TrimSpace(c.Model.Project)
	c.Model.Location = firstNonEmpty(strings.TrimSpace(c.Model.Location), defaultLocation)
	c.Model.Default = firstNonEmpty(strings.TrimSpace(c.Model.Default), defaultModel)
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = defaultCacheTTL
	}
	if c.Cache.SweepInterval <= 0 {
		c.Cache.SweepInterval = defaultSweepInterval
	}
	if c.Generation.RetryDelay < 0 {
		c.Generation.RetryDelay = defaultRetryDelay
	}
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envBool(key string, def bool) (bool, error) {
	raw := env(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	raw := env(key)
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
