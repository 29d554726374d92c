// Package config loads runtime settings: defaults, then an optional YAML
// file, then SPACES_ environment variables, then key=value overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/LyzrCore/spaces/pkg/orchestrator"
)

// EnvPrefix is stripped from environment variables; SPACES_SERVER_ADDR maps
// to server.addr.
const EnvPrefix = "SPACES_"

type Config struct {
	Log          LogConfig          `koanf:"log"`
	Server       ServerConfig       `koanf:"server"`
	Registry     RegistryConfig     `koanf:"registry"`
	Telemetry    TelemetryConfig    `koanf:"telemetry"`
	Orchestrator OrchestratorConfig `koanf:"orchestrator"`
	Theme        ThemeConfig        `koanf:"theme"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // json, text
}

type ServerConfig struct {
	Addr      string        `koanf:"addr"`
	Assets    string        `koanf:"assets"`    // URL prefix for the stylesheet and script
	Templates string        `koanf:"templates"` // directory overriding the embedded HTML templates
	Shutdown  time.Duration `koanf:"shutdown"`
}

type RegistryConfig struct {
	Path string `koanf:"path"` // empty uses the built-in registry
}

type TelemetryConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Exporter string `koanf:"exporter"` // stdout, none
	Service  string `koanf:"service"`
}

type OrchestratorConfig struct {
	IDs    string       `koanf:"ids"` // random, sequence, uuid
	Delays DelaysConfig `koanf:"delays"`
}

type DelaysConfig struct {
	Analyzing    time.Duration `koanf:"analyzing"`
	Processing   time.Duration `koanf:"processing"`
	Synthesizing time.Duration `koanf:"synthesizing"`
}

type ThemeConfig struct {
	Name    string `koanf:"name"`
	Variant string `koanf:"variant"`
}

// StageDelays converts the configured delays.
func (d DelaysConfig) StageDelays() orchestrator.StageDelays {
	return orchestrator.StageDelays{
		Analyzing:    d.Analyzing,
		Processing:   d.Processing,
		Synthesizing: d.Synthesizing,
	}
}

func defaults(k *koanf.Koanf) {
	delays := orchestrator.DefaultStageDelays()

	k.Set("log.level", "info")
	k.Set("log.format", "text")
	k.Set("server.addr", ":8080")
	k.Set("server.assets", "/assets")
	k.Set("server.templates", "")
	k.Set("server.shutdown", "5s")
	k.Set("registry.path", "")
	k.Set("telemetry.enabled", false)
	k.Set("telemetry.exporter", "stdout")
	k.Set("telemetry.service", "spaces")
	k.Set("orchestrator.ids", "random")
	k.Set("orchestrator.delays.analyzing", delays.Analyzing.String())
	k.Set("orchestrator.delays.processing", delays.Processing.String())
	k.Set("orchestrator.delays.synthesizing", delays.Synthesizing.String())
	k.Set("theme.name", "")
	k.Set("theme.variant", "")
}

// Load builds a Config. path may be empty. Each override is "key=value"
// with a dotted key, for example "server.addr=:9090".
func Load(path string, overrides ...string) (*Config, error) {
	k := koanf.New(".")
	defaults(k)

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("config: load env: %w", err)
	}

	for _, override := range overrides {
		key, value, ok := strings.Cut(override, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("config: override %q is not key=value", override)
		}
		if err := k.Set(key, strings.TrimSpace(value)); err != nil {
			return nil, fmt.Errorf("config: override %s: %w", key, err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the rest of the program cannot use.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("config: log.format must be text or json, got %q", c.Log.Format)
	}
	switch strings.ToLower(c.Telemetry.Exporter) {
	case "stdout", "none", "":
	default:
		return fmt.Errorf("config: telemetry.exporter must be stdout or none, got %q", c.Telemetry.Exporter)
	}
	if _, err := orchestrator.IDGeneratorByName(c.Orchestrator.IDs); err != nil {
		return fmt.Errorf("config: orchestrator.ids: %w", err)
	}
	d := c.Orchestrator.Delays
	if d.Analyzing < 0 || d.Processing < 0 || d.Synthesizing < 0 {
		return fmt.Errorf("config: orchestrator delays must not be negative")
	}
	return nil
}
