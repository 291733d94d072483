// Package config resolves runtime settings from defaults, an optional TOML
// file, RPDFORM_* environment variables and command-line flags, in that
// order of increasing precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all runtime settings.
type Config struct {
	Data   DataConfig   `toml:"data"`
	Log    LogConfig    `toml:"log"`
	Roster RosterConfig `toml:"roster"`
	Script ScriptConfig `toml:"script"`
}

// DataConfig locates the two data sources. Empty means the embedded copy.
type DataConfig struct {
	Dataset         string `toml:"dataset"`
	Stages          string `toml:"stages"`
	StagesTimeoutMs int    `toml:"stages_timeout_ms"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// RosterConfig tunes roster sheet matching.
type RosterConfig struct {
	Fold bool `toml:"fold"`
}

// ScriptConfig feeds the generated automation script.
type ScriptConfig struct {
	TargetURL string `toml:"target_url"`
}

// DefaultConfig returns the zero-configuration settings: embedded data,
// info-level text logs, no roster folding.
func DefaultConfig() Config {
	return Config{
		Data: DataConfig{
			StagesTimeoutMs: 10000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// StagesTimeout returns the stage document fetch timeout.
func (c Config) StagesTimeout() time.Duration {
	return time.Duration(c.Data.StagesTimeoutMs) * time.Millisecond
}

// Load builds a Config from defaults, the TOML file at path (skipped when
// path is empty) and the environment. RPDFORM_CONFIG names the file when
// path is empty.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv("RPDFORM_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("RPDFORM_DATA"); v != "" {
		cfg.Data.Dataset = v
	}
	if v := os.Getenv("RPDFORM_STAGES"); v != "" {
		cfg.Data.Stages = v
	}
	if v := os.Getenv("RPDFORM_STAGES_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Data.StagesTimeoutMs = n
		}
	}
	if v := os.Getenv("RPDFORM_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("RPDFORM_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("RPDFORM_ROSTER_FOLD"); v != "" {
		cfg.Roster.Fold, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("RPDFORM_TARGET_URL"); v != "" {
		cfg.Script.TargetURL = v
	}
}

// Validate rejects settings no component can run with.
func (c Config) Validate() error {
	if _, ok := parseLevel(c.Log.Level); !ok {
		return fmt.Errorf("log.level %q: must be one of debug, info, warn, error", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q: must be text or json", c.Log.Format)
	}
	if c.Data.StagesTimeoutMs <= 0 {
		return fmt.Errorf("data.stages_timeout_ms must be positive, got %d", c.Data.StagesTimeoutMs)
	}
	return nil
}
