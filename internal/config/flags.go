package config

import "github.com/spf13/pflag"

// Flags holds the global command-line overrides.
type Flags struct {
	ConfigPath string
	Dataset    string
	Stages     string
	LogLevel   string
	LogFormat  string
	Fold       bool

	fs *pflag.FlagSet
}

// RegisterFlags adds the global flags to fs.
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.ConfigPath, "config", "", "path to a TOML config file")
	fs.StringVar(&f.Dataset, "data", "", "dataset file (.xlsx or .json); embedded data when empty")
	fs.StringVar(&f.Stages, "stages", "", "stage document path or http(s) URL; embedded when empty")
	fs.StringVar(&f.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.LogFormat, "log-format", "", "log format: text or json")
	fs.BoolVar(&f.Fold, "fold-roster", false, "match roster sheets ignoring diacritics and separators")
	return f
}

// Apply copies every flag the user set onto cfg.
func (f *Flags) Apply(cfg *Config) {
	if f == nil || f.fs == nil {
		return
	}
	if f.fs.Changed("data") {
		cfg.Data.Dataset = f.Dataset
	}
	if f.fs.Changed("stages") {
		cfg.Data.Stages = f.Stages
	}
	if f.fs.Changed("log-level") {
		cfg.Log.Level = f.LogLevel
	}
	if f.fs.Changed("log-format") {
		cfg.Log.Format = f.LogFormat
	}
	if f.fs.Changed("fold-roster") {
		cfg.Roster.Fold = f.Fold
	}
}

// Resolve loads the config named by the flags and applies the overrides.
func (f *Flags) Resolve() (Config, error) {
	cfg, err := Load(f.ConfigPath)
	if err != nil {
		return Config{}, err
	}
	f.Apply(&cfg)
	return cfg, cfg.Validate()
}
