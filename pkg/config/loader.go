package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

// Parse decodes a configuration document, fills in defaults and validates it
func Parse(data string) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}

	applyDefaults(&cfg, &md)

	if err := validateParser(&cfg); err != nil {
		return nil, err
	}
	if err := validateLog(&cfg); err != nil {
		return nil, err
	}
	if err := validateOutput(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in unset values. Limits are only defaulted when the key
// is absent, so an explicit 0 keeps the check disabled.
func applyDefaults(cfg *Config, md *toml.MetaData) {
	defined := func(key ...string) bool {
		return md != nil && md.IsDefined(key...)
	}
	if !defined("parser", "max_text") && cfg.Parser.MaxText == 0 {
		cfg.Parser.MaxText = DefaultMaxText
	}
	if !defined("parser", "max_lines") && cfg.Parser.MaxLines == 0 {
		cfg.Parser.MaxLines = DefaultMaxLines
	}

	if strings.TrimSpace(cfg.Log.Level) == "" {
		cfg.Log.Level = "info"
	}
	if strings.TrimSpace(cfg.Log.Format) == "" {
		cfg.Log.Format = "text"
	}
	if strings.TrimSpace(cfg.Output.Format) == "" {
		cfg.Output.Format = "human"
	}
}

func validateParser(cfg *Config) error {
	for i := range cfg.Parser.Overrides {
		o := &cfg.Parser.Overrides[i]
		if strings.TrimSpace(o.Pattern) == "" {
			return fmt.Errorf("parser.overrides[%d].pattern must not be empty", i)
		}
		m, err := compileOverride(o.Pattern)
		if err != nil {
			return fmt.Errorf("parser.overrides[%d].pattern %q: %w", i, o.Pattern, err)
		}
		o.matcher = m
	}
	return nil
}

func validateLog(cfg *Config) error {
	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", cfg.Log.Level)
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be one of: text, json; got %q", cfg.Log.Format)
	}
	return nil
}

func validateOutput(cfg *Config) error {
	switch strings.ToLower(cfg.Output.Format) {
	case "human", "json", "yaml":
	default:
		return fmt.Errorf("output.format must be one of: human, json, yaml; got %q", cfg.Output.Format)
	}
	return nil
}
