// Package config loads the TOML configuration of cdecl-stream
package config

import "github.com/gobwas/glob"

type Config struct {
	Parser Parser `toml:"parser"`
	Log    Log    `toml:"log"`
	Output Output `toml:"output"`
}

// Parser holds the buffering limits. Zero or negative disables a limit.
type Parser struct {
	MaxText   int        `toml:"max_text"`
	MaxLines  int        `toml:"max_lines"`
	Overrides []Override `toml:"overrides"`
}

// Override replaces the limits for files matching Pattern. A limit left out
// of the override falls back to the global one; an explicit 0 disables it.
type Override struct {
	Pattern  string `toml:"pattern"`
	MaxText  *int   `toml:"max_text"`
	MaxLines *int   `toml:"max_lines"`

	matcher glob.Glob
}

type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type Output struct {
	Format string `toml:"format"`
	Merge  bool   `toml:"merge"`
}

const (
	DefaultMaxText  = 10000
	DefaultMaxLines = 200
)

func DefaultConfig() *Config {
	cfg := &Config{
		Parser: Parser{
			MaxText:  DefaultMaxText,
			MaxLines: DefaultMaxLines,
		},
	}
	applyDefaults(cfg, nil)
	return cfg
}

// Limits returns the buffering limits for filename. The first override whose
// pattern matches wins; otherwise the global limits apply.
func (c *Config) Limits(filename string) (int, int) {
	for _, o := range c.Parser.Overrides {
		m := o.matcher
		if m == nil {
			var err error
			if m, err = compileOverride(o.Pattern); err != nil {
				continue
			}
		}
		if m.Match(filename) {
			return limit(o.MaxText, c.Parser.MaxText), limit(o.MaxLines, c.Parser.MaxLines)
		}
	}
	return c.Parser.MaxText, c.Parser.MaxLines
}

func limit(override *int, global int) int {
	if override != nil {
		return *override
	}
	return global
}

func compileOverride(pattern string) (glob.Glob, error) {
	return glob.Compile(pattern, '/')
}
