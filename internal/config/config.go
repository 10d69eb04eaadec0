// Package config holds the ambient run configuration for a pipeline.Analyze
// call: output format and the set of enabled rule codes. Grounded on go-dws's functional-options
// pattern used throughout internal/lexer.LexerState and internal/parser
// constructors.
package config

// Format selects the report's serialization.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// Config is the resolved set of options for one analysis run.
type Config struct {
	Format Format
	Color  bool
	// DisabledRules lists diagnostic codes to suppress entirely (an empty
	// set enables every rule in rules.Default).
	DisabledRules map[string]bool
}

// Option configures a Config.
type Option func(*Config)

// Default returns the baseline configuration: text output, no color,
// every rule enabled.
func Default() *Config {
	return &Config{Format: FormatText, DisabledRules: make(map[string]bool)}
}

// WithFormat sets the report serialization.
func WithFormat(f Format) Option {
	return func(c *Config) { c.Format = f }
}

// WithColor toggles ANSI color in text output.
func WithColor(on bool) Option {
	return func(c *Config) { c.Color = on }
}

// WithDisabledRules suppresses the given diagnostic codes.
func WithDisabledRules(codes ...string) Option {
	return func(c *Config) {
		for _, code := range codes {
			c.DisabledRules[code] = true
		}
	}
}

// New builds a Config from Default plus the given options.
func New(opts ...Option) *Config {
	c := Default()
	for _, opt := range opts {
		opt(c)
	}
	return c
}
