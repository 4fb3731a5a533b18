package logger

// Config holds logger configuration.
type Config struct {
	// Level is the minimum level to emit: debug, info, warn, error.
	Level string `mapstructure:"level"`

	// Format selects the output encoding: "json" or "console".
	Format string `mapstructure:"format"`

	// Output selects the destination: "stdout" or "stderr".
	Output string `mapstructure:"output"`

	// NoColor disables ANSI colors in console output.
	NoColor bool `mapstructure:"no_color"`

	// Timestamp controls whether a timestamp field is attached.
	Timestamp bool `mapstructure:"timestamp"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "json"
	}
	if c.Output == "" {
		c.Output = "stdout"
	}
}
