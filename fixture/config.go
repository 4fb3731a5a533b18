package fixture

import (
	"fmt"
	"os"
)

// EnvVar is the process environment variable consulted for the active
// environment when Config.Environment is empty.
const EnvVar = "APP_ENV"

// Config holds fixture lifecycle configuration. Set once during
// initialization; read-only afterward.
type Config struct {
	// LoadOnStartup triggers a full fixture load when the manager starts and
	// the environment matches.
	LoadOnStartup bool `mapstructure:"load_on_startup"`

	// ErrorOnFailure makes setup failures fatal: startup aborts and the
	// setup operations report errors to their callers. When false, failures
	// are logged and swallowed.
	ErrorOnFailure bool `mapstructure:"error_on_failure"`

	// Environments lists the environments in which startup auto-load is
	// active. Explicit setup and teardown calls work regardless.
	Environments []string `mapstructure:"environments"`

	// Path is the fixtures directory, relative to the application root.
	Path string `mapstructure:"path"`

	// Environment overrides the active environment. When empty, the APP_ENV
	// process environment variable is consulted.
	Environment string `mapstructure:"environment"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if len(c.Environments) == 0 {
		c.Environments = []string{"test"}
	}
	if c.Path == "" {
		c.Path = "server/test-fixtures"
	}
}

// Validate checks that required fields are present.
func (c *Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("fixtures path is required")
	}
	for _, env := range c.Environments {
		if env == "" {
			return fmt.Errorf("environments must not contain empty names")
		}
	}
	return nil
}

// ActiveEnvironment returns the configured environment, falling back to the
// APP_ENV process environment variable, then "development".
func (c *Config) ActiveEnvironment() string {
	if c.Environment != "" {
		return c.Environment
	}
	if env := os.Getenv(EnvVar); env != "" {
		return env
	}
	return "development"
}

// EnvironmentMatches reports whether the active environment is one of the
// configured environments.
func (c *Config) EnvironmentMatches() bool {
	active := c.ActiveEnvironment()
	for _, env := range c.Environments {
		if env == active {
			return true
		}
	}
	return false
}
