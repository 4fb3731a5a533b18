package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/skillsenselab/fixturekit/component"
	"github.com/skillsenselab/fixturekit/logger"
)

// DriverFunc builds a GORM dialector from a DSN, keeping the package free of
// driver imports. E.g. func(dsn string) gorm.Dialector { return sqlite.Open(dsn) }.
type DriverFunc func(dsn string) gorm.Dialector

// Component wraps a Source and implements component.Component for lifecycle
// management.
type Component struct {
	name   string
	cfg    Config
	log    *logger.Logger
	driver DriverFunc
	models []namedModel
	source *Source
}

type namedModel struct {
	name  string
	model interface{}
}

var _ component.Component = (*Component)(nil)

// NewComponent creates a data source component for use with the component
// registry.
func NewComponent(name string, cfg Config, log *logger.Logger) *Component {
	return &Component{name: name, cfg: cfg, log: log}
}

// WithDriver sets the database driver used to open the connection.
func (c *Component) WithDriver(driver DriverFunc) *Component {
	c.driver = driver
	return c
}

// WithModel registers a model to be added to the source on Start.
func (c *Component) WithModel(name string, model interface{}) *Component {
	c.models = append(c.models, namedModel{name: name, model: model})
	return c
}

// Source returns the underlying Source, or nil if not started.
func (c *Component) Source() *Source { return c.source }

// Name returns the component name.
func (c *Component) Name() string { return "database:" + c.name }

// Start connects to the data source and registers the configured models.
func (c *Component) Start(ctx context.Context) error {
	if c.driver == nil {
		return fmt.Errorf("data source %s: no driver configured", c.name)
	}
	if err := c.cfg.Validate(); err != nil {
		return fmt.Errorf("data source %s: %w", c.name, err)
	}

	source, err := Open(ctx, c.name, c.driver(c.cfg.DSN), c.cfg, c.log)
	if err != nil {
		return fmt.Errorf("data source %s start: %w", c.name, err)
	}

	for _, m := range c.models {
		if err := source.RegisterModel(m.name, m.model); err != nil {
			_ = source.Close()
			return err
		}
	}

	c.source = source
	return nil
}

// Stop gracefully closes the connection.
func (c *Component) Stop(_ context.Context) error {
	if c.source == nil {
		return nil
	}
	return c.source.Close()
}

// Health returns the current health status of the data source.
func (c *Component) Health(ctx context.Context) component.Health {
	if c.source == nil {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusUnhealthy,
			Message: "data source not started",
		}
	}
	if err := c.source.Ping(ctx); err != nil {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusUnhealthy,
			Message: fmt.Sprintf("ping failed: %v", err),
		}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}
