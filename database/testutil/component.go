package testutil

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/skillsenselab/fixturekit/component"
	"github.com/skillsenselab/fixturekit/database"
	"github.com/skillsenselab/fixturekit/logger"
	"github.com/skillsenselab/fixturekit/testutil"
)

// Component is a test data source backed by SQLite in-memory. It implements
// both component.Component and testutil.TestComponent.
type Component struct {
	name    string
	source  *database.Source
	models  []namedModel
	started bool
	mu      sync.RWMutex
}

type namedModel struct {
	name  string
	model interface{}
}

var _ component.Component = (*Component)(nil)
var _ testutil.TestComponent = (*Component)(nil)

// NewComponent creates a new in-memory test data source.
func NewComponent(name string) *Component {
	return &Component{name: name}
}

// WithModel registers a model for the source; its table is auto-migrated on
// Start.
func (c *Component) WithModel(name string, model interface{}) *Component {
	c.models = append(c.models, namedModel{name: name, model: model})
	return c
}

// Source returns the underlying data source, or nil if not started.
func (c *Component) Source() *database.Source {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.source
}

// Name returns the component name.
func (c *Component) Name() string { return "database-test:" + c.name }

// Start opens the in-memory database, registers the configured models, and
// migrates their tables.
func (c *Component) Start(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return fmt.Errorf("component already started")
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to open test database: %w", err)
	}

	source := database.NewSource(c.name, db, logger.Nop())
	for _, m := range c.models {
		if err := source.RegisterModel(m.name, m.model); err != nil {
			return err
		}
		if err := db.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("auto-migrate %s failed: %w", m.name, err)
		}
	}

	c.source = source
	c.started = true
	return nil
}

// Stop closes the database connection.
func (c *Component) Stop(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started || c.source == nil {
		return nil
	}
	c.started = false
	return c.source.Close()
}

// Health returns the health status of the test data source.
func (c *Component) Health(ctx context.Context) component.Health {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.started || c.source == nil {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusUnhealthy,
			Message: "database not started",
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

// Reset clears all data from all tables while preserving the schema.
func (c *Component) Reset(_ context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.started || c.source == nil {
		return fmt.Errorf("component not started")
	}

	db := c.source.DB()
	var tables []string
	if err := db.Raw("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'").
		Scan(&tables).Error; err != nil {
		return fmt.Errorf("failed to list tables: %w", err)
	}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

// CountRows returns the number of rows in a table.
func (c *Component) CountRows(table string) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.started || c.source == nil {
		return 0, fmt.Errorf("component not started")
	}

	var count int64
	err := c.source.DB().Raw(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count).Error
	return count, err
}
