package fixture

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/skillsenselab/fixturekit/component"
	"github.com/skillsenselab/fixturekit/logger"
)

// Manager wires configuration, environment gating, and the public setup and
// teardown operations. It implements component.Component so hosts using a
// component registry get startup auto-load and health reporting for free.
type Manager struct {
	cfg     Config
	root    string
	models  ModelRegistry
	sources []DataSource
	log     *logger.Logger

	once     sync.Once
	store    *Store
	loader   *Loader
	teardown *Teardown
}

var _ component.Component = (*Manager)(nil)

// NewManager creates a fixture manager. Configure it with the With builders
// before Start or the first operation.
func NewManager(cfg Config, log *logger.Logger) *Manager {
	cfg.ApplyDefaults()
	return &Manager{
		cfg:  cfg,
		root: ".",
		log:  log.WithComponent("fixtures"),
	}
}

// WithRoot sets the application root the fixtures path is resolved against.
func (m *Manager) WithRoot(dir string) *Manager {
	m.root = dir
	return m
}

// WithModels sets the host-owned model registry.
func (m *Manager) WithModels(models ModelRegistry) *Manager {
	m.models = models
	return m
}

// WithSources sets the host-owned data sources torn down by Teardown.
func (m *Manager) WithSources(sources ...DataSource) *Manager {
	m.sources = append(m.sources, sources...)
	return m
}

// init builds the store, loader, and teardown coordinator once, after all
// builders have run.
func (m *Manager) init() {
	m.once.Do(func() {
		dir := filepath.Join(m.root, strings.Trim(m.cfg.Path, "/"))
		m.store = NewStore(dir, m.log)
		m.loader = NewLoader(m.store, m.models, m.log)
		m.teardown = NewTeardown(m.sources, m.log)
	})
}

// Store returns the manager's fixture store.
func (m *Manager) Store() *Store {
	m.init()
	return m.store
}

// Enabled reports whether the active environment is one of the configured
// environments. Startup auto-load only happens when enabled; explicit
// operations work regardless.
func (m *Manager) Enabled() bool {
	return m.cfg.EnvironmentMatches()
}

// Name returns the component name.
func (m *Manager) Name() string { return "fixtures" }

// Start applies environment gating and, when configured, performs the
// startup auto-load. A load failure aborts startup only when ErrorOnFailure
// is set.
func (m *Manager) Start(ctx context.Context) error {
	m.init()

	if !m.Enabled() {
		m.log.Info("Fixtures disabled for environment", map[string]interface{}{
			"environment":  m.cfg.ActiveEnvironment(),
			"environments": m.cfg.Environments,
		})
		return nil
	}

	if !m.cfg.LoadOnStartup {
		return nil
	}

	m.log.Info("Loading all fixtures on startup", map[string]interface{}{
		"path": m.store.Dir(),
	})
	return m.Setup(ctx, All())
}

// Stop releases nothing; the manager holds no connections of its own.
func (m *Manager) Stop(_ context.Context) error { return nil }

// Health reports whether the fixtures directory is readable.
func (m *Manager) Health(_ context.Context) component.Health {
	m.init()

	if _, err := m.store.List(); err != nil {
		return component.Health{
			Name:    m.Name(),
			Status:  component.StatusUnhealthy,
			Message: err.Error(),
		}
	}
	return component.Health{Name: m.Name(), Status: component.StatusHealthy}
}

// Setup loads the selected fixtures into their models. When ErrorOnFailure
// is false, failures are logged and the caller observes success.
func (m *Manager) Setup(ctx context.Context, sel Selection) error {
	m.init()

	err := m.loader.Load(ctx, sel)
	if err == nil {
		return nil
	}
	if m.cfg.ErrorOnFailure {
		return err
	}

	m.log.Error("Fixture setup failed", map[string]interface{}{
		"selection":       sel.String(),
		logger.FieldError: err.Error(),
	})
	return nil
}

// Teardown re-synchronizes the selected models on every data source. The
// run always succeeds; partial failures are logged and returned in the
// report.
func (m *Manager) Teardown(ctx context.Context, sel Selection) Report {
	m.init()
	return m.teardown.Run(ctx, sel)
}
