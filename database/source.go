package database

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/skillsenselab/fixturekit/errors"
	"github.com/skillsenselab/fixturekit/logger"
)

// Source is a named GORM-backed data source with a registry of models.
// Model lookup is exact-case by Model and case-insensitive by ModelFold.
type Source struct {
	name   string
	db     *gorm.DB
	log    *logger.Logger
	cfg    Config
	closed bool

	mu     sync.RWMutex
	models map[string]registeredModel
}

type registeredModel struct {
	name  string
	table string
	model interface{}
}

// Open connects to a data source with retry logic and connection pooling.
func Open(ctx context.Context, name string, dialector gorm.Dialector, cfg Config, log *logger.Logger) (*Source, error) {
	cfg.ApplyDefaults()

	slowThreshold, _ := time.ParseDuration(cfg.SlowQueryThreshold)
	gormCfg := &gorm.Config{
		Logger: newSQLLogger(log, slowThreshold, parseLogLevel(cfg.LogLevel)),
	}

	var db *gorm.DB
	var err error
	for attempt := 1; attempt <= cfg.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("connection canceled: %w", ctx.Err())
		}

		db, err = gorm.Open(dialector, gormCfg)
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else if pingErr := sqlDB.PingContext(ctx); pingErr != nil {
				err = pingErr
			} else {
				sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
				sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
				if lifetime, parseErr := time.ParseDuration(cfg.ConnMaxLifetime); parseErr == nil {
					sqlDB.SetConnMaxLifetime(lifetime)
				}

				log.Info("Data source connected", map[string]interface{}{
					"source":  name,
					"attempt": attempt,
				})
				return newSource(name, db, cfg, log), nil
			}
		}

		if attempt < cfg.MaxRetries {
			backoff := time.Duration(attempt) * time.Second
			log.Warn("Data source connection failed, retrying", map[string]interface{}{
				"source":  name,
				"attempt": attempt,
				"error":   err.Error(),
				"backoff": backoff.String(),
			})
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("connection canceled during retry: %w", ctx.Err())
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("failed to connect to %s after %d attempts: %w", name, cfg.MaxRetries, err)
}

// NewSource wraps an already-open GORM handle. Useful for tests and hosts
// that manage their own connections.
func NewSource(name string, db *gorm.DB, log *logger.Logger) *Source {
	return newSource(name, db, Config{}, log)
}

func newSource(name string, db *gorm.DB, cfg Config, log *logger.Logger) *Source {
	return &Source{
		name:   name,
		db:     db,
		cfg:    cfg,
		log:    log.WithComponent("database").WithFields(map[string]interface{}{logger.FieldSource: name}),
		models: make(map[string]registeredModel),
	}
}

// Name returns the data source name.
func (s *Source) Name() string { return s.name }

// DB returns the underlying GORM handle.
func (s *Source) DB() *gorm.DB { return s.db }

// RegisterModel registers a model struct under a fixture name. The backing
// table is taken from the model's TableName method when present, otherwise
// the registered name is used as the table.
func (s *Source) RegisterModel(name string, model interface{}) error {
	if model == nil {
		return fmt.Errorf("model for %q must not be nil", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.models[name]; exists {
		return fmt.Errorf("model %q already registered on source %s", name, s.name)
	}

	table := name
	if tabler, ok := model.(interface{ TableName() string }); ok {
		table = tabler.TableName()
	}

	s.models[name] = registeredModel{name: name, table: table, model: model}
	return nil
}

// HasModel reports whether a model is registered under name (exact match).
func (s *Source) HasModel(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.models[name]
	return ok
}

// ModelNames returns the registered model names in sorted order.
func (s *Source) ModelNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.models))
	for name := range s.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// modelFold resolves a model case-insensitively.
func (s *Source) modelFold(name string) (registeredModel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if m, ok := s.models[name]; ok {
		return m, true
	}
	for registered, m := range s.models {
		if strings.EqualFold(registered, name) {
			return m, true
		}
	}
	return registeredModel{}, false
}

// CreateRecords bulk-inserts records into the model registered under name.
// The lookup is exact-case; a miss returns MODEL_NOT_FOUND.
func (s *Source) CreateRecords(ctx context.Context, name string, records []map[string]any) error {
	s.mu.RLock()
	m, ok := s.models[name]
	s.mu.RUnlock()
	if !ok {
		return apperrors.ModelNotFound(name)
	}
	if len(records) == 0 {
		return nil
	}

	if err := s.db.WithContext(ctx).Table(m.table).Create(records).Error; err != nil {
		return apperrors.Insert(name, err)
	}

	s.log.Debug("Records inserted", map[string]interface{}{
		logger.FieldModel: name,
		"records":         len(records),
	})
	return nil
}

// Resync recreates backing storage for the named models by dropping and
// auto-migrating their tables, truncating existing data. Names are matched
// case-insensitively against the registered model set; unmatched names are
// skipped. An empty list resynchronizes every registered model.
func (s *Source) Resync(ctx context.Context, names []string) error {
	var targets []registeredModel
	if len(names) == 0 {
		s.mu.RLock()
		for _, m := range s.models {
			targets = append(targets, m)
		}
		s.mu.RUnlock()
	} else {
		seen := make(map[string]bool)
		for _, name := range names {
			m, ok := s.modelFold(name)
			if !ok {
				s.log.Debug("No model matches teardown selection", map[string]interface{}{
					logger.FieldModel: name,
				})
				continue
			}
			if seen[m.name] {
				continue
			}
			seen[m.name] = true
			targets = append(targets, m)
		}
	}

	db := s.db.WithContext(ctx)
	for _, m := range targets {
		if err := db.Migrator().DropTable(m.model); err != nil {
			return apperrors.Migration(s.name, err).WithDetail("model", m.name)
		}
		if err := db.AutoMigrate(m.model); err != nil {
			return apperrors.Migration(s.name, err).WithDetail("model", m.name)
		}
		s.log.Debug("Model re-synchronized", map[string]interface{}{
			logger.FieldModel: m.name,
		})
	}
	return nil
}

// Ping verifies the connection is alive, respecting the context.
func (s *Source) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection pool. Safe to call multiple times.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	s.closed = true
	return sqlDB.Close()
}
