package fixture

import (
	"context"
	"errors"
	"sync"

	apperrors "github.com/skillsenselab/fixturekit/errors"
	"github.com/skillsenselab/fixturekit/logger"
)

// Loader inserts fixture records into their corresponding models.
type Loader struct {
	store  *Store
	models ModelRegistry
	log    *logger.Logger
}

// NewLoader creates a loader over the given store and model registry.
func NewLoader(store *Store, models ModelRegistry, log *logger.Logger) *Loader {
	return &Loader{
		store:  store,
		models: models,
		log:    log.WithComponent("fixture-loader"),
	}
}

// LoadOne inserts the named fixture's records into the model registered
// under the same name.
func (l *Loader) LoadOne(ctx context.Context, name string) error {
	records, err := l.store.Load(name)
	if err != nil {
		return err
	}

	if !l.models.HasModel(name) {
		return apperrors.ModelNotFound(name)
	}

	if err := l.models.CreateRecords(ctx, name, records); err != nil {
		return err
	}

	l.log.Info("Fixture loaded", map[string]interface{}{
		logger.FieldFixture: name,
		"records":           len(records),
	})
	return nil
}

// Load runs LoadOne for every selected fixture with unbounded parallelism.
// All failures are collected; a failing fixture does not stop the others and
// partially-applied fixtures are not rolled back.
func (l *Loader) Load(ctx context.Context, sel Selection) error {
	names := sel.Names()
	if sel.IsAll() {
		var err error
		names, err = l.store.List()
		if err != nil {
			return err
		}
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			if err := l.LoadOne(ctx, name); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(name)
	}
	wg.Wait()

	return errors.Join(errs...)
}
