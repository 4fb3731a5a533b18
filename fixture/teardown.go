package fixture

import (
	"context"
	"sync"

	"github.com/skillsenselab/fixturekit/logger"
)

// Failure records one data source whose re-synchronization failed.
type Failure struct {
	Source string `json:"source"`
	Err    error  `json:"-"`
}

// Report is the outcome of a teardown run. Teardown is best-effort: the run
// as a whole always succeeds, and callers that care about partial failures
// inspect the report.
type Report struct {
	Failures []Failure `json:"failures,omitempty"`
}

// OK reports whether every data source re-synchronized cleanly.
func (r Report) OK() bool { return len(r.Failures) == 0 }

// Teardown erases previously loaded fixture data by re-synchronizing model
// storage per data source.
type Teardown struct {
	sources []DataSource
	log     *logger.Logger
}

// NewTeardown creates a teardown coordinator over the given data sources.
func NewTeardown(sources []DataSource, log *logger.Logger) *Teardown {
	return &Teardown{
		sources: sources,
		log:     log.WithComponent("fixture-teardown"),
	}
}

// Run re-synchronizes the selected models on every registered data source,
// with unordered parallelism across sources. Individual failures are logged
// and collected into the report; they never fail the run.
func (t *Teardown) Run(ctx context.Context, sel Selection) Report {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures []Failure
	)
	for _, source := range t.sources {
		wg.Add(1)
		go func(source DataSource) {
			defer wg.Done()
			if err := source.Resync(ctx, sel.Names()); err != nil {
				t.log.Error("Data source re-synchronization failed", map[string]interface{}{
					logger.FieldSource: source.Name(),
					logger.FieldError:  err.Error(),
				})
				mu.Lock()
				failures = append(failures, Failure{Source: source.Name(), Err: err})
				mu.Unlock()
				return
			}
			t.log.Debug("Data source re-synchronized", map[string]interface{}{
				logger.FieldSource: source.Name(),
				"selection":        sel.String(),
			})
		}(source)
	}
	wg.Wait()

	return Report{Failures: failures}
}
