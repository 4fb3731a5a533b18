package fixture

import "context"

// ModelRegistry resolves fixture names to insertable models. It is owned by
// the host application; fixturekit only reads from it. database.Source
// implements this interface.
type ModelRegistry interface {
	// HasModel reports whether a model is registered under name. The match is
	// exact-case: a fixture file whose casing differs from the registered
	// model name will not load.
	HasModel(name string) bool

	// CreateRecords bulk-inserts records into the model registered under
	// name.
	CreateRecords(ctx context.Context, name string, records []map[string]any) error
}

// DataSource is one backing store whose model storage can be
// re-synchronized. database.Source implements this interface.
type DataSource interface {
	// Name identifies the data source in logs and teardown reports.
	Name() string

	// Resync recreates backing storage for the named models, truncating
	// their data. Names are matched case-insensitively against the source's
	// model set; an empty list covers every model on the source.
	Resync(ctx context.Context, names []string) error
}
