// Package database provides named, GORM-backed data sources for fixture
// loading. A Source owns a model registry mapping fixture names to model
// structs, inserts opaque record maps through GORM's bulk create, and
// re-synchronizes model storage (drop + auto-migrate), which truncates the
// corresponding tables.
//
// Use Component with WithDriver to manage a Source's lifecycle:
//
//	cmp := database.NewComponent("default", cfg, log).
//	    WithDriver(func(dsn string) gorm.Dialector { return sqlite.Open(dsn) }).
//	    WithModel("users", &User{})
//	_ = cmp.Start(ctx)
package database
