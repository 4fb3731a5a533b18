// Package fixture loads and tears down named sets of JSON seed data for
// test and development environments.
//
// A fixture is one JSON file in the configured fixtures directory, named
// <name>.json and containing a single record object or an array of record
// objects. The fixture name maps to a model registered on a data source;
// setup bulk-inserts the records through the model, teardown re-synchronizes
// model storage per data source, truncating the data.
//
//	mgr := fixture.NewManager(cfg, log).
//	    WithModels(source).
//	    WithSources(source)
//	_ = mgr.Start(ctx)          // environment gating + optional startup load
//	mgr.InstallRoutes(router)   // GET /setup, GET /teardown
package fixture
