// Package testutil provides an in-memory SQLite data source component for
// tests that exercise fixture loading and teardown without an external
// database.
package testutil
