package fixture

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	apperrors "github.com/skillsenselab/fixturekit/errors"
	"github.com/skillsenselab/fixturekit/logger"
)

// fakeRegistry records bulk-create calls and can be told to reject models.
type fakeRegistry struct {
	mu      sync.Mutex
	models  map[string]bool
	failing map[string]error
	created map[string][]map[string]any
}

func newFakeRegistry(models ...string) *fakeRegistry {
	r := &fakeRegistry{
		models:  make(map[string]bool),
		failing: make(map[string]error),
		created: make(map[string][]map[string]any),
	}
	for _, m := range models {
		r.models[m] = true
	}
	return r
}

func (r *fakeRegistry) HasModel(name string) bool {
	return r.models[name]
}

func (r *fakeRegistry) CreateRecords(_ context.Context, name string, records []map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failing[name]; err != nil {
		return err
	}
	r.created[name] = append(r.created[name], records...)
	return nil
}

func (r *fakeRegistry) recordsFor(name string) []map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.created[name]
}

func newTestLoader(t *testing.T, reg *fakeRegistry, fixtures map[string]string) *Loader {
	t.Helper()
	dir := t.TempDir()
	for name, content := range fixtures {
		writeFixture(t, dir, name+Ext, content)
	}
	store := NewStore(dir, logger.Nop())
	return NewLoader(store, reg, logger.Nop())
}

func TestLoader_LoadOne(t *testing.T) {
	reg := newFakeRegistry("users")
	loader := newTestLoader(t, reg, map[string]string{
		"users": `[{"name":"Ann"},{"name":"Bo"}]`,
	})

	if err := loader.LoadOne(context.Background(), "users"); err != nil {
		t.Fatalf("LoadOne() failed: %v", err)
	}

	records := reg.recordsFor("users")
	if len(records) != 2 {
		t.Fatalf("created %d records, want 2", len(records))
	}
	if records[0]["name"] != "Ann" {
		t.Errorf("records[0] = %v", records[0])
	}
}

func TestLoader_LoadOne_ModelNotRegistered(t *testing.T) {
	reg := newFakeRegistry() // nothing registered
	loader := newTestLoader(t, reg, map[string]string{
		"users": `[{"name":"Ann"}]`,
	})

	err := loader.LoadOne(context.Background(), "users")
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeModelNotFound {
		t.Errorf("error = %v, want MODEL_NOT_FOUND", err)
	}
}

func TestLoader_LoadOne_ExactCaseRequired(t *testing.T) {
	reg := newFakeRegistry("Users")
	loader := newTestLoader(t, reg, map[string]string{
		"users": `[{"name":"Ann"}]`,
	})

	if err := loader.LoadOne(context.Background(), "users"); err == nil {
		t.Error("lookup should be exact-case: 'users' must not resolve 'Users'")
	}
}

func TestLoader_Load_AllDiscoveredFixtures(t *testing.T) {
	reg := newFakeRegistry("users", "pets")
	loader := newTestLoader(t, reg, map[string]string{
		"users": `[{"name":"Ann"}]`,
		"pets":  `[{"name":"Rex"},{"name":"Milo"}]`,
	})

	if err := loader.Load(context.Background(), All()); err != nil {
		t.Fatalf("Load(all) failed: %v", err)
	}
	if len(reg.recordsFor("users")) != 1 {
		t.Errorf("users records = %d, want 1", len(reg.recordsFor("users")))
	}
	if len(reg.recordsFor("pets")) != 2 {
		t.Errorf("pets records = %d, want 2", len(reg.recordsFor("pets")))
	}
}

func TestLoader_Load_SelectionOnly(t *testing.T) {
	reg := newFakeRegistry("users", "pets")
	loader := newTestLoader(t, reg, map[string]string{
		"users": `[{"name":"Ann"}]`,
		"pets":  `[{"name":"Rex"}]`,
	})

	if err := loader.Load(context.Background(), Named("users")); err != nil {
		t.Fatalf("Load(users) failed: %v", err)
	}
	if len(reg.recordsFor("users")) != 1 {
		t.Error("users should have been loaded")
	}
	if len(reg.recordsFor("pets")) != 0 {
		t.Error("pets should have been left untouched")
	}
}

func TestLoader_Load_CollectsAllFailures(t *testing.T) {
	reg := newFakeRegistry("a", "b", "c")
	reg.failing["a"] = fmt.Errorf("a rejected")
	reg.failing["c"] = fmt.Errorf("c rejected")
	loader := newTestLoader(t, reg, map[string]string{
		"a": `[{"v":1}]`,
		"b": `[{"v":2}]`,
		"c": `[{"v":3}]`,
	})

	err := loader.Load(context.Background(), All())
	if err == nil {
		t.Fatal("Load() should report the failures")
	}
	if !strings.Contains(err.Error(), "a rejected") || !strings.Contains(err.Error(), "c rejected") {
		t.Errorf("aggregate error missing individual failures: %v", err)
	}
	// b must still have been loaded despite a and c failing
	if len(reg.recordsFor("b")) != 1 {
		t.Error("failures should not stop the other fixtures")
	}
}

func TestLoader_Load_UnreadableDirectory(t *testing.T) {
	reg := newFakeRegistry()
	store := NewStore("/nonexistent/fixtures", logger.Nop())
	loader := NewLoader(store, reg, logger.Nop())

	err := loader.Load(context.Background(), All())
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeFilesystem {
		t.Errorf("error = %v, want FILESYSTEM_ERROR", err)
	}
}
