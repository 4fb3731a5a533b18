package database

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/skillsenselab/fixturekit/logger"
)

func newNamedSource(t *testing.T, name string) *Source {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	s := NewSource(name, db, logger.Nop())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	a := newNamedSource(t, "a")
	b := newNamedSource(t, "b")

	if err := reg.Register(a); err != nil {
		t.Fatalf("Register(a) failed: %v", err)
	}
	if err := reg.Register(b); err != nil {
		t.Fatalf("Register(b) failed: %v", err)
	}

	if reg.Get("a") != a {
		t.Error("Get(a) returned the wrong source")
	}
	if reg.Get("missing") != nil {
		t.Error("Get(missing) should return nil")
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	reg := NewRegistry()
	_ = reg.Register(newNamedSource(t, "a"))

	if err := reg.Register(newNamedSource(t, "a")); err == nil {
		t.Error("duplicate source name should fail")
	}
}

func TestRegistry_Sources_PreservesOrder(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"c", "a", "b"} {
		_ = reg.Register(newNamedSource(t, name))
	}

	sources := reg.Sources()
	if len(sources) != 3 {
		t.Fatalf("len = %d, want 3", len(sources))
	}
	want := []string{"c", "a", "b"}
	for i, s := range sources {
		if s.Name() != want[i] {
			t.Errorf("sources[%d] = %s, want %s", i, s.Name(), want[i])
		}
	}
}
