package database

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	apperrors "github.com/skillsenselab/fixturekit/errors"
	"github.com/skillsenselab/fixturekit/logger"
)

type pet struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:64"`
}

func (pet) TableName() string { return "pets" }

func openTestSource(t *testing.T) *Source {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	source := NewSource("default", db, logger.Nop())
	t.Cleanup(func() { _ = source.Close() })
	return source
}

func countRows(t *testing.T, s *Source, table string) int64 {
	t.Helper()
	var count int64
	if err := s.DB().Raw("SELECT COUNT(*) FROM " + table).Scan(&count).Error; err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return count
}

func TestSource_RegisterModel(t *testing.T) {
	s := openTestSource(t)

	if err := s.RegisterModel("pets", &pet{}); err != nil {
		t.Fatalf("RegisterModel() failed: %v", err)
	}
	if !s.HasModel("pets") {
		t.Error("HasModel(pets) = false after registration")
	}
	if s.HasModel("Pets") {
		t.Error("HasModel should be exact-case")
	}
	if err := s.RegisterModel("pets", &pet{}); err == nil {
		t.Error("duplicate registration should fail")
	}
	if err := s.RegisterModel("ghosts", nil); err == nil {
		t.Error("nil model should be rejected")
	}
}

func TestSource_ModelNames_Sorted(t *testing.T) {
	s := openTestSource(t)
	_ = s.RegisterModel("pets", &pet{})
	_ = s.RegisterModel("apples", &pet{})

	names := s.ModelNames()
	if len(names) != 2 || names[0] != "apples" || names[1] != "pets" {
		t.Errorf("ModelNames() = %v, want [apples pets]", names)
	}
}

func TestSource_CreateRecords(t *testing.T) {
	s := openTestSource(t)
	_ = s.RegisterModel("pets", &pet{})
	if err := s.DB().AutoMigrate(&pet{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	records := []map[string]any{{"name": "Rex"}, {"name": "Milo"}}
	if err := s.CreateRecords(context.Background(), "pets", records); err != nil {
		t.Fatalf("CreateRecords() failed: %v", err)
	}

	if n := countRows(t, s, "pets"); n != 2 {
		t.Errorf("pets rows = %d, want 2", n)
	}
}

func TestSource_CreateRecords_EmptyIsNoop(t *testing.T) {
	s := openTestSource(t)
	_ = s.RegisterModel("pets", &pet{})
	if err := s.CreateRecords(context.Background(), "pets", nil); err != nil {
		t.Errorf("CreateRecords(nil) failed: %v", err)
	}
}

func TestSource_CreateRecords_UnknownModel(t *testing.T) {
	s := openTestSource(t)

	err := s.CreateRecords(context.Background(), "ghosts", []map[string]any{{"a": 1}})
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeModelNotFound {
		t.Errorf("error = %v, want MODEL_NOT_FOUND", err)
	}
}

func TestSource_CreateRecords_InsertError(t *testing.T) {
	s := openTestSource(t)
	_ = s.RegisterModel("pets", &pet{})
	// table never migrated, so the insert must fail

	err := s.CreateRecords(context.Background(), "pets", []map[string]any{{"name": "Rex"}})
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeInsert {
		t.Errorf("error = %v, want INSERT_ERROR", err)
	}
}

func TestSource_Resync_TruncatesData(t *testing.T) {
	s := openTestSource(t)
	_ = s.RegisterModel("pets", &pet{})
	if err := s.DB().AutoMigrate(&pet{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	_ = s.CreateRecords(context.Background(), "pets", []map[string]any{{"name": "Rex"}})

	if err := s.Resync(context.Background(), []string{"pets"}); err != nil {
		t.Fatalf("Resync() failed: %v", err)
	}

	if n := countRows(t, s, "pets"); n != 0 {
		t.Errorf("pets rows = %d, want 0 after resync", n)
	}
}

func TestSource_Resync_CaseInsensitive(t *testing.T) {
	s := openTestSource(t)
	_ = s.RegisterModel("Pets", &pet{})
	if err := s.DB().AutoMigrate(&pet{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	_ = s.CreateRecords(context.Background(), "Pets", []map[string]any{{"name": "Rex"}})

	if err := s.Resync(context.Background(), []string{"pets"}); err != nil {
		t.Fatalf("Resync() failed: %v", err)
	}
	if n := countRows(t, s, "pets"); n != 0 {
		t.Errorf("pets rows = %d, want 0 after case-folded resync", n)
	}
}

func TestSource_Resync_AllModelsWhenUnselected(t *testing.T) {
	s := openTestSource(t)
	_ = s.RegisterModel("pets", &pet{})
	if err := s.DB().AutoMigrate(&pet{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	_ = s.CreateRecords(context.Background(), "pets", []map[string]any{{"name": "Rex"}})

	if err := s.Resync(context.Background(), nil); err != nil {
		t.Fatalf("Resync(nil) failed: %v", err)
	}
	if n := countRows(t, s, "pets"); n != 0 {
		t.Errorf("pets rows = %d, want 0", n)
	}
}

func TestSource_Resync_SkipsUnknownNames(t *testing.T) {
	s := openTestSource(t)
	_ = s.RegisterModel("pets", &pet{})
	if err := s.DB().AutoMigrate(&pet{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := s.Resync(context.Background(), []string{"ghosts"}); err != nil {
		t.Errorf("Resync() with unknown name should be a no-op, got %v", err)
	}
}

func TestSource_Ping(t *testing.T) {
	s := openTestSource(t)
	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("Ping() failed: %v", err)
	}
}

func TestSource_Close_Idempotent(t *testing.T) {
	s := openTestSource(t)
	if err := s.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() failed: %v", err)
	}
}

type tagged struct {
	BaseModel
	Label string `gorm:"size:64"`
}

func (tagged) TableName() string { return "tags" }

func TestBaseModel_GeneratesUUID(t *testing.T) {
	s := openTestSource(t)
	if err := s.DB().AutoMigrate(&tagged{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	row := tagged{Label: "seed"}
	if err := s.DB().Create(&row).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if row.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("BeforeCreate should assign a UUID")
	}
}
