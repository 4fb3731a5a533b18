package fixture

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	apperrors "github.com/skillsenselab/fixturekit/errors"
	"github.com/skillsenselab/fixturekit/logger"
)

// Ext is the recognized fixture file extension.
const Ext = ".json"

// Store discovers fixture files, parses them, and memoizes the results.
// A cache entry never expires during the process lifetime.
type Store struct {
	dir string
	log *logger.Logger

	mu    sync.RWMutex
	cache map[string][]map[string]any
}

// NewStore creates a store reading from the given fixtures directory.
func NewStore(dir string, log *logger.Logger) *Store {
	return &Store{
		dir:   dir,
		log:   log.WithComponent("fixture-store"),
		cache: make(map[string][]map[string]any),
	}
}

// Dir returns the fixtures directory.
func (s *Store) Dir() string { return s.dir }

// List returns the sorted names of every fixture file in the directory,
// extensions stripped.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, apperrors.Filesystem(s.dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), Ext))
	}
	sort.Strings(names)
	return names, nil
}

// Load returns the records of the named fixture, reading and parsing the
// file only on the first call.
func (s *Store) Load(name string) ([]map[string]any, error) {
	s.mu.RLock()
	records, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return records, nil
	}

	path := filepath.Join(s.dir, name+Ext)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NotFound("fixture", name)
		}
		return nil, apperrors.Filesystem(path, err)
	}

	records, err = parseRecords(data)
	if err != nil {
		return nil, apperrors.Parse(name, err)
	}

	s.mu.Lock()
	// another goroutine may have loaded it meanwhile; keep the first entry
	if cached, ok := s.cache[name]; ok {
		records = cached
	} else {
		s.cache[name] = records
	}
	s.mu.Unlock()

	s.log.Debug("Fixture loaded", map[string]interface{}{
		logger.FieldFixture: name,
		"records":           len(records),
	})
	return records, nil
}

// parseRecords accepts a single JSON record object or an array of record
// objects and normalizes to a slice.
func parseRecords(data []byte) ([]map[string]any, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty fixture file")
	}

	if trimmed[0] == '[' {
		var records []map[string]any
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, err
		}
		return records, nil
	}

	var record map[string]any
	if err := json.Unmarshal(trimmed, &record); err != nil {
		return nil, err
	}
	return []map[string]any{record}, nil
}
