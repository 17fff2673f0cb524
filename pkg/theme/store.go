package theme

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// Store loads named themes from a directory of JSON files.
// A missing or malformed theme never fails a render: Load degrades to
// the built-in default and logs a warning.
type Store struct {
	dir    string
	logger *log.Logger
}

// NewStore creates a theme store over dir. A nil logger discards
// diagnostics.
func NewStore(dir string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Store{dir: dir, logger: logger}
}

// Dir returns the theme directory path.
func (s *Store) Dir() string { return s.dir }

// Load reads the theme named name (without the .json extension).
// On a missing file or parse error it returns the built-in default and
// reports a warning; it never returns an error for a bad theme.
func (s *Store) Load(name string) Theme {
	path := filepath.Join(s.dir, name+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.Warnf("Theme %q not found, using default", name)
		return Default()
	}

	var t Theme
	if err := json.Unmarshal(data, &t); err != nil {
		s.logger.Warnf("Theme %q is malformed (%v), using default", name, err)
		return Default()
	}
	if t.Name == "" {
		t.Name = name
	}

	s.logger.Debugf("Loaded theme: %s", t.Name)
	return t
}

// List enumerates the installable theme names, sorted
// lexicographically. A missing directory yields an empty list.
func (s *Store) List() []string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}

// Merge overlays caller-supplied color overrides onto base, producing
// a synthetic theme used as-is for the render. An empty override map
// returns base unchanged. The base theme is never mutated.
func Merge(base Theme, overrides map[string]any) Theme {
	if len(overrides) == 0 {
		return base
	}
	merged := base.Clone()
	for k, v := range overrides {
		merged.Values[k] = v
	}
	merged.Name = merged.Name + " (custom)"
	return merged
}
