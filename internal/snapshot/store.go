package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/appengine-ltd/vegan-simulator/internal/sim"
)

const (
	formatVersion = 1
	fileExt       = ".json"
)

var (
	ErrNotFound    = errors.New("snapshot not found")
	ErrInvalidName = errors.New("invalid snapshot name")
	ErrFormat      = errors.New("unsupported snapshot format")
)

type document struct {
	FormatVersion int                `json:"format_version"`
	Name          string             `json:"name"`
	SavedAt       time.Time          `json:"saved_at"`
	Year          int                `json:"year"`
	Speed         float64            `json:"speed"`
	History       []sim.HistoryEntry `json:"history"`
}

// Store keeps simulation snapshots as JSON files in one directory.
type Store struct {
	dir string
	now func() time.Time
}

func NewStore(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) Save(name string, state *sim.State) error {
	clean, err := cleanName(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	doc := document{
		FormatVersion: formatVersion,
		Name:          clean,
		SavedAt:       s.now().UTC(),
		Year:          state.Year,
		Speed:         state.Speed,
		History:       state.History.Entries(),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(clean), data, 0o600)
}

// Load restores the named snapshot into state. On failure state is left
// unchanged.
func (s *Store) Load(name string, state *sim.State) error {
	clean, err := cleanName(name)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(s.path(clean))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, clean)
		}
		return err
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("snapshot %s: %w", clean, err)
	}
	if doc.FormatVersion != formatVersion {
		return fmt.Errorf("%w: version %d", ErrFormat, doc.FormatVersion)
	}
	if err := state.Restore(doc.History); err != nil {
		return fmt.Errorf("snapshot %s: %w", clean, err)
	}
	if doc.Speed > 0 {
		state.SetSpeed(doc.Speed)
	}
	return nil
}

// List returns the saved snapshot names in alphabetical order.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), fileExt))
	}
	sort.Strings(out)
	return out, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+fileExt)
}

// cleanName keeps snapshot names to a single safe path element.
func cleanName(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", ErrInvalidName
	}
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			continue
		}
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return name, nil
}
