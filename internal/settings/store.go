package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Errors returned by stores.
var (
	// ErrEmptyKey indicates a read or write with an empty key.
	ErrEmptyKey = errors.New("empty settings key")

	// ErrUnknownFormat indicates an unsupported store format.
	ErrUnknownFormat = errors.New("unknown settings format")
)

// Store is a flat, process-wide key-value store.
type Store interface {
	// Value returns the value stored under key.
	Value(key string) (any, bool)

	// SetValue stores value under key and persists it.
	SetValue(key string, value any) error

	// All returns a snapshot of every stored key.
	All() map[string]any
}

// Reloader is implemented by stores backed by a file that another process
// may rewrite.
type Reloader interface {
	// Reload re-reads the backing file and reports whether its content
	// differs from what the store last read or wrote.
	Reload() (bool, error)

	// Path returns the backing file path.
	Path() string
}

// Open returns a file store for format ("json" or "yaml") at path.
func Open(format, path string) (Store, error) {
	switch strings.ToLower(format) {
	case "json", "":
		return OpenJSON(path)
	case "yaml", "yml":
		return OpenYAML(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// DefaultPath returns the company/application scoped settings file path.
func DefaultPath(company, app, format string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	ext := ".json"
	if f := strings.ToLower(format); f == "yaml" || f == "yml" {
		ext = ".yaml"
	}
	return filepath.Join(dir, company, app+ext), nil
}

// MemoryStore is a Store that lives only as long as the process.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewMemoryStore creates an empty memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]any)}
}

// Value implements Store.
func (m *MemoryStore) Value(key string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// SetValue implements Store.
func (m *MemoryStore) SetValue(key string, value any) error {
	if key == "" {
		return ErrEmptyKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// All implements Store.
func (m *MemoryStore) All() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]any, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

// writeFileAtomic writes data next to path and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}

func readFileIfExists(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read settings file: %w", err)
	}
	return data, nil
}
