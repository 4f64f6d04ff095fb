package settings

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// JSONStore keeps the settings as a single JSON object on disk.
// Keys address top-level members; struct values become nested objects.
type JSONStore struct {
	mu   sync.RWMutex
	path string
	data []byte
}

// OpenJSON opens the JSON store at path. A missing file yields an empty
// store; the file is created on the first write.
func OpenJSON(path string) (*JSONStore, error) {
	data, err := readFileIfExists(path)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		data = []byte("{}")
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("settings file %s: invalid JSON", path)
	}
	return &JSONStore{path: path, data: data}, nil
}

// Path implements Reloader.
func (s *JSONStore) Path() string {
	return s.path
}

// Value implements Store.
func (s *JSONStore) Value(key string) (any, bool) {
	if key == "" {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	r := gjson.GetBytes(s.data, escapePath(key))
	if !r.Exists() {
		return nil, false
	}
	return r.Value(), true
}

// SetValue implements Store.
func (s *JSONStore) SetValue(key string, value any) error {
	if key == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := sjson.SetBytes(s.data, escapePath(key), value)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return err
	}
	s.data = data
	return nil
}

// All implements Store.
func (s *JSONStore) All() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any)
	gjson.ParseBytes(s.data).ForEach(func(k, v gjson.Result) bool {
		out[k.String()] = v.Value()
		return true
	})
	return out
}

// Reload implements Reloader.
func (s *JSONStore) Reload() (bool, error) {
	data, err := readFileIfExists(s.path)
	if err != nil {
		return false, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		data = []byte("{}")
	}
	if !gjson.ValidBytes(data) {
		return false, fmt.Errorf("settings file %s: invalid JSON", s.path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if bytes.Equal(data, s.data) {
		return false, nil
	}
	s.data = data
	return true, nil
}

// escapePath turns a flat key into a gjson/sjson path that matches it
// literally.
func escapePath(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', '!', '=', '<', '>', '%', ':':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
