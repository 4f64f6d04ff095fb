package settings

import (
	"bytes"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// YAMLStore keeps the settings as a YAML mapping on disk.
type YAMLStore struct {
	mu     sync.RWMutex
	path   string
	raw    []byte
	values map[string]any
}

// OpenYAML opens the YAML store at path. A missing file yields an empty
// store.
func OpenYAML(path string) (*YAMLStore, error) {
	raw, err := readFileIfExists(path)
	if err != nil {
		return nil, err
	}
	values, err := parseYAML(path, raw)
	if err != nil {
		return nil, err
	}
	return &YAMLStore{path: path, raw: raw, values: values}, nil
}

// Path implements Reloader.
func (s *YAMLStore) Path() string {
	return s.path
}

// Value implements Store.
func (s *YAMLStore) Value(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// SetValue implements Store.
func (s *YAMLStore) SetValue(key string, value any) error {
	if key == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]any, len(s.values)+1)
	for k, v := range s.values {
		next[k] = v
	}
	next[key] = value

	raw, err := yaml.Marshal(next)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := writeFileAtomic(s.path, raw); err != nil {
		return err
	}
	s.values = next
	s.raw = raw
	return nil
}

// All implements Store.
func (s *YAMLStore) All() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Reload implements Reloader.
func (s *YAMLStore) Reload() (bool, error) {
	raw, err := readFileIfExists(s.path)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if bytes.Equal(raw, s.raw) {
		return false, nil
	}
	values, err := parseYAML(s.path, raw)
	if err != nil {
		return false, err
	}
	s.raw = raw
	s.values = values
	return true, nil
}

func parseYAML(path string, raw []byte) (map[string]any, error) {
	values := make(map[string]any)
	if len(bytes.TrimSpace(raw)) == 0 {
		return values, nil
	}
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("parse settings file %s: %w", path, err)
	}
	if values == nil {
		values = make(map[string]any)
	}
	return values, nil
}
