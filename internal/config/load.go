package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
)

// envMapping maps environment variables to dotted config keys.
var envMapping = map[string]string{
	"THUNDERPAD_APP_NAME":        "app_name",
	"THUNDERPAD_SETTINGS_FORMAT": "settings.format",
	"THUNDERPAD_SETTINGS_PATH":   "settings.path",
	"THUNDERPAD_SETTINGS_WATCH":  "settings.watch",
	"THUNDERPAD_LOG_LEVEL":       "log.level",
	"THUNDERPAD_LOG_FORMAT":      "log.format",
	"THUNDERPAD_LOG_FILE":        "log.file",
}

// Load reads the configuration at path on top of the defaults, applies
// environment overrides and validates the result. A missing file is not an
// error. An empty path uses DefaultPath.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("locating config: %w", err)
		}
		path = p
	}

	raw, err := readTOML(path)
	if err != nil {
		return nil, err
	}
	raw = DeepMerge(raw, envOverrides())

	cfg := Default()
	if err := decode(raw, cfg); err != nil {
		return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML data on top of the defaults without consulting the
// environment.
func Parse(data []byte) (*Config, error) {
	raw, err := parseTOML("<data>", data)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := decode(raw, cfg); err != nil {
		return nil, &ParseError{Path: "<data>", Message: err.Error(), Err: err}
	}
	return cfg, nil
}

func readTOML(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return parseTOML(path, data)
}

func parseTOML(source string, data []byte) (map[string]any, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		return nil, pe
	}
	return raw, nil
}

// decode writes raw over cfg. Keys absent from raw keep their current value;
// unknown keys are rejected.
func decode(raw map[string]any, cfg *Config) error {
	if len(raw) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "toml",
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// envOverrides collects the mapped THUNDERPAD_ variables that are set.
func envOverrides() map[string]any {
	out := make(map[string]any)
	for env, path := range envMapping {
		if val, ok := os.LookupEnv(env); ok {
			setByPath(out, path, parseEnvValue(val))
		}
	}
	return out
}

func parseEnvValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

// DeepMerge recursively merges src into dst.
// Values in src override values in dst.
// Maps are merged recursively; other types are replaced.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	for key, srcVal := range src {
		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = DeepMerge(dstMap, srcMap)
			continue
		}
		dst[key] = srcVal
	}
	return dst
}
