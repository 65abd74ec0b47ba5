// Package config loads simulation parameters from disk. Two formats are
// supported: YAML (by .yaml/.yml extension) and flat key=value lines with
// '#' comments. An empty path yields the built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/matsim/internal/sim"
)

// Load reads MD parameters from path, applies them over the defaults,
// and validates the result.
func Load(path string) (sim.Params, error) {
	params := sim.Defaults()
	if path == "" {
		return params, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return params, fmt.Errorf("read config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &params); err != nil {
			return params, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := parseKeyValue(path, string(data), &params); err != nil {
			return params, err
		}
	}
	if err := params.Validate(); err != nil {
		return params, fmt.Errorf("%s: %w", path, err)
	}
	return params, nil
}

// Save writes params as YAML.
func Save(path string, params sim.Params) error {
	data, err := yaml.Marshal(params)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// parseKeyValue fills params from "key = value" lines. Blank lines and
// '#' comments (full-line or trailing) are ignored; unknown keys and
// malformed values are errors carrying the line number.
func parseKeyValue(path, text string, params *sim.Params) error {
	for ln, line := range strings.Split(text, "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			return fmt.Errorf("%s:%d: expected key=value, got %q", path, ln+1, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if err := applyKey(params, key, value); err != nil {
			return fmt.Errorf("%s:%d: %w", path, ln+1, err)
		}
	}
	return nil
}

func applyKey(params *sim.Params, key, value string) error {
	setFloat := func(dst *float64) error {
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("key %q: invalid number %q", key, value)
		}
		*dst = v
		return nil
	}
	switch key {
	case "dt":
		return setFloat(&params.Dt)
	case "dx":
		return setFloat(&params.Dx)
	case "end_time":
		return setFloat(&params.EndTime)
	case "temperature":
		return setFloat(&params.Temperature)
	case "cutoff":
		return setFloat(&params.Cutoff)
	case "neighbor_skin":
		return setFloat(&params.NeighborSkin)
	case "max_steps":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("key %q: invalid integer %q", key, value)
		}
		params.MaxSteps = v
		return nil
	case "max_bytes":
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("key %q: invalid integer %q", key, value)
		}
		params.MaxBytes = v
		return nil
	case "use_neighbor_list":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("key %q: invalid boolean %q", key, value)
		}
		params.UseNeighborList = v
		return nil
	}
	return fmt.Errorf("unknown key %q", key)
}
