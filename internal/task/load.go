package task

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// tomlDocument is the on-disk shape of a TOML task file: a sequence of
// [[tasks]] tables.
type tomlDocument struct {
	Tasks []Task `toml:"tasks"`
}

// jsonDocument is the wrapped JSON shape, matching the HTTP request body.
type jsonDocument struct {
	Tasks List `json:"tasks"`
}

// LoadFile reads a task batch from a JSON or TOML file, picking the codec
// by extension. JSON files may contain either a bare array or a
// {"tasks": [...]} envelope.
func LoadFile(path string) ([]Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading task file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		var doc tomlDocument
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
		}
		return doc.Tasks, nil
	default:
		return parseJSON(data, filepath.Base(path))
	}
}

// parseJSON accepts both the bare-array and enveloped layouts.
func parseJSON(data []byte, name string) ([]Task, error) {
	trimmed := strings.TrimLeft(string(data), " \t\r\n")
	if strings.HasPrefix(trimmed, "{") {
		var doc jsonDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		return doc.Tasks, nil
	}

	var batch List
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return batch, nil
}
