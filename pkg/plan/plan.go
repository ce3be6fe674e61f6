// Package plan holds the planning configuration for a subdivision run:
// per-project constraints, road network tuning, and the stock layout
// variants the orchestrator compares.
package plan

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a constraint record from a YAML or JSON file, chosen by
// extension. Absent optional fields come back at their stated defaults.
func Load(path string) (*Constraints, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading constraints file: %w", err)
	}
	c, err := Parse(data, strings.EqualFold(filepath.Ext(path), ".json"))
	if err != nil {
		return nil, fmt.Errorf("parsing constraints file: %w", err)
	}
	return c, nil
}

// Parse decodes a constraint record from raw bytes.
func Parse(data []byte, asJSON bool) (*Constraints, error) {
	var c Constraints
	var err error
	if asJSON {
		err = json.Unmarshal(data, &c)
	} else {
		err = yaml.Unmarshal(data, &c)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Save writes a constraint record as indented JSON.
func Save(c Constraints, path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding constraints: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing constraints file: %w", err)
	}
	return nil
}
