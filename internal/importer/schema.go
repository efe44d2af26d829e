package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// OverrideFile is the on-disk form of a batch of preshipment overrides.
type OverrideFile struct {
	Date      string          `json:"date,omitempty" yaml:"date,omitempty"`
	Overrides []OverrideEntry `json:"overrides" yaml:"overrides"`
}

// OverrideEntry is one worker's preshipment figures. EWH defaults to zero.
type OverrideEntry struct {
	Worker   string   `json:"worker" yaml:"worker"`
	Quantity *int     `json:"quantity" yaml:"quantity"`
	EWH      *float64 `json:"ewh,omitempty" yaml:"ewh,omitempty"`
}

// LoadOverrideFile reads a YAML (.yaml, .yml) or JSON (.json) override file.
func LoadOverrideFile(path string) (*OverrideFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file OverrideFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	case ".json":
		err = json.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
	if err != nil {
		return nil, fmt.Errorf("parsing override file: %w", err)
	}
	return &file, nil
}
