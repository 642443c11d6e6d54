package schema

import (
	"encoding/json"
	"fmt"
	"os"
)

// fileShape mirrors the schema file's JSON shape: an object with
// indexBound and variableIndices members. Unknown members are ignored by
// encoding/json's default decode behavior, satisfying that requirement
// without any extra bookkeeping.
type fileShape struct {
	IndexBound      map[string]int      `json:"indexBound"`
	VariableIndices map[string][]string `json:"variableIndices"`
}

// LoadFile reads and parses a schema file from path, returning a validated
// Schema. No third-party config/YAML library is used: the format is a
// bespoke JSON shape, and encoding/json is a direct, sufficient fit.
func LoadFile(path string) (*Schema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: reading %s: %w", path, err)
	}

	var shape fileShape
	if err := json.Unmarshal(raw, &shape); err != nil {
		return nil, fmt.Errorf("schema: parsing %s: %w", path, err)
	}

	return New(shape.IndexBound, shape.VariableIndices)
}
