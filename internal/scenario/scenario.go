// Package scenario reads calculation inputs from YAML, TOML or JSON files.
package scenario

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/Simplici0/cupcost/internal/pricing"
)

// Load reads the file at path, choosing the decoder from its extension.
// Entries without an id are given one.
func Load(path string) (pricing.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pricing.Input{}, fmt.Errorf("read scenario: %w", err)
	}

	in, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return pricing.Input{}, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	return in, nil
}

// Decode parses data in the format named by ext (".yaml", ".yml", ".toml" or ".json").
func Decode(data []byte, ext string) (pricing.Input, error) {
	var in pricing.Input

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&in); err != nil {
			return pricing.Input{}, err
		}
	case ".toml":
		md, err := toml.Decode(string(data), &in)
		if err != nil {
			return pricing.Input{}, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return pricing.Input{}, fmt.Errorf("unknown keys: %v", undecoded)
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&in); err != nil {
			return pricing.Input{}, err
		}
	default:
		return pricing.Input{}, fmt.Errorf("unsupported scenario format %q", ext)
	}

	AssignIDs(&in)
	return in, nil
}

// AssignIDs gives every expense and tax rate without an id a fresh one.
func AssignIDs(in *pricing.Input) {
	for i := range in.Expenses {
		if in.Expenses[i].ID == "" {
			in.Expenses[i].ID = uuid.NewString()
		}
	}
	for i := range in.GSTRates {
		if in.GSTRates[i].ID == "" {
			in.GSTRates[i].ID = uuid.NewString()
		}
	}
}
