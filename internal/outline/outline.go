// Package outline loads the nested family-outline document that the
// lineage builder expands. The document is YAML: a sequence of person
// entries, each with optional events and nested families.
package outline

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is a loaded family outline.
type Document struct {
	Entries []*Entry
}

// Entry describes one person in the outline. Page and LineageID are
// optional; spouses typically carry neither.
type Entry struct {
	Name      string        `yaml:"name"`
	Gender    string        `yaml:"gender"`
	Page      Scalar        `yaml:"page"`
	LineageID string        `yaml:"lineage_id"`
	Events    []Event       `yaml:"events"`
	Families  []FamilyEntry `yaml:"families"`
}

// FamilyEntry describes one family founded by the enclosing entry.
type FamilyEntry struct {
	Spouse   *Entry   `yaml:"spouse"`
	Children []*Entry `yaml:"children"`
}

// Scalar accepts any YAML scalar (string or number) as its literal text.
type Scalar string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
	*s = Scalar(node.Value)
	return nil
}

// Load decodes an outline document. An empty input yields an empty document.
func Load(r io.Reader) (*Document, error) {
	var entries []*Entry
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil {
		if errors.Is(err, io.EOF) {
			return &Document{}, nil
		}
		return nil, fmt.Errorf("decoding outline: %w", err)
	}
	return &Document{Entries: entries}, nil
}

// LoadFile opens and decodes an outline document from disk.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening outline: %w", err)
	}
	defer f.Close()
	return Load(f)
}
