package outline

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// EventKind is the closed set of life-event categories the outline format
// recognizes. Anything else decodes as KindUnknown and is skipped with a
// warning downstream.
type EventKind int

const (
	KindUnknown EventKind = iota
	KindBirth
	KindDeath
	KindResidence
	KindOccupation
	KindBurial
)

var kindNames = map[string]EventKind{
	"birth":      KindBirth,
	"death":      KindDeath,
	"residence":  KindResidence,
	"occupation": KindOccupation,
	"burial":     KindBurial,
}

// String returns the outline key for the kind.
func (k EventKind) String() string {
	for name, kind := range kindNames {
		if kind == k {
			return name
		}
	}
	return "unknown"
}

// Event is one tagged life event. Exactly one of Value and Place is set:
// scalar payloads (dates, free text) fill Value, mapping payloads fill
// Place. Key preserves the raw outline key for diagnostics.
type Event struct {
	Kind  EventKind
	Key   string
	Value string
	Place *Place
}

// Place is a structured place description.
type Place struct {
	Place       string       `yaml:"place"`
	County      string       `yaml:"county"`
	State       string       `yaml:"state"`
	Country     string       `yaml:"country"`
	Coordinates *Coordinates `yaml:"coordinates"`
}

// Coordinates holds a map position as literal text.
type Coordinates struct {
	Longitude Scalar `yaml:"longitude"`
	Latitude  Scalar `yaml:"latitude"`
}

// UnmarshalYAML implements yaml.Unmarshaler. Each event is a single-key
// mapping such as `birth: AFT 1773` or `residence: {place: ...}`.
func (e *Event) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return fmt.Errorf("line %d: event must be a single-key mapping", node.Line)
	}

	key, value := node.Content[0], node.Content[1]
	e.Key = key.Value
	e.Kind = kindNames[key.Value]

	switch value.Kind {
	case yaml.ScalarNode:
		e.Value = value.Value
	case yaml.MappingNode:
		e.Place = &Place{}
		if err := value.Decode(e.Place); err != nil {
			return fmt.Errorf("event %q: %w", e.Key, err)
		}
	default:
		return fmt.Errorf("line %d: event %q must carry a scalar or a place mapping", node.Line, e.Key)
	}
	return nil
}
