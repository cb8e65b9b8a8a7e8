package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/cfgpack/errs"
	"github.com/arloliu/cfgpack/format"
)

type yamlSchema struct {
	Name    string     `yaml:"name,omitempty"`
	Version uint32     `yaml:"version,omitempty"`
	Slots   []yamlSlot `yaml:"slots"`
}

type yamlSlot struct {
	Name string `yaml:"name,omitempty"`
	Kind string `yaml:"kind"`
}

// ParseYAML reads a schema from its YAML form.
func ParseYAML(data []byte) (*Schema, error) {
	var ys yamlSchema
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidSchema, err)
	}

	slots := make([]Slot, len(ys.Slots))
	for i, slot := range ys.Slots {
		kind, ok := format.ParseKind(slot.Kind)
		if !ok {
			return nil, fmt.Errorf("%w: slot %d has kind %q", errs.ErrUnknownKind, i, slot.Kind)
		}
		slots[i] = Slot{Name: slot.Name, Kind: kind}
	}

	return New(ys.Name, ys.Version, slots...)
}

// MarshalYAML implements yaml.Marshaler.
func (s *Schema) MarshalYAML() (any, error) {
	ys := yamlSchema{
		Name:    s.name,
		Version: s.version,
		Slots:   make([]yamlSlot, len(s.slots)),
	}
	for i, slot := range s.slots {
		ys.Slots[i] = yamlSlot{Name: slot.Name, Kind: kindName(slot.Kind)}
	}

	return ys, nil
}

func kindName(k format.Kind) string {
	switch k {
	case format.KindInteger:
		return "integer"
	case format.KindBoolean:
		return "boolean"
	case format.KindString:
		return "string"
	default:
		return "array"
	}
}
