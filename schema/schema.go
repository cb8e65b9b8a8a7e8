package schema

import (
	"fmt"
	"strings"

	"github.com/arloliu/cfgpack/errs"
	"github.com/arloliu/cfgpack/format"
	"github.com/arloliu/cfgpack/internal/collision"
	"github.com/arloliu/cfgpack/internal/hash"
)

const fingerprintLabel = "cfgpack.schema.v1"

// Slot is one position of a schema.
type Slot struct {
	Name string
	Kind format.Kind
}

// Schema is an immutable ordered list of slots.
type Schema struct {
	name        string
	version     uint32
	slots       []Slot
	kinds       []format.Kind
	names       *collision.Tracker
	desc        []byte
	fingerprint uint64
}

// New creates a schema from slots. Slot names are optional but must be unique when present.
func New(name string, version uint32, slots ...Slot) (*Schema, error) {
	s := &Schema{
		name:    name,
		version: version,
		slots:   make([]Slot, len(slots)),
		kinds:   make([]format.Kind, len(slots)),
		names:   collision.NewTracker(),
	}

	for i, slot := range slots {
		if !slot.Kind.Valid() {
			return nil, fmt.Errorf("%w: slot %d has kind %d", errs.ErrUnknownKind, i, slot.Kind)
		}
		if _, err := s.names.Track(slot.Name); err != nil {
			return nil, fmt.Errorf("%w: slot %d %q", err, i, slot.Name)
		}
		s.slots[i] = slot
		s.kinds[i] = slot.Kind
	}

	desc, err := encMode.Marshal(s.description())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidSchema, err)
	}
	s.desc = desc
	s.fingerprint = hash.Fingerprint(fingerprintLabel, desc)

	return s, nil
}

// MustNew is like New but panics on error. Intended for schemas declared as package variables.
func MustNew(name string, version uint32, slots ...Slot) *Schema {
	s, err := New(name, version, slots...)
	if err != nil {
		panic(err)
	}

	return s
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.name }

// Version returns the schema version number.
func (s *Schema) Version() uint32 { return s.version }

// Len returns the number of slots.
func (s *Schema) Len() int { return len(s.slots) }

// Slot returns the slot at position i.
func (s *Schema) Slot(i int) Slot { return s.slots[i] }

// Slots returns a copy of all slots.
func (s *Schema) Slots() []Slot {
	out := make([]Slot, len(s.slots))
	copy(out, s.slots)

	return out
}

// Kinds returns the slot kinds in order. The returned slice must not be modified.
func (s *Schema) Kinds() []format.Kind { return s.kinds }

// Index returns the position of the slot with the given name.
func (s *Schema) Index(name string) (int, bool) {
	return s.names.Lookup(name)
}

// Fingerprint returns the 64-bit identity of the schema.
func (s *Schema) Fingerprint() uint64 { return s.fingerprint }

// Equal reports whether two schemas describe the same layout, name and version.
func (s *Schema) Equal(other *Schema) bool {
	if s == nil || other == nil {
		return s == other
	}

	return string(s.desc) == string(other.desc)
}

func (s *Schema) String() string {
	var sb strings.Builder
	if s.name != "" {
		fmt.Fprintf(&sb, "%s@v%d", s.name, s.version)
	} else {
		fmt.Fprintf(&sb, "v%d", s.version)
	}
	sb.WriteByte('(')
	for i, slot := range s.slots {
		if i > 0 {
			sb.WriteString(", ")
		}
		if slot.Name != "" {
			sb.WriteString(slot.Name)
			sb.WriteByte(':')
		}
		sb.WriteString(slot.Kind.String())
	}
	sb.WriteByte(')')

	return sb.String()
}

// Builder assembles a schema slot by slot. The first error is reported by Build.
type Builder struct {
	name    string
	version uint32
	slots   []Slot
}

// NewBuilder starts a schema with the given name.
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// Version sets the schema version number.
func (b *Builder) Version(v uint32) *Builder {
	b.version = v
	return b
}

// Add appends a slot of any kind.
func (b *Builder) Add(name string, kind format.Kind) *Builder {
	b.slots = append(b.slots, Slot{Name: name, Kind: kind})
	return b
}

// Int appends an Integer slot.
func (b *Builder) Int(name string) *Builder { return b.Add(name, format.KindInteger) }

// Bool appends a Boolean slot.
func (b *Builder) Bool(name string) *Builder { return b.Add(name, format.KindBoolean) }

// String appends a String slot.
func (b *Builder) String(name string) *Builder { return b.Add(name, format.KindString) }

// Array appends an Array slot.
func (b *Builder) Array(name string) *Builder { return b.Add(name, format.KindArray) }

// Build validates the slots and returns the schema.
func (b *Builder) Build() (*Schema, error) {
	return New(b.name, b.version, b.slots...)
}
