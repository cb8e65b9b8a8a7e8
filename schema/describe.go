package schema

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/arloliu/cfgpack/errs"
	"github.com/arloliu/cfgpack/format"
)

// encMode uses Core Deterministic Encoding (RFC 8949 §4.2), so the same schema always
// produces identical description bytes and therefore the same fingerprint.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("schema: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("schema: CBOR decoder initialization failed: " + err.Error())
	}
}

type description struct {
	Name    string     `cbor:"1,keyasint,omitempty"`
	Version uint32     `cbor:"2,keyasint,omitempty"`
	Slots   []slotDesc `cbor:"3,keyasint"`
}

type slotDesc struct {
	Kind uint8  `cbor:"1,keyasint"`
	Name string `cbor:"2,keyasint,omitempty"`
}

func (s *Schema) description() description {
	d := description{
		Name:    s.name,
		Version: s.version,
		Slots:   make([]slotDesc, len(s.slots)),
	}
	for i, slot := range s.slots {
		d.Slots[i] = slotDesc{Kind: uint8(slot.Kind), Name: slot.Name}
	}

	return d
}

// MarshalBinary returns the canonical CBOR description of the schema, the same bytes
// Fingerprint is computed from.
func (s *Schema) MarshalBinary() ([]byte, error) {
	out := make([]byte, len(s.desc))
	copy(out, s.desc)

	return out, nil
}

// Unmarshal decodes a schema from its CBOR description.
func Unmarshal(data []byte) (*Schema, error) {
	var d description
	if err := decMode.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidSchema, err)
	}

	slots := make([]Slot, len(d.Slots))
	for i, sd := range d.Slots {
		slots[i] = Slot{Name: sd.Name, Kind: format.Kind(sd.Kind)}
	}

	return New(d.Name, d.Version, slots...)
}
