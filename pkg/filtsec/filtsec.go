// Package filtsec implements the FILT coefficient-section format.
//
// Embedded signal-processing builds precompute their filter designs and store
// the resulting coefficients in a named object-file section, as a chain of
// little-endian FILT records. This package decodes that chain back into
// typed records and symmetrically encodes records into a conformant section.
// It never computes coefficients and never parses the surrounding object
// file; callers hand it the raw section bytes.
package filtsec

import (
	"fmt"
	"strings"
)

// FILT format constants must never change.
const (
	// Magic opens every record written by a little-endian producer.
	Magic = "FILT"

	// magicReversed is the tag as a big-endian producer lays it down.
	// Recognized only so it can be rejected, never decoded.
	magicReversed = "TLIF"

	// HeaderSize is the fixed record header size, identical in both schemas.
	HeaderSize = 128
)

// Schema selects one of the two 128-byte header layouts seen in the wild.
// The layouts are not self-distinguishing from the header bytes, so callers
// must state which one produced a section; nothing here guesses.
type Schema uint8

const (
	// SchemaA is the layout written by the embedded library itself:
	// magic, total_size u16, version u8 (must be 0), structure u8,
	// value_type u8, name [119]byte.
	SchemaA Schema = iota

	// SchemaB is the sibling-toolchain layout: magic, total_size u16,
	// structure u16, value_type u16, order u16 (informational),
	// name [116]byte.
	SchemaB
)

func (s Schema) String() string {
	switch s {
	case SchemaA:
		return "a"
	case SchemaB:
		return "b"
	default:
		return fmt.Sprintf("schema(%d)", uint8(s))
	}
}

// NameCapacity returns the byte capacity of the name field for this schema.
func (s Schema) NameCapacity() int {
	switch s {
	case SchemaA:
		return HeaderSize - 9
	case SchemaB:
		return HeaderSize - 12
	default:
		return 0
	}
}

func (s Schema) valid() bool {
	return s == SchemaA || s == SchemaB
}

// ParseSchema maps the config/CLI spelling of a schema to its tag.
func ParseSchema(s string) (Schema, error) {
	switch strings.ToLower(s) {
	case "a":
		return SchemaA, nil
	case "b":
		return SchemaB, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSchema, s)
	}
}

// Structure identifies how a record's payload is grouped.
type Structure uint8

const (
	// StructureSOS marks a cascade of second-order sections, five values
	// per stage in the order b0, b1, b2, a1, a2.
	StructureSOS Structure = 0

	// StructurePolynomial marks a direct-form rational transfer function,
	// the b vector followed by an equal-length a vector.
	StructurePolynomial Structure = 1
)

func (s Structure) String() string {
	switch s {
	case StructureSOS:
		return "sos"
	case StructurePolynomial:
		return "polynomial"
	default:
		return fmt.Sprintf("structure(%d)", uint8(s))
	}
}

func (s Structure) valid() bool {
	return s == StructureSOS || s == StructurePolynomial
}

// groupLen is the element count every payload of this structure must divide by.
func (s Structure) groupLen() int {
	if s == StructureSOS {
		return stageLen
	}
	return 2
}

// ValueType identifies the numeric width of every value in a record payload.
type ValueType uint8

const (
	Float32 ValueType = 0
	Float64 ValueType = 1

	// valueTypeLongDouble is written by producers built with 80-bit long
	// double coefficients. There is no portable decoding for it.
	valueTypeLongDouble ValueType = 2
)

// Size returns the encoded byte width of one value, or 0 for unknown types.
func (v ValueType) Size() int {
	switch v {
	case Float32:
		return 4
	case Float64:
		return 8
	default:
		return 0
	}
}

func (v ValueType) String() string {
	switch v {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case valueTypeLongDouble:
		return "long double"
	default:
		return fmt.Sprintf("value_type(%d)", uint8(v))
	}
}

func (v ValueType) valid() bool {
	return v == Float32 || v == Float64
}
