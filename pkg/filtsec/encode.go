package filtsec

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Encode serializes the section as a chain of records in the given schema,
// concatenated with no padding. total_size is recomputed from each record's
// actual payload, so Decode(Encode(s), schema) reproduces s for any section
// that passes validation. An empty section encodes to an empty buffer.
//
// Records are validated against the same rules Decode enforces; the first
// invalid record aborts the call with a *RecordError at the offset the
// record would have started.
func Encode(sec Section, schema Schema) ([]byte, error) {
	if !schema.valid() {
		return nil, fmt.Errorf("%w (%d)", ErrUnknownSchema, schema)
	}

	total := 0
	for i := range sec {
		size, err := recordSize(&sec[i], schema)
		if err != nil {
			return nil, &RecordError{Index: i, Offset: total, Err: err}
		}
		total += size
	}
	if total == 0 {
		return nil, nil
	}

	out := make([]byte, total)
	off := 0
	for i := range sec {
		off += putRecord(out[off:], &sec[i], schema)
	}
	return out, nil
}

// recordSize validates one record and returns its encoded size.
func recordSize(r *Record, schema Schema) (int, error) {
	if !r.Structure.valid() {
		return 0, fmt.Errorf("%w (%d)", ErrUnsupportedStructure, r.Structure)
	}
	if !r.ValueType.valid() {
		return 0, fmt.Errorf("%w (%d)", ErrUnsupportedValueType, r.ValueType)
	}
	if len(r.Values)%r.Structure.groupLen() != 0 {
		return 0, fmt.Errorf("%w: %d values for %s", ErrMalformedPayload, len(r.Values), r.Structure)
	}
	if err := validateName(r.Name, schema.NameCapacity()); err != nil {
		return 0, err
	}

	total := HeaderSize + len(r.Values)*r.ValueType.Size()
	if total > math.MaxUint16 {
		return 0, fmt.Errorf("%w: %d bytes exceed the 16-bit size field", ErrInvalidRecordSize, total)
	}
	return total, nil
}

// putRecord writes one validated record at the front of out and returns its
// encoded size.
func putRecord(out []byte, r *Record, schema Schema) int {
	total := HeaderSize + len(r.Values)*r.ValueType.Size()

	copy(out[0:4], Magic)
	binary.LittleEndian.PutUint16(out[4:6], uint16(total))
	switch schema {
	case SchemaA:
		out[6] = 0 // header version
		out[7] = byte(r.Structure)
		out[8] = byte(r.ValueType)
		copy(out[9:HeaderSize], r.Name)
	case SchemaB:
		binary.LittleEndian.PutUint16(out[6:8], uint16(r.Structure))
		binary.LittleEndian.PutUint16(out[8:10], uint16(r.ValueType))
		binary.LittleEndian.PutUint16(out[10:12], uint16(r.Order()))
		copy(out[12:HeaderSize], r.Name)
	}

	off := HeaderSize
	switch r.ValueType {
	case Float32:
		for _, v := range r.Values {
			binary.LittleEndian.PutUint32(out[off:], math.Float32bits(float32(v)))
			off += 4
		}
	case Float64:
		for _, v := range r.Values {
			binary.LittleEndian.PutUint64(out[off:], math.Float64bits(v))
			off += 8
		}
	}
	return total
}

// validateName applies the decode-side name rules plus the schema's capacity
// limit: plain ASCII, no null bytes, at most capacity bytes.
func validateName(name string, capacity int) error {
	if len(name) > capacity {
		return fmt.Errorf("%w: %d bytes exceed the %d-byte field", ErrInvalidName, len(name), capacity)
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == 0 {
			return fmt.Errorf("%w: interior null byte", ErrInvalidName)
		}
		if c >= 0x80 {
			return fmt.Errorf("%w: non-ASCII byte 0x%02x", ErrInvalidName, c)
		}
	}
	return nil
}
