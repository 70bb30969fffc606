package filtsec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Decode parses the byte buffer of a coefficient section into its record
// chain. schema states which header layout produced the section; both
// records and the bytes between them are read strictly front to back, and
// the next record starts at the first FILT tag at or after the end of the
// previous one, so filler the linker introduced between merged inputs is
// skipped. Bytes after the last record that contain no further tag end the
// decode cleanly.
//
// Decoding has no partial-success mode: the first malformed record aborts
// the call, the returned Section is nil, and the error is a *RecordError
// locating the failure. A buffer led by the reversed tag TLIF came from a
// big-endian producer and is rejected as ErrUnsupportedByteOrder.
func Decode(data []byte, schema Schema) (Section, error) {
	if !schema.valid() {
		return nil, fmt.Errorf("%w (%d)", ErrUnknownSchema, schema)
	}
	if bytes.HasPrefix(data, []byte(magicReversed)) {
		return nil, &RecordError{Err: ErrUnsupportedByteOrder}
	}
	if !bytes.HasPrefix(data, []byte(Magic)) {
		return nil, &RecordError{Err: ErrInvalidSectionData}
	}

	var sec Section
	off := 0
	for {
		rec, size, err := decodeRecord(data[off:], schema)
		if err != nil {
			return nil, &RecordError{Index: len(sec), Offset: off, Err: err}
		}
		sec = append(sec, rec)

		next := bytes.Index(data[off+size:], []byte(Magic))
		if next < 0 {
			return sec, nil
		}
		off += size + next
	}
}

// decodeRecord parses one record from the front of b and returns it with
// its declared total size, so the caller can advance past it.
func decodeRecord(b []byte, schema Schema) (Record, int, error) {
	if len(b) < HeaderSize {
		return Record{}, 0, fmt.Errorf("%w: %d bytes remain, header needs %d", ErrCorruptHeader, len(b), HeaderSize)
	}
	if string(b[:4]) != Magic {
		return Record{}, 0, ErrCorruptHeader
	}

	totalSize := int(binary.LittleEndian.Uint16(b[4:6]))

	var (
		structure uint16
		valueType uint16
		nameRaw   []byte
	)
	switch schema {
	case SchemaA:
		if v := b[6]; v != 0 {
			return Record{}, 0, fmt.Errorf("%w: version %d", ErrUnsupportedVersion, v)
		}
		structure = uint16(b[7])
		valueType = uint16(b[8])
		nameRaw = b[9:HeaderSize]
	case SchemaB:
		structure = binary.LittleEndian.Uint16(b[6:8])
		valueType = binary.LittleEndian.Uint16(b[8:10])
		// b[10:12] holds the informational order field, ignored on decode.
		nameRaw = b[12:HeaderSize]
	}

	if totalSize < HeaderSize {
		return Record{}, 0, fmt.Errorf("%w: total size %d below header size", ErrInvalidRecordSize, totalSize)
	}
	if totalSize > len(b) {
		return Record{}, 0, fmt.Errorf("%w: total size %d exceeds %d remaining bytes", ErrInvalidRecordSize, totalSize, len(b))
	}

	vt := ValueType(valueType)
	if valueType > 0xff || !vt.valid() {
		return Record{}, 0, fmt.Errorf("%w (%d)", ErrUnsupportedValueType, valueType)
	}
	st := Structure(structure)
	if structure > 0xff || !st.valid() {
		return Record{}, 0, fmt.Errorf("%w (%d)", ErrUnsupportedStructure, structure)
	}

	payload := b[HeaderSize:totalSize]
	width := vt.Size()
	if len(payload)%width != 0 {
		return Record{}, 0, fmt.Errorf("%w: %d payload bytes, %d-byte values", ErrMisalignedPayload, len(payload), width)
	}
	count := len(payload) / width
	if count%st.groupLen() != 0 {
		return Record{}, 0, fmt.Errorf("%w: %d values for %s", ErrMalformedPayload, count, st)
	}

	name, err := decodeName(nameRaw)
	if err != nil {
		return Record{}, 0, err
	}

	var values []float64
	if count > 0 {
		values = make([]float64, count)
		switch vt {
		case Float32:
			for i := range values {
				values[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(payload[i*4:])))
			}
		case Float64:
			for i := range values {
				values[i] = math.Float64frombits(binary.LittleEndian.Uint64(payload[i*8:]))
			}
		}
	}

	rec := Record{
		Name:      name,
		Structure: st,
		ValueType: vt,
		Values:    values,
	}
	return rec, totalSize, nil
}

// decodeName trims the trailing null padding and validates that what is left
// is plain ASCII with no interior nulls.
func decodeName(raw []byte) (string, error) {
	trimmed := bytes.TrimRight(raw, "\x00")
	for _, c := range trimmed {
		if c == 0 {
			return "", fmt.Errorf("%w: interior null byte", ErrInvalidName)
		}
		if c >= 0x80 {
			return "", fmt.Errorf("%w: non-ASCII byte 0x%02x", ErrInvalidName, c)
		}
	}
	return string(trimmed), nil
}
