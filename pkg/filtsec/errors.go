package filtsec

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedByteOrder = errors.New("big-endian FILT data")
	ErrInvalidSectionData   = errors.New("no FILT record at start of section")
	ErrCorruptHeader        = errors.New("corrupt FILT record header")
	ErrUnsupportedVersion   = errors.New("unsupported FILT header version")
	ErrInvalidRecordSize    = errors.New("FILT record size out of bounds")
	ErrUnsupportedValueType = errors.New("unsupported coefficient value type")
	ErrUnsupportedStructure = errors.New("unsupported filter structure")
	ErrMisalignedPayload    = errors.New("payload not a multiple of the value size")
	ErrMalformedPayload     = errors.New("payload length invalid for filter structure")
	ErrInvalidName          = errors.New("invalid filter name")
	ErrUnknownSchema        = errors.New("unknown header schema")
)

// RecordError locates a codec failure at one record: Index is the record's
// position within the section, Offset the byte offset it starts at. Err is
// one of the sentinel errors above, possibly wrapped with detail.
type RecordError struct {
	Index  int
	Offset int
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d at offset %d: %v", e.Index, e.Offset, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }
