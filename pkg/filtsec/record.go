package filtsec

// stageLen is the coefficient count of one second-order section.
const stageLen = 5

// Record is one named coefficient table recovered from, or destined for, a
// FILT section.
//
// Values holds the payload in storage order regardless of ValueType: SOS
// stages back to back, or the b vector followed by the a vector. Float32
// payloads widen losslessly on decode; a Record meant for a Float32 encode
// must hold values exactly representable in float32 if decoding the encoded
// bytes is to reproduce it bit for bit.
type Record struct {
	Name      string
	Structure Structure
	ValueType ValueType
	Values    []float64
}

// Stage holds the coefficients of one second-order section. The denominator
// is normalized so a0 = 1 and not stored.
type Stage struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// NumStages returns the stage count of an SOS record, 0 otherwise.
func (r *Record) NumStages() int {
	if r.Structure != StructureSOS {
		return 0
	}
	return len(r.Values) / stageLen
}

// Stages groups an SOS payload into its cascade stages, in application
// order. Returns nil for non-SOS records.
func (r *Record) Stages() []Stage {
	n := r.NumStages()
	if n == 0 {
		return nil
	}
	out := make([]Stage, n)
	for i := range out {
		v := r.Values[i*stageLen:]
		out[i] = Stage{B0: v[0], B1: v[1], B2: v[2], A1: v[3], A2: v[4]}
	}
	return out
}

// Polynomial splits a Polynomial payload into its numerator b and
// denominator a vectors. The returned slices alias Values. Both are nil for
// non-Polynomial records.
func (r *Record) Polynomial() (b, a []float64) {
	if r.Structure != StructurePolynomial {
		return nil, nil
	}
	half := len(r.Values) / 2
	return r.Values[:half], r.Values[half : 2*half]
}

// Order reports the filter order implied by the payload shape: twice the
// stage count for SOS, vector length minus one for Polynomial. Schema B
// stores this in its header for information only.
func (r *Record) Order() int {
	switch r.Structure {
	case StructureSOS:
		return 2 * r.NumStages()
	case StructurePolynomial:
		if n := len(r.Values) / 2; n > 0 {
			return n - 1
		}
	}
	return 0
}

// Section is the ordered chain of records stored in one object-file section.
type Section []Record

// Find returns the index of the first record with the given name.
func (s Section) Find(name string) (int, bool) {
	for i := range s {
		if s[i].Name == name {
			return i, true
		}
	}
	return -1, false
}
