// Package iir realizes the filters described by decoded coefficient records
// so tooling can show what was compiled into a binary: impulse responses,
// frequency responses, pole locations. It only evaluates already-computed
// coefficients; it never designs filters.
package iir

import (
	"errors"
	"fmt"

	"github.com/mhx/filtcoef/pkg/filtsec"
)

// Filter is a realized digital filter with internal delay state.
type Filter interface {
	// ProcessSample filters one input sample and returns the output.
	ProcessSample(x float64) float64
	// Reset clears the delay state.
	Reset()
	// Response evaluates H(e^jw) at w radians per sample.
	Response(w float64) complex128
}

var (
	errEmptyDenominator = errors.New("iir: empty denominator")
	errZeroLeadingCoeff = errors.New("iir: leading denominator coefficient is zero")
)

// FromRecord realizes the filter a record describes, dispatching on its
// structure.
func FromRecord(r *filtsec.Record) (Filter, error) {
	switch r.Structure {
	case filtsec.StructureSOS:
		return NewCascade(r.Stages()), nil
	case filtsec.StructurePolynomial:
		b, a := r.Polynomial()
		return NewDirectForm(b, a)
	default:
		return nil, fmt.Errorf("iir: no realization for %s records", r.Structure)
	}
}

// Cascade runs second-order sections in series, each in Direct Form II
// Transposed. A cascade of zero stages passes samples through unchanged.
type Cascade struct {
	stages []filtsec.Stage
	d0, d1 []float64
}

func NewCascade(stages []filtsec.Stage) *Cascade {
	return &Cascade{
		stages: stages,
		d0:     make([]float64, len(stages)),
		d1:     make([]float64, len(stages)),
	}
}

func (c *Cascade) ProcessSample(x float64) float64 {
	for i := range c.stages {
		s := &c.stages[i]
		y := s.B0*x + c.d0[i]
		c.d0[i] = s.B1*x - s.A1*y + c.d1[i]
		c.d1[i] = s.B2*x - s.A2*y
		x = y
	}
	return x
}

func (c *Cascade) Reset() {
	for i := range c.d0 {
		c.d0[i] = 0
		c.d1[i] = 0
	}
}

// NumStages returns the number of sections in the cascade.
func (c *Cascade) NumStages() int {
	return len(c.stages)
}

// DirectForm runs a rational transfer function b/a of arbitrary order in
// Direct Form II Transposed. Coefficients are normalized by a[0] on
// construction.
type DirectForm struct {
	b, a []float64 // equal length, a[0] == 1
	z    []float64
}

func NewDirectForm(b, a []float64) (*DirectForm, error) {
	if len(a) == 0 {
		return nil, errEmptyDenominator
	}
	if a[0] == 0 {
		return nil, errZeroLeadingCoeff
	}

	n := max(len(b), len(a))
	nb := make([]float64, n)
	na := make([]float64, n)
	for i := range b {
		nb[i] = b[i] / a[0]
	}
	for i := range a {
		na[i] = a[i] / a[0]
	}
	return &DirectForm{b: nb, a: na, z: make([]float64, n-1)}, nil
}

func (f *DirectForm) ProcessSample(x float64) float64 {
	if len(f.z) == 0 {
		return f.b[0] * x
	}
	y := f.b[0]*x + f.z[0]
	last := len(f.z) - 1
	for i := 0; i < last; i++ {
		f.z[i] = f.b[i+1]*x + f.z[i+1] - f.a[i+1]*y
	}
	f.z[last] = f.b[last+1]*x - f.a[last+1]*y
	return y
}

func (f *DirectForm) Reset() {
	for i := range f.z {
		f.z[i] = 0
	}
}

// Order returns the transfer function order.
func (f *DirectForm) Order() int {
	return len(f.z)
}
