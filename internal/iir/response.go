package iir

import (
	"math"
	"math/cmplx"

	"github.com/mhx/filtcoef/pkg/filtsec"
)

// Impulse returns the first n samples of the filter's impulse response,
// starting from cleared state. The filter is left in the state the run
// ends in.
func Impulse(f Filter, n int) []float64 {
	if n <= 0 {
		return nil
	}
	f.Reset()
	out := make([]float64, n)
	out[0] = f.ProcessSample(1)
	for i := 1; i < n; i++ {
		out[i] = f.ProcessSample(0)
	}
	return out
}

// MagnitudeDB returns 20*log10(|H(e^jw)|) at w radians per sample.
func MagnitudeDB(f Filter, w float64) float64 {
	return 20 * math.Log10(cmplx.Abs(f.Response(w)))
}

// Response evaluates the cascade as the product of its section responses.
func (c *Cascade) Response(w float64) complex128 {
	h := complex(1, 0)
	for i := range c.stages {
		h *= stageResponse(&c.stages[i], w)
	}
	return h
}

func stageResponse(s *filtsec.Stage, w float64) complex128 {
	z1 := cmplx.Exp(complex(0, -w))
	z2 := z1 * z1
	num := complex(s.B0, 0) + complex(s.B1, 0)*z1 + complex(s.B2, 0)*z2
	den := complex(1, 0) + complex(s.A1, 0)*z1 + complex(s.A2, 0)*z2
	return num / den
}

// Response evaluates the transfer function at w radians per sample.
func (f *DirectForm) Response(w float64) complex128 {
	var num, den complex128
	zk := complex(1, 0)
	z1 := cmplx.Exp(complex(0, -w))
	for i := range f.b {
		num += complex(f.b[i], 0) * zk
		den += complex(f.a[i], 0) * zk
		zk *= z1
	}
	return num / den
}

// StagePoles returns the z-plane poles of one section denominator
//
//	1 + A1*z^-1 + A2*z^-2 = 0
//
// For first-order sections the second pole is 0.
func StagePoles(s filtsec.Stage) [2]complex128 {
	return quadraticRoots(1, s.A1, s.A2)
}

// StageZeros returns the z-plane zeros of one section numerator.
func StageZeros(s filtsec.Stage) [2]complex128 {
	return quadraticRoots(s.B0, s.B1, s.B2)
}

// Stable reports whether every stage keeps its poles strictly inside the
// unit circle.
func Stable(stages []filtsec.Stage) bool {
	for _, s := range stages {
		for _, p := range StagePoles(s) {
			if cmplx.Abs(p) >= 1 {
				return false
			}
		}
	}
	return true
}

func quadraticRoots(a, b, c float64) [2]complex128 {
	if a == 0 {
		if b == 0 {
			return [2]complex128{}
		}
		return [2]complex128{complex(-c/b, 0), 0}
	}

	disc := cmplx.Sqrt(complex(b*b-4*a*c, 0))
	den := complex(2*a, 0)
	return [2]complex128{
		(-complex(b, 0) + disc) / den,
		(-complex(b, 0) - disc) / den,
	}
}
