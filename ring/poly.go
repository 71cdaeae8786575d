// Package ring implements polynomial arithmetic in the truncated ring
// Z[X]/(X^N - 1) for a large power-of-two modulus q and the small modulus 3,
// together with the ternary polynomial representations and the compact binary
// encodings used by NTRUEncrypt.
package ring

import (
	"github.com/tuneinsight/ntrugo/utils"
)

// Poly is the structure that contains the coefficients of a polynomial of
// degree at most N-1 over Z, stored as a flat signed slice.
type Poly struct {
	Coeffs []int64
}

// NewPoly creates a new polynomial with N coefficients set to zero.
func NewPoly(N int) *Poly {
	return &Poly{Coeffs: make([]int64, N)}
}

// NewPolyFromCoeffs creates a new polynomial wrapping the provided
// coefficients without copying them.
func NewPolyFromCoeffs(coeffs []int64) *Poly {
	return &Poly{Coeffs: coeffs}
}

// N returns the number of coefficients of the polynomial.
func (pol *Poly) N() int {
	return len(pol.Coeffs)
}

// CopyNew creates an exact copy of the target polynomial.
func (pol *Poly) CopyNew() *Poly {
	p1 := NewPoly(pol.N())
	copy(p1.Coeffs, pol.Coeffs)
	return p1
}

// Copy copies the coefficients of p1 on the target polynomial.
// Expects the degree of both polynomials to be identical.
func (pol *Poly) Copy(p1 *Poly) {
	if pol != p1 {
		copy(pol.Coeffs, p1.Coeffs)
	}
}

// Equal returns true if the receiver Poly is equal to the provided other Poly.
func (pol *Poly) Equal(other *Poly) bool {
	if pol == other {
		return true
	}
	return pol != nil && other != nil && utils.EqualSliceInt64(pol.Coeffs, other.Coeffs)
}

// Zero sets all coefficients of the target polynomial to 0. It is also the
// zeroization hook for secret polynomials.
func (pol *Poly) Zero() {
	for i := range pol.Coeffs {
		pol.Coeffs[i] = 0
	}
}

// Add adds b to the target polynomial coefficient-wise.
// The degrees must be identical.
func (pol *Poly) Add(b *Poly) {
	if pol.N() != b.N() {
		panic("ring: dimension mismatch in Add")
	}
	for i := range pol.Coeffs {
		pol.Coeffs[i] += b.Coeffs[i]
	}
}

// AddMod adds b to the target polynomial coefficient-wise and reduces the
// result into [0, modulus).
func (pol *Poly) AddMod(b *Poly, modulus int64) {
	pol.Add(b)
	pol.ModPositive(modulus)
}

// Sub subtracts b from the target polynomial coefficient-wise.
// The degrees must be identical.
func (pol *Poly) Sub(b *Poly) {
	if pol.N() != b.N() {
		panic("ring: dimension mismatch in Sub")
	}
	for i := range pol.Coeffs {
		pol.Coeffs[i] -= b.Coeffs[i]
	}
}

// SubMod subtracts b from the target polynomial coefficient-wise and reduces
// the result into [0, modulus).
func (pol *Poly) SubMod(b *Poly, modulus int64) {
	pol.Sub(b)
	pol.ModPositive(modulus)
}

// Mult multiplies each coefficient by the scalar factor.
func (pol *Poly) Mult(factor int64) {
	for i := range pol.Coeffs {
		pol.Coeffs[i] *= factor
	}
}

// MultMod multiplies each coefficient by the scalar factor and reduces the
// result into [0, modulus).
func (pol *Poly) MultMod(factor, modulus int64) {
	for i := range pol.Coeffs {
		pol.Coeffs[i] = ((pol.Coeffs[i]*factor)%modulus + modulus) % modulus
	}
}

// Mult3 multiplies each coefficient by 3 and reduces the result into
// [0, modulus).
func (pol *Poly) Mult3(modulus int64) {
	pol.MultMod(3, modulus)
}

// MulMod computes the ring product of the target polynomial with b in
// Z[X]/(X^N - 1), reducing each coefficient into [0, modulus). It returns a
// new polynomial and mutates neither operand.
func (pol *Poly) MulMod(b *Poly, modulus int64) *Poly {
	if pol.N() != b.N() {
		panic("ring: dimension mismatch in MulMod")
	}

	N := pol.N()
	c := NewPoly(N)

	for i, ai := range pol.Coeffs {
		if ai == 0 {
			continue
		}
		ai %= modulus
		k := i
		for _, bj := range b.Coeffs {
			c.Coeffs[k] += ai * (bj % modulus)
			k++
			if k == N {
				k = 0
			}
		}
		// Intermediate reduction keeps the accumulators far from overflow.
		if i&15 == 15 {
			for k := range c.Coeffs {
				c.Coeffs[k] %= modulus
			}
		}
	}

	c.ModPositive(modulus)
	return c
}

// ModPositive reduces each coefficient into [0, modulus).
func (pol *Poly) ModPositive(modulus int64) {
	for i, c := range pol.Coeffs {
		c %= modulus
		if c < 0 {
			c += modulus
		}
		pol.Coeffs[i] = c
	}
}

// EnsurePositive is an alias of ModPositive.
func (pol *Poly) EnsurePositive(modulus int64) {
	pol.ModPositive(modulus)
}

// ModCenter reduces each coefficient into (-modulus/2, modulus/2].
func (pol *Poly) ModCenter(modulus int64) {
	pol.ModPositive(modulus)
	for i, c := range pol.Coeffs {
		if c > modulus/2 {
			pol.Coeffs[i] = c - modulus
		}
	}
}

// Center0 shifts each coefficient by multiples of modulus into
// (-modulus/2, modulus/2].
func (pol *Poly) Center0(modulus int64) {
	pol.ModCenter(modulus)
}

// Mod3 reduces each coefficient into {-1, 0, 1} such that the result is
// congruent to the input modulo 3.
func (pol *Poly) Mod3() {
	for i, c := range pol.Coeffs {
		c %= 3
		switch c {
		case 2:
			c = -1
		case -2:
			c = 1
		}
		pol.Coeffs[i] = c
	}
}

// Count returns the number of coefficients equal to value.
func (pol *Poly) Count(value int64) (count int) {
	for _, c := range pol.Coeffs {
		if c == value {
			count++
		}
	}
	return
}

// SumCoeffs returns the signed sum of all coefficients, which equals the
// evaluation of the polynomial at X=1.
func (pol *Poly) SumCoeffs() (sum int64) {
	for _, c := range pol.Coeffs {
		sum += c
	}
	return
}

// IsTernary returns true if all coefficients are in {-1, 0, 1}.
func (pol *Poly) IsTernary() bool {
	for _, c := range pol.Coeffs {
		if c < -1 || c > 1 {
			return false
		}
	}
	return true
}

// IsReduced returns true if all coefficients are in [0, modulus).
func (pol *Poly) IsReduced(modulus int64) bool {
	for _, c := range pol.Coeffs {
		if c < 0 || c >= modulus {
			return false
		}
	}
	return true
}
