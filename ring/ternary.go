package ring

import (
	"sort"
)

// TernaryPolynomial is the capability set shared by the representations of
// the private polynomial t: dense and sparse ternary polynomials, with
// coefficients in {-1, 0, 1}, and product-form polynomials f1*f2 + f3, whose
// integer projection is in general not ternary.
type TernaryPolynomial interface {
	// Poly returns the polynomial as a dense integer polynomial.
	Poly() *Poly
	// MulMod computes the ring product with g, each coefficient reduced
	// into [0, modulus). g is not mutated.
	MulMod(g *Poly, modulus int64) *Poly
	// N returns the ring dimension.
	N() int
	// Clear zeroizes the polynomial.
	Clear()
}

// DenseTernaryPolynomial is a ternary polynomial stored as a dense
// coefficient vector.
type DenseTernaryPolynomial struct {
	pol *Poly
}

// NewDenseTernary wraps pol, which must have coefficients in {-1, 0, 1}.
func NewDenseTernary(pol *Poly) *DenseTernaryPolynomial {
	if !pol.IsTernary() {
		panic("ring: NewDenseTernary input is not ternary")
	}
	return &DenseTernaryPolynomial{pol: pol}
}

// Poly returns the underlying dense polynomial.
func (p *DenseTernaryPolynomial) Poly() *Poly {
	return p.pol
}

// N returns the ring dimension.
func (p *DenseTernaryPolynomial) N() int {
	return p.pol.N()
}

// MulMod computes the ring product with g.
func (p *DenseTernaryPolynomial) MulMod(g *Poly, modulus int64) *Poly {
	return p.pol.MulMod(g, modulus)
}

// Clear zeroizes the polynomial.
func (p *DenseTernaryPolynomial) Clear() {
	p.pol.Zero()
}

// SparseTernaryPolynomial is a ternary polynomial stored as two sorted index
// lists, one for the +1 coefficients and one for the -1 coefficients. Its
// product with a dense polynomial costs O(N*(d1+d2)) additions and no
// integer multiplications.
type SparseTernaryPolynomial struct {
	n       int
	ones    []int
	negOnes []int
}

// NewSparseTernary creates a sparse ternary polynomial of dimension n from
// the two index lists, which are copied and sorted.
func NewSparseTernary(n int, ones, negOnes []int) *SparseTernaryPolynomial {
	p := &SparseTernaryPolynomial{
		n:       n,
		ones:    append([]int(nil), ones...),
		negOnes: append([]int(nil), negOnes...),
	}
	sort.Ints(p.ones)
	sort.Ints(p.negOnes)
	return p
}

// SparseFromPoly extracts the index lists of a dense ternary polynomial.
func SparseFromPoly(pol *Poly) *SparseTernaryPolynomial {
	p := &SparseTernaryPolynomial{n: pol.N()}
	for i, c := range pol.Coeffs {
		switch c {
		case 1:
			p.ones = append(p.ones, i)
		case -1:
			p.negOnes = append(p.negOnes, i)
		}
	}
	return p
}

// N returns the ring dimension.
func (p *SparseTernaryPolynomial) N() int {
	return p.n
}

// Ones returns the sorted indices of the +1 coefficients.
func (p *SparseTernaryPolynomial) Ones() []int {
	return p.ones
}

// NegOnes returns the sorted indices of the -1 coefficients.
func (p *SparseTernaryPolynomial) NegOnes() []int {
	return p.negOnes
}

// Poly returns the polynomial as a dense integer polynomial.
func (p *SparseTernaryPolynomial) Poly() *Poly {
	pol := NewPoly(p.n)
	for _, i := range p.ones {
		pol.Coeffs[i] = 1
	}
	for _, i := range p.negOnes {
		pol.Coeffs[i] = -1
	}
	return pol
}

// MulMod computes the ring product with g as a sum and difference of
// rotations of g, each coefficient reduced into [0, modulus).
func (p *SparseTernaryPolynomial) MulMod(g *Poly, modulus int64) *Poly {
	if p.n != g.N() {
		panic("ring: dimension mismatch in sparse MulMod")
	}

	c := NewPoly(p.n)

	for _, i := range p.ones {
		k := i
		for _, gj := range g.Coeffs {
			c.Coeffs[k] += gj
			k++
			if k == p.n {
				k = 0
			}
		}
	}

	for _, i := range p.negOnes {
		k := i
		for _, gj := range g.Coeffs {
			c.Coeffs[k] -= gj
			k++
			if k == p.n {
				k = 0
			}
		}
	}

	if modulus > 0 {
		c.ModPositive(modulus)
	}
	return c
}

// Clear zeroizes the polynomial.
func (p *SparseTernaryPolynomial) Clear() {
	for i := range p.ones {
		p.ones[i] = 0
	}
	for i := range p.negOnes {
		p.negOnes[i] = 0
	}
	p.ones = p.ones[:0]
	p.negOnes = p.negOnes[:0]
}
