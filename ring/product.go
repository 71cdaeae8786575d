package ring

// ProductFormPolynomial represents the polynomial t = f1*f2 + f3, where f1,
// f2 and f3 are sparse ternary polynomials. Multiplication by a
// dense polynomial g costs three sparse products:
// ((g*f1 mod q)*f2 + g*f3) mod q.
type ProductFormPolynomial struct {
	F1, F2, F3 *SparseTernaryPolynomial
}

// NewProductForm creates a product-form polynomial from its three sparse
// factors, which must share the same dimension.
func NewProductForm(f1, f2, f3 *SparseTernaryPolynomial) *ProductFormPolynomial {
	if f1.N() != f2.N() || f1.N() != f3.N() {
		panic("ring: dimension mismatch in NewProductForm")
	}
	return &ProductFormPolynomial{F1: f1, F2: f2, F3: f3}
}

// N returns the ring dimension.
func (p *ProductFormPolynomial) N() int {
	return p.F1.N()
}

// Poly returns the integer projection f1*f2 + f3, computed over Z.
func (p *ProductFormPolynomial) Poly() *Poly {
	pol := p.F1.MulMod(p.F2.Poly(), 0)
	pol.Add(p.F3.Poly())
	return pol
}

// MulMod computes the ring product of t with g, each coefficient reduced
// into [0, modulus). g is not mutated.
func (p *ProductFormPolynomial) MulMod(g *Poly, modulus int64) *Poly {
	c := p.F1.MulMod(g, modulus)
	c = p.F2.MulMod(c, modulus)
	c.Add(p.F3.MulMod(g, modulus))
	c.ModPositive(modulus)
	return c
}

// Clear zeroizes the three factors.
func (p *ProductFormPolynomial) Clear() {
	p.F1.Clear()
	p.F2.Clear()
	p.F3.Clear()
}
