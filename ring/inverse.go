package ring

// InvertFq computes the inverse of the target polynomial in
// (Z/qZ)[X]/(X^N - 1), where q is a power of two. It first inverts modulo 2
// with the almost-inverse algorithm and then lifts the result to modulo q
// with Newton iterations b <- b*(2 - a*b), doubling the precision until it
// covers q. Returns nil if the polynomial is not invertible modulo 2.
func (pol *Poly) InvertFq(q int64) *Poly {

	N := pol.N()
	k := 0

	b := make([]int64, N+1)
	b[0] = 1
	c := make([]int64, N+1)

	f := make([]int64, N+1)
	for i, v := range pol.Coeffs {
		f[i] = v & 1
	}

	// g = X^N - 1 = X^N + 1 (mod 2)
	g := make([]int64, N+1)
	g[0] = 1
	g[N] = 1

	for {
		for f[0] == 0 {
			if isZero(f) {
				return nil
			}
			// f <- f/X, c <- c*X
			copy(f, f[1:])
			f[N] = 0
			copy(c[1:], c[:N])
			c[0] = 0
			k++
		}

		if degree(f) == 0 {
			break
		}

		if degree(f) < degree(g) {
			f, g = g, f
			b, c = c, b
		}

		addMod2(f, g)
		addMod2(b, c)
	}

	if b[N] != 0 {
		return nil
	}

	// Fq(X) = X^(N-k) * b(X)
	Fq := NewPoly(N)
	k %= N
	for i := N - 1; i >= 0; i-- {
		j := i - k
		if j < 0 {
			j += N
		}
		Fq.Coeffs[j] = b[i]
	}

	return pol.liftInverseMod2(Fq, q)
}

// liftInverseMod2 lifts Fq, an inverse of the target polynomial modulo 2, to
// an inverse modulo q by Newton iteration. Each step squares the modulus.
func (pol *Poly) liftInverseMod2(Fq *Poly, q int64) *Poly {

	for v := int64(2); v < q; {
		v *= v

		// Fq <- 2*Fq - a*Fq^2 (mod v)
		temp := Fq.CopyNew()
		temp.MultMod(2, v)

		temp2 := pol.MulMod(Fq, v)
		temp2 = temp2.MulMod(Fq, v)

		temp.SubMod(temp2, v)
		Fq = temp
	}

	Fq.ModPositive(q)
	return Fq
}

// InvertF3 computes the inverse of the target polynomial in
// (Z/3Z)[X]/(X^N - 1) with the almost-inverse algorithm, working on centered
// coefficients in {-1, 0, 1}. Returns nil if the polynomial is not
// invertible.
func (pol *Poly) InvertF3() *Poly {

	N := pol.N()
	k := 0

	b := make([]int64, N+1)
	b[0] = 1
	c := make([]int64, N+1)

	f := make([]int64, N+1)
	for i, v := range pol.Coeffs {
		f[i] = center3(v)
	}

	// g = X^N - 1
	g := make([]int64, N+1)
	g[0] = -1
	g[N] = 1

	for {
		for f[0] == 0 {
			if isZero(f) {
				return nil
			}
			copy(f, f[1:])
			f[N] = 0
			copy(c[1:], c[:N])
			c[0] = 0
			k++
		}

		if degree(f) == 0 {
			break
		}

		if degree(f) < degree(g) {
			f, g = g, f
			b, c = c, b
		}

		if f[0] == g[0] {
			subMod3(f, g)
			subMod3(b, c)
		} else {
			addMod3(f, g)
			addMod3(b, c)
		}
	}

	if b[N] != 0 {
		return nil
	}

	// Fp(X) = f[0] * X^(N-k) * b(X), f[0] being the unit the loop terminated
	// on.
	Fp := NewPoly(N)
	k %= N
	for i := N - 1; i >= 0; i-- {
		j := i - k
		if j < 0 {
			j += N
		}
		Fp.Coeffs[j] = center3(f[0] * b[i])
	}

	return Fp
}

func isZero(f []int64) bool {
	for _, v := range f {
		if v != 0 {
			return false
		}
	}
	return true
}

func degree(f []int64) int {
	for i := len(f) - 1; i > 0; i-- {
		if f[i] != 0 {
			return i
		}
	}
	return 0
}

func addMod2(f, g []int64) {
	for i := range f {
		f[i] = (f[i] + g[i]) & 1
	}
}

func addMod3(f, g []int64) {
	for i := range f {
		f[i] = center3(f[i] + g[i])
	}
}

func subMod3(f, g []int64) {
	for i := range f {
		f[i] = center3(f[i] - g[i])
	}
}

func center3(v int64) int64 {
	v %= 3
	switch v {
	case 2:
		v = -1
	case -2:
		v = 1
	}
	return v
}
