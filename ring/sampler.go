package ring

import (
	"github.com/tuneinsight/ntrugo/utils/sampling"
)

// IndexSource is a deterministic stream of indices in [0, N) that never
// repeats an index. The SVES-3 index generation function implements it.
type IndexSource interface {
	NextIndex() (int, error)
}

// GenerateRandomTernary samples a uniformly random ternary polynomial of
// dimension n with exactly numOnes +1 coefficients and numNegOnes -1
// coefficients, drawing the placement from prng. The returned representation
// is sparse or dense according to the sparse flag.
func GenerateRandomTernary(n, numOnes, numNegOnes int, sparse bool, prng sampling.PRNG) (TernaryPolynomial, error) {
	if numOnes+numNegOnes > n {
		panic("ring: ternary weight exceeds dimension")
	}

	// Draw positions from a shrinking index pool so that every placement is
	// equiprobable.
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}

	draw := func() (int, error) {
		j, err := sampling.RandInt(prng, len(pool))
		if err != nil {
			return 0, err
		}
		idx := pool[j]
		pool[j] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
		return idx, nil
	}

	ones := make([]int, 0, numOnes)
	negOnes := make([]int, 0, numNegOnes)
	for i := 0; i < numOnes; i++ {
		idx, err := draw()
		if err != nil {
			return nil, err
		}
		ones = append(ones, idx)
	}
	for i := 0; i < numNegOnes; i++ {
		idx, err := draw()
		if err != nil {
			return nil, err
		}
		negOnes = append(negOnes, idx)
	}

	if sparse {
		return NewSparseTernary(n, ones, negOnes), nil
	}

	pol := NewPoly(n)
	for _, i := range ones {
		pol.Coeffs[i] = 1
	}
	for _, i := range negOnes {
		pol.Coeffs[i] = -1
	}
	return NewDenseTernary(pol), nil
}

// GenerateProductForm samples a product-form polynomial f1*f2 + f3 with the
// prescribed weights: f1 and f2 carry df1 resp. df2 ones and as many
// negative ones, f3 carries df3Ones ones and df3NegOnes negative ones.
func GenerateProductForm(n, df1, df2, df3Ones, df3NegOnes int, prng sampling.PRNG) (*ProductFormPolynomial, error) {
	f1, err := GenerateRandomTernary(n, df1, df1, true, prng)
	if err != nil {
		return nil, err
	}
	f2, err := GenerateRandomTernary(n, df2, df2, true, prng)
	if err != nil {
		return nil, err
	}
	f3, err := GenerateRandomTernary(n, df3Ones, df3NegOnes, true, prng)
	if err != nil {
		return nil, err
	}
	return NewProductForm(
		f1.(*SparseTernaryPolynomial),
		f2.(*SparseTernaryPolynomial),
		f3.(*SparseTernaryPolynomial),
	), nil
}

// GenerateBlindingPoly consumes exactly 2*dr indices from ig: the first dr
// become the +1 positions and the next dr the -1 positions. The source
// guarantees the indices are distinct.
func GenerateBlindingPoly(ig IndexSource, n, dr int, sparse bool) (TernaryPolynomial, error) {
	ones := make([]int, dr)
	negOnes := make([]int, dr)

	for i := range ones {
		idx, err := ig.NextIndex()
		if err != nil {
			return nil, err
		}
		ones[i] = idx
	}
	for i := range negOnes {
		idx, err := ig.NextIndex()
		if err != nil {
			return nil, err
		}
		negOnes[i] = idx
	}

	if sparse {
		return NewSparseTernary(n, ones, negOnes), nil
	}

	pol := NewPoly(n)
	for _, i := range ones {
		pol.Coeffs[i] = 1
	}
	for _, i := range negOnes {
		pol.Coeffs[i] = -1
	}
	return NewDenseTernary(pol), nil
}
