package ring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/ntrugo/utils/sampling"
)

var testDimensions = []struct {
	N int
	q int64
}{
	{17, 32},
	{439, 2048},
	{743, 2048},
}

func testString(opname string, N int, q int64) string {
	return fmt.Sprintf("%s/N=%d/q=%d", opname, N, q)
}

func randPoly(t *testing.T, prng sampling.PRNG, N int, q int64) *Poly {
	pol := NewPoly(N)
	for i := range pol.Coeffs {
		v, err := sampling.RandInt(prng, int(q))
		require.NoError(t, err)
		pol.Coeffs[i] = int64(v)
	}
	return pol
}

func randTernaryPoly(t *testing.T, prng sampling.PRNG, N, numOnes, numNegOnes int) *Poly {
	tp, err := GenerateRandomTernary(N, numOnes, numNegOnes, false, prng)
	require.NoError(t, err)
	return tp.Poly()
}

func TestPoly(t *testing.T) {

	prng, err := sampling.NewKeyedPRNG([]byte("ring-test"))
	require.NoError(t, err)

	for _, tc := range testDimensions {

		N, q := tc.N, tc.q

		t.Run(testString("RingLaws", N, q), func(t *testing.T) {

			a := randPoly(t, prng, N, q)
			b := randPoly(t, prng, N, q)
			c := randPoly(t, prng, N, q)

			// Commutativity.
			require.True(t, a.MulMod(b, q).Equal(b.MulMod(a, q)))

			// Distributivity.
			ab := a.CopyNew()
			ab.AddMod(b, q)
			left := ab.MulMod(c, q)
			right := a.MulMod(c, q)
			right.AddMod(b.MulMod(c, q), q)
			require.True(t, left.Equal(right))

			// Multiplicative identity.
			one := NewPoly(N)
			one.Coeffs[0] = 1
			require.True(t, a.MulMod(one, q).Equal(a))
		})

		t.Run(testString("ModCenter", N, q), func(t *testing.T) {
			a := randPoly(t, prng, N, q)
			b := a.CopyNew()
			b.ModCenter(q)
			for i, c := range b.Coeffs {
				require.Greater(t, c, -q/2)
				require.LessOrEqual(t, c, q/2)
				require.Equal(t, a.Coeffs[i], ((c%q)+q)%q)
			}
		})

		t.Run(testString("Mod3", N, q), func(t *testing.T) {
			a := randPoly(t, prng, N, q)
			a.ModCenter(q)
			b := a.CopyNew()
			b.Mod3()
			require.True(t, b.IsTernary())
			for i := range b.Coeffs {
				diff := a.Coeffs[i] - b.Coeffs[i]
				require.Zero(t, diff%3)
			}
		})

		t.Run(testString("CountSum", N, q), func(t *testing.T) {
			a := randTernaryPoly(t, prng, N, N/3, N/3-1)
			require.Equal(t, N/3, a.Count(1))
			require.Equal(t, N/3-1, a.Count(-1))
			require.Equal(t, N-2*(N/3)+1, a.Count(0))
			require.Equal(t, int64(1), a.SumCoeffs())
			require.True(t, a.IsTernary())
			require.False(t, a.IsReduced(q))
		})
	}
}

func TestInversion(t *testing.T) {

	prng, err := sampling.NewKeyedPRNG([]byte("inverse-test"))
	require.NoError(t, err)

	for _, tc := range []struct {
		N  int
		q  int64
		df int
	}{
		{439, 2048, 146},
		{743, 2048, 248},
	} {
		N, q := tc.N, tc.q

		t.Run(testString("InvertFq", N, q), func(t *testing.T) {
			var f, fq *Poly
			for fq == nil {
				f = randTernaryPoly(t, prng, N, tc.df, tc.df-1)
				fq = f.InvertFq(q)
			}

			prod := f.MulMod(fq, q)
			one := NewPoly(N)
			one.Coeffs[0] = 1
			require.True(t, prod.Equal(one))
		})

		t.Run(testString("InvertFqFastFp", N, q), func(t *testing.T) {
			// f = 1 + 3*F for a random ternary F, the fast-fp shape.
			var f, fq *Poly
			for fq == nil {
				f = randTernaryPoly(t, prng, N, tc.df, tc.df)
				f.Mult(3)
				f.Coeffs[0]++
				fq = f.InvertFq(q)
			}

			prod := f.MulMod(fq, q)
			one := NewPoly(N)
			one.Coeffs[0] = 1
			require.True(t, prod.Equal(one))
		})

		t.Run(testString("InvertF3", N, q), func(t *testing.T) {
			var f, fp *Poly
			for fp == nil {
				f = randTernaryPoly(t, prng, N, tc.df, tc.df-1)
				fp = f.InvertF3()
			}

			prod := f.MulMod(fp, 3)
			prod.Mod3()
			one := NewPoly(N)
			one.Coeffs[0] = 1
			require.True(t, prod.Equal(one))
			require.True(t, fp.IsTernary())
		})

		t.Run(testString("InvertNotInvertible", N, q), func(t *testing.T) {
			// X^N - 1 has the root 1, so any polynomial with an even
			// coefficient sum is not invertible mod 2, and any with sum
			// divisible by 3 is not invertible mod 3.
			f := randTernaryPoly(t, prng, N, tc.df, tc.df)
			require.Nil(t, f.InvertFq(q))
			require.Nil(t, f.InvertF3())
		})
	}
}
