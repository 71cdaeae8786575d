package ring

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/ntrugo/utils/sampling"
)

func TestBinaryCodec(t *testing.T) {

	prng, err := sampling.NewKeyedPRNG([]byte("codec-test"))
	require.NoError(t, err)

	for _, tc := range testDimensions {

		N, q := tc.N, tc.q

		t.Run(testString("ToFromBinary", N, q), func(t *testing.T) {
			a := randPoly(t, prng, N, q)
			data := a.ToBinary(q)
			require.Len(t, data, PackedLength(N, q))

			b, err := FromBinary(data, N, q)
			require.NoError(t, err)
			require.True(t, a.Equal(b))

			_, err = FromBinary(data[:len(data)-1], N, q)
			require.Error(t, err)
		})

		t.Run(testString("ToBinaryTrunc", N, q), func(t *testing.T) {
			a := randPoly(t, prng, N, q)
			full := a.ToBinary(q)
			trunc := a.ToBinaryTrunc(q, 8)
			require.Equal(t, full[:8], trunc)
		})

		t.Run(testString("ToBinary4", N, q), func(t *testing.T) {
			a := randPoly(t, prng, N, q)
			data := a.ToBinary4()
			require.Len(t, data, (N+3)/4)
			for i, c := range a.Coeffs {
				got := int64(data[i>>2] >> uint((i&3)<<1) & 3)
				require.Equal(t, c&3, got)
			}
		})
	}
}

func TestTernaryCodec(t *testing.T) {

	prng, err := sampling.NewKeyedPRNG([]byte("ternary-codec-test"))
	require.NoError(t, err)

	for _, N := range []int{17, 439, 1087} {

		t.Run(testString("ToFromBinary3Tight", N, 3), func(t *testing.T) {
			a := randTernaryPoly(t, prng, N, N/3, N/3-1)
			data := a.ToBinary3Tight()
			require.Len(t, data, (N+4)/5)

			b, err := FromBinary3Tight(data, N)
			require.NoError(t, err)
			require.True(t, a.Equal(b))

			_, err = FromBinary3Tight(data[:len(data)-1], N)
			require.Error(t, err)

			bad := append([]byte(nil), data...)
			bad[0] = 243
			_, err = FromBinary3Tight(bad, N)
			require.Error(t, err)
		})

		for _, skipConstant := range []bool{false, true} {

			t.Run(testString("Binary3Sves", N, 3), func(t *testing.T) {
				// Bytes -> trits -> bytes is the identity on the encoded
				// prefix; this is the direction SVES-3 exercises.
				numBytes := (N - 1) * 3 / 2 / 8
				data := make([]byte, numBytes)
				_, err := prng.Read(data)
				require.NoError(t, err)

				a := FromBinary3Sves(data, N, skipConstant)
				require.True(t, a.IsTernary())
				if skipConstant {
					require.Zero(t, a.Coeffs[0])
				}

				back := a.ToBinary3Sves(skipConstant)
				require.GreaterOrEqual(t, len(back), numBytes)
				require.Equal(t, data, back[:numBytes])
			})
		}
	}
}
