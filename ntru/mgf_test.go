package ntru

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateMask(t *testing.T) {

	for _, params := range []*Parameters{&APR2011439, &EES1087EP2, &APR2011743} {

		seed := igfTestSeed()

		a := GenerateMask(seed, *params)
		require.Equal(t, params.N, a.N())
		require.True(t, a.IsTernary())

		// Determinism.
		b := GenerateMask(seed, *params)
		require.True(t, a.Equal(b))

		// A different seed yields a different mask.
		c := GenerateMask(append(igfTestSeed(), 0xFF), *params)
		require.False(t, a.Equal(c))

		// All three trit values occur in a mask of several hundred
		// coefficients.
		require.Greater(t, a.Count(-1), 0)
		require.Greater(t, a.Count(0), 0)
		require.Greater(t, a.Count(1), 0)
	}
}

func TestGenerateMaskHashSeed(t *testing.T) {

	// APR2011743 and APR2011743FAST are the predefined sets that feed their
	// seed to the hash stream unhashed; the flag must change the output.
	params := APR2011743
	seed := igfTestSeed()

	a := GenerateMask(seed, params)

	params.HashSeed = true
	require.NoError(t, params.Initialize())
	b := GenerateMask(seed, params)

	require.False(t, a.Equal(b))
}
