package sampling

import (
	"crypto/sha256"
	"hash"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyedPRNG(t *testing.T) {

	key := []byte{0x49, 0x0a, 0x42, 0x3d, 0x97, 0x9d, 0xc1, 0x07}

	Ha, err := NewKeyedPRNG(key)
	require.NoError(t, err)
	Hb, err := NewKeyedPRNG(key)
	require.NoError(t, err)

	sum0 := make([]byte, 512)
	sum1 := make([]byte, 512)

	_, err = Ha.Read(sum0)
	require.NoError(t, err)
	_, err = Hb.Read(sum1)
	require.NoError(t, err)

	require.Equal(t, sum0, sum1)

	Ha.Reset()
	_, err = Ha.Read(sum1)
	require.NoError(t, err)
	require.Equal(t, sum0, sum1)
}

func TestHashDRBG(t *testing.T) {

	newHash := func() hash.Hash { return sha256.New() }

	passphrase := []byte("correct horse battery staple")
	salt := make([]byte, 16)

	a := NewHashDRBG(newHash, salt, passphrase)
	b := NewHashDRBG(newHash, salt, passphrase)

	sum0 := make([]byte, 257)
	sum1 := make([]byte, 257)

	_, err := a.Read(sum0)
	require.NoError(t, err)
	_, err = b.Read(sum1)
	require.NoError(t, err)
	require.Equal(t, sum0, sum1)

	// Reads of different granularity walk the same stream.
	c := NewHashDRBG(newHash, salt, passphrase)
	sum2 := make([]byte, 257)
	for i := range sum2 {
		if _, err = c.Read(sum2[i : i+1]); err != nil {
			t.Fatal(err)
		}
	}
	require.Equal(t, sum0, sum2)

	// A branch is reproducible but distinct from its parent.
	ba := a.Branch()
	bb := NewHashDRBG(newHash, salt, passphrase).Branch()
	_, err = ba.Read(sum0)
	require.NoError(t, err)
	_, err = bb.Read(sum1)
	require.NoError(t, err)
	require.Equal(t, sum0, sum1)

	d := NewHashDRBG(newHash, salt, passphrase)
	_, err = d.Read(sum2)
	require.NoError(t, err)
	require.NotEqual(t, sum0, sum2)
}

func TestRandInt(t *testing.T) {

	prng, err := NewKeyedPRNG([]byte("rand-int-test"))
	require.NoError(t, err)

	for _, max := range []int{1, 2, 3, 439, 743, 1499} {
		for i := 0; i < 128; i++ {
			v, err := RandInt(prng, max)
			require.NoError(t, err)
			require.GreaterOrEqual(t, v, 0)
			require.Less(t, v, max)
		}
	}
}
