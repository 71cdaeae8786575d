package ntru

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/ntrugo/ring"
)

func TestParametersDerived(t *testing.T) {

	require.Equal(t, 170, EES1087EP2.MaxMsgLenBytes())
	require.Equal(t, 362, EES1087EP2.Dg())
	require.Equal(t, (1087*3/2+7)/8*8+1, EES1087EP2.BufferLenBits())
	require.Equal(t, 256, EES1087EP2.PkLen())

	// maxM1 > 0 drops one coefficient from the message capacity formula.
	require.Equal(t, 65, APR2011439.MaxMsgLenBytes())
	require.Equal(t, 146, APR2011439.Dg())

	require.Equal(t, 106, APR2011743.MaxMsgLenBytes())

	for _, params := range ParameterSets {
		require.Equal(t, params.N/3, params.Dg())
		require.LessOrEqual(t, params.MaxMsgLenBytes(), 255)
		require.Equal(t, (params.N*ring.CoeffBits(params.Q)+7)/8, params.CiphertextLen())
	}
}

func TestParametersValidation(t *testing.T) {

	p := APR2011439
	p.Q = 2047 // not a power of two
	require.Error(t, p.Initialize())

	p = APR2011439
	p.Db = 129 // not a multiple of 8
	require.Error(t, p.Initialize())

	p = APR2011439
	p.N = 0
	require.Error(t, p.Initialize())

	// A ring too large for the one-byte length field must be rejected.
	p = EES1499EP1
	p.N = 2039
	require.Error(t, p.Initialize())
}

func TestParametersMarshal(t *testing.T) {

	for _, params := range ParameterSets {
		data, err := params.MarshalBinary()
		require.NoError(t, err)
		require.Len(t, data, 66)

		var got Parameters
		require.NoError(t, got.UnmarshalBinary(data))
		require.True(t, params.Equal(&got))
		require.Empty(t, cmp.Diff(*params, got, cmp.AllowUnexported(Parameters{})))

		require.Error(t, new(Parameters).UnmarshalBinary(data[:17]))
		require.Error(t, new(Parameters).UnmarshalBinary(data[:60]))
	}
}

func TestParametersFromOID(t *testing.T) {

	for _, params := range ParameterSets {
		got, err := ParametersFromOID(params.OID, params.PolyType == TypeProduct)
		require.NoError(t, err)
		require.True(t, params.Equal(&got))
	}

	_, err := ParametersFromOID([3]byte{9, 9, 9}, false)
	require.Error(t, err)
}
