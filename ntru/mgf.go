package ntru

import (
	"encoding/binary"

	"github.com/tuneinsight/ntrugo/ring"
)

// GenerateMask implements MGF-TP-1: it deterministically expands a seed into
// a polynomial of length N with coefficients in {-1, 0, 1}. Bytes of the
// hash stream that cannot be decomposed into five uniform trits (values
// >= 243 = 3^5) are rejected.
func GenerateMask(seed []byte, params Parameters) *ring.Poly {

	z := seed
	if params.HashSeed {
		h := params.Digest.New()
		h.Write(seed)
		z = h.Sum(nil)
	}

	var buf []byte
	var counter uint32
	appendBlock := func() {
		var ctr [4]byte
		binary.BigEndian.PutUint32(ctr[:], counter)
		h := params.Digest.New()
		h.Write(z)
		h.Write(ctr[:])
		buf = h.Sum(buf)
		counter++
	}

	for int(counter) < params.MinMGFHashCalls {
		appendBlock()
	}

	pol := ring.NewPoly(params.N)
	var n, pos int
	for n < params.N {
		if pos == len(buf) {
			appendBlock()
		}
		o := int64(buf[pos])
		pos++
		if o >= 243 {
			continue
		}
		for j := 0; j < 5 && n < params.N; j++ {
			rem := o % 3
			if rem == 2 {
				rem = -1
			}
			pol.Coeffs[n] = rem
			n++
			o /= 3
		}
	}

	return pol
}
