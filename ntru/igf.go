package ntru

import (
	"encoding/binary"
	"errors"
	"hash"
)

// IndexGenerator implements IGF-2, the deterministic hash-driven stream of
// distinct indices in [0, N) used to derive blinding polynomials. The same
// seed and parameters always yield the same stream.
type IndexGenerator struct {
	n     int
	c     int
	limit uint32

	newHash func() hash.Hash
	z       []byte
	counter uint32

	buf    []byte
	bitPos int

	used      []bool
	remaining int
}

// NewIndexGenerator creates an IGF-2 instance from a seed byte string. The
// initial state is Z = Hash(seed) followed by minIGFHashCalls hash blocks
// Hash(Z || counter).
func NewIndexGenerator(seed []byte, params Parameters) *IndexGenerator {
	newHash := params.Digest.New

	h := params.Digest.New()
	h.Write(seed)

	ig := &IndexGenerator{
		n:         params.N,
		c:         params.C,
		limit:     (uint32(1) << uint(params.C)) - (uint32(1)<<uint(params.C))%uint32(params.N),
		newHash:   newHash,
		z:         h.Sum(nil),
		used:      make([]bool, params.N),
		remaining: params.N,
	}

	for int(ig.counter) < params.MinIGFHashCalls {
		ig.appendBlock()
	}

	return ig
}

func (ig *IndexGenerator) appendBlock() {
	var ctr [4]byte
	binary.BigEndian.PutUint32(ctr[:], ig.counter)
	h := ig.newHash()
	h.Write(ig.z)
	h.Write(ctr[:])
	ig.buf = h.Sum(ig.buf)
	ig.counter++
}

// nextBits consumes c bits from the buffer, most significant first,
// refilling it by one hash block at a time when short.
func (ig *IndexGenerator) nextBits() uint32 {
	for ig.bitPos+ig.c > len(ig.buf)*8 {
		ig.appendBlock()
	}

	var v uint32
	for i := 0; i < ig.c; i++ {
		bit := ig.buf[ig.bitPos>>3] >> uint(7-ig.bitPos&7) & 1
		v = v<<1 | uint32(bit)
		ig.bitPos++
	}
	return v
}

// NextIndex yields the next index of the stream. Candidates that would bias
// the distribution are rejected, as are previously yielded indices.
func (ig *IndexGenerator) NextIndex() (int, error) {
	if ig.remaining == 0 {
		return 0, errors.New("ntru: index generator exhausted")
	}

	for {
		i := ig.nextBits()
		if i >= ig.limit {
			continue
		}
		idx := int(i % uint32(ig.n))
		if ig.used[idx] {
			continue
		}
		ig.used[idx] = true
		ig.remaining--
		return idx, nil
	}
}
