// Package sampling implements secure sampling of random bytes and integers.
package sampling

import (
	"crypto/rand"
	"encoding/binary"
	"hash"
	"io"

	"golang.org/x/crypto/blake2b"
)

// PRNG is an interface for secure generation of random bytes.
type PRNG interface {
	io.Reader
}

// ThreadSafePRNG is a PRNG backed by the platform CSPRNG.
type ThreadSafePRNG struct {
}

// NewPRNG returns a new PRNG that is thread-safe.
func NewPRNG() (*ThreadSafePRNG, error) {
	return &ThreadSafePRNG{}, nil
}

// Read reads random bytes on sum.
func (prng *ThreadSafePRNG) Read(sum []byte) (n int, err error) {
	return rand.Read(sum)
}

// KeyedPRNG is a structure storing the parameters used to securely and
// *deterministically* generate shared sequences of random bytes using the
// blake2b XOF.
// WARNING: KeyedPRNG should NOT be called by multiple threads. If that occurs,
// the generated sequence will not be deterministic.
type KeyedPRNG struct {
	key []byte
	xof blake2b.XOF
}

// NewKeyedPRNG creates a new instance of KeyedPRNG.
// Accepts an optional key, else set key=nil which is treated as key=[]byte{}.
// WARNING: A PRNG INITIALISED WITH key=nil IS INSECURE!
func NewKeyedPRNG(key []byte) (*KeyedPRNG, error) {
	var err error
	prng := new(KeyedPRNG)
	prng.key = key
	prng.xof, err = blake2b.NewXOF(blake2b.OutputLengthUnknown, key)
	return prng, err
}

// Key returns a copy of the key used to seed the PRNG.
func (prng *KeyedPRNG) Key() (key []byte) {
	key = make([]byte, len(prng.key))
	copy(key, prng.key)
	return
}

// Read reads bytes from the KeyedPRNG on sum.
func (prng *KeyedPRNG) Read(sum []byte) (n int, err error) {
	return prng.xof.Read(sum)
}

// Reset resets the PRNG to its initial state.
func (prng *KeyedPRNG) Reset() {
	prng.xof.Reset()
}

// HashDRBG deterministically derives an unbounded byte stream from a seed by
// hashing the seed together with a big-endian 32-bit block counter. Two
// HashDRBGs built from the same digest and seed material produce identical
// streams.
// WARNING: HashDRBG should NOT be called by multiple threads.
type HashDRBG struct {
	newHash func() hash.Hash
	seed    []byte
	counter uint32
	buf     []byte
}

// NewHashDRBG creates a HashDRBG from a digest constructor and arbitrary seed
// material. The effective seed is Hash(material[0] || material[1] || ...), so
// callers can pass e.g. a salt followed by a passphrase.
func NewHashDRBG(newHash func() hash.Hash, material ...[]byte) *HashDRBG {
	h := newHash()
	for _, m := range material {
		h.Write(m)
	}
	return &HashDRBG{newHash: newHash, seed: h.Sum(nil)}
}

// Branch derives a child HashDRBG whose stream is independent from the
// parent's, yet reproducible from the same seed material.
func (prng *HashDRBG) Branch() *HashDRBG {
	h := prng.newHash()
	h.Write(prng.seed)
	h.Write([]byte{1})
	return &HashDRBG{newHash: prng.newHash, seed: h.Sum(nil)}
}

// Read fills sum with the next bytes of the deterministic stream.
func (prng *HashDRBG) Read(sum []byte) (n int, err error) {
	for len(prng.buf) < len(sum) {
		var ctr [4]byte
		binary.BigEndian.PutUint32(ctr[:], prng.counter)
		h := prng.newHash()
		h.Write(prng.seed)
		h.Write(ctr[:])
		prng.buf = h.Sum(prng.buf)
		prng.counter++
	}
	copy(sum, prng.buf[:len(sum)])
	prng.buf = prng.buf[len(sum):]
	return len(sum), nil
}
