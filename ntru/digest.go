// Package ntru implements the NTRUEncrypt public-key cryptosystem with the
// SVES-3 padding scheme from EESS #1: key-pair generation, encryption and
// decryption in the ring Z[X]/(X^N - 1) with a power-of-two modulus q and
// the small modulus p = 3.
package ntru

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/dchest/blake256"
	"github.com/dchest/blake512"
	"github.com/dchest/skein"
	"golang.org/x/crypto/sha3"

	"github.com/tuneinsight/ntrugo/utils/sampling"
)

// Digest selects the hash function driving the IGF, the MGF and the
// passphrase key derivation.
type Digest int32

const (
	SHA256 Digest = iota
	SHA512
	Blake256
	Blake512
	Keccak256
	Keccak512
	Skein256
	Skein512
	Skein1024
)

// DefaultDigest is used for unknown selector values.
const DefaultDigest = SHA512

// New returns a fresh streaming hash for the selector. Unknown values
// degrade to the default digest.
func (d Digest) New() hash.Hash {
	switch d {
	case SHA256:
		return sha256.New()
	case SHA512:
		return sha512.New()
	case Blake256:
		return blake256.New()
	case Blake512:
		return blake512.New()
	case Keccak256:
		return sha3.NewLegacyKeccak256()
	case Keccak512:
		return sha3.NewLegacyKeccak512()
	case Skein256:
		return skein.NewHash(32)
	case Skein512:
		return skein.NewHash(64)
	case Skein1024:
		return skein.NewHash(128)
	default:
		return DefaultDigest.New()
	}
}

// Size returns the digest size in bytes.
func (d Digest) Size() int {
	return d.New().Size()
}

func (d Digest) String() string {
	switch d {
	case SHA256:
		return "SHA256"
	case SHA512:
		return "SHA512"
	case Blake256:
		return "Blake256"
	case Blake512:
		return "Blake512"
	case Keccak256:
		return "Keccak256"
	case Keccak512:
		return "Keccak512"
	case Skein256:
		return "Skein256"
	case Skein512:
		return "Skein512"
	case Skein1024:
		return "Skein1024"
	default:
		return "Unknown"
	}
}

// PRNGSource selects the random source of the engine. Every nominal value
// resolves to the platform CSPRNG.
type PRNGSource int32

const (
	PRNGDefault PRNGSource = iota
	PRNGSystem
)

// New returns a PRNG for the selector.
func (s PRNGSource) New() (sampling.PRNG, error) {
	prng, err := sampling.NewPRNG()
	return prng, err
}
