package sampling

import (
	"github.com/tuneinsight/ntrugo/utils"
)

// RandInt returns a uniformly distributed integer in [0, max) read from prng,
// using rejection sampling on the smallest covering bit mask.
func RandInt(prng PRNG, max int) (int, error) {
	if max <= 0 {
		panic("sampling: RandInt max must be strictly positive")
	}
	if max == 1 {
		return 0, nil
	}

	bits := utils.BitLen(uint64(max - 1))
	mask := uint64(1)<<bits - 1
	numBytes := (bits + 7) >> 3

	b := make([]byte, numBytes)
	for {
		if _, err := prng.Read(b); err != nil {
			return 0, err
		}
		var v uint64
		for _, bi := range b {
			v = v<<8 | uint64(bi)
		}
		v &= mask
		if v < uint64(max) {
			return int(v), nil
		}
	}
}
