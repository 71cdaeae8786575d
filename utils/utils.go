// Package utils implements small helpers shared across the library.
package utils

import (
	"golang.org/x/exp/constraints"
)

// Min returns the minimum of the two inputs.
func Min[T constraints.Ordered](a, b T) T {
	if a <= b {
		return a
	}
	return b
}

// Max returns the maximum of the two inputs.
func Max[T constraints.Ordered](a, b T) T {
	if a >= b {
		return a
	}
	return b
}

// EqualSliceInt64 checks the equality between two int64 slices.
func EqualSliceInt64(a, b []int64) (v bool) {
	if len(a) != len(b) {
		return false
	}
	v = true
	for i := range a {
		v = v && (a[i] == b[i])
	}
	return
}

// ModInverse computes the multiplicative inverse of a modulo m using the
// extended Euclidean algorithm. The second return value is false if a is not
// invertible modulo m.
func ModInverse[T constraints.Signed](a, m T) (T, bool) {
	if m <= 0 {
		return 0, false
	}

	a %= m
	if a < 0 {
		a += m
	}

	var r0, r1 = m, a
	var t0, t1 T = 0, 1

	for r1 != 0 {
		q := r0 / r1
		r0, r1 = r1, r0-q*r1
		t0, t1 = t1, t0-q*t1
	}

	if r0 != 1 {
		return 0, false
	}

	if t0 < 0 {
		t0 += m
	}

	return t0, true
}

// BitLen returns the number of bits required to represent v.
func BitLen(v uint64) (c int) {
	for v > 0 {
		v >>= 1
		c++
	}
	return
}
