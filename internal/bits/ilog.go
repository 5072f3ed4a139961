package bits

import (
	mathbits "math/bits"

	"golang.org/x/exp/constraints"
)

// Ilog returns the number of bits needed to represent v: the position of
// the highest set bit, counting from 1. Ilog(0) is 0 and negative values
// are treated as 0.
func Ilog[T constraints.Integer](v T) int {
	if v <= 0 {
		return 0
	}
	return mathbits.Len64(uint64(v))
}

// ICount returns the number of set bits in v. Negative values count 0.
func ICount[T constraints.Integer](v T) int {
	if v <= 0 {
		return 0
	}
	return mathbits.OnesCount64(uint64(v))
}

// Reverse32 reverses the bit order of a 32-bit word.
func Reverse32(v uint32) uint32 {
	return mathbits.Reverse32(v)
}
