package codebook

import "math"

// Codebook floats use their own 32-bit layout: a sign bit, a 10-bit
// exponent biased by 768 and a 21-bit mantissa.
const (
	floatMantBits = 21
	floatExpBias  = 768
)

// UnpackFloat32 decodes a codebook float from its 32-bit wire pattern.
//
// Ported from: _float32_unpack() in libvorbis lib/sharedbook.c
func UnpackFloat32(v uint32) float32 {
	mant := float64(v & 0x1fffff)
	if v&0x80000000 != 0 {
		mant = -mant
	}
	exp := int((v&0x7fe00000)>>floatMantBits) - (floatMantBits - 1) - floatExpBias
	if exp > 63 {
		exp = 63
	}
	if exp < -63 {
		exp = -63
	}
	return float32(math.Ldexp(mant, exp))
}

// PackFloat32 encodes f in the codebook float layout. Zero packs to 0.
//
// Ported from: _float32_pack() in libvorbis lib/sharedbook.c
func PackFloat32(f float32) uint32 {
	val := float64(f)
	if val == 0 {
		return 0
	}
	var sign uint32
	if val < 0 {
		sign = 0x80000000
		val = -val
	}
	exp := int(math.Floor(math.Log2(val) + .001))
	mant := uint32(math.RoundToEven(math.Ldexp(val, (floatMantBits-1)-exp)))
	return sign | uint32(exp+floatExpBias)<<floatMantBits | mant
}
