// Package bits implements the LSB-first bit packing used by Vorbis packets.
package bits

import (
	"math"

	"github.com/pkg/errors"
)

// mask holds the low-n-bits masks for n in 0..32.
var mask = [33]uint32{
	0x00000000,
	0x00000001, 0x00000003, 0x00000007, 0x0000000f,
	0x0000001f, 0x0000003f, 0x0000007f, 0x000000ff,
	0x000001ff, 0x000003ff, 0x000007ff, 0x00000fff,
	0x00001fff, 0x00003fff, 0x00007fff, 0x0000ffff,
	0x0001ffff, 0x0003ffff, 0x0007ffff, 0x000fffff,
	0x001fffff, 0x003fffff, 0x007fffff, 0x00ffffff,
	0x01ffffff, 0x03ffffff, 0x07ffffff, 0x0fffffff,
	0x1fffffff, 0x3fffffff, 0x7fffffff, 0xffffffff,
}

// Mask returns a value with the low n bits set. n must be 0-32.
func Mask(n int) uint32 {
	return mask[n]
}

// Reader reads bits from a borrowed byte buffer, least significant bit
// first. The first bit read is bit 0 of byte 0.
//
// The read position is tracked as a byte cursor plus a bit offset (0-7)
// into the byte under the cursor.
type Reader struct {
	data      []byte // Borrowed buffer
	cursor    int    // Current byte index
	endbit    int    // Bit offset into data[cursor], always 0-7
	totalBits int    // Bits consumed since construction
}

// NewReader creates a Reader over data. The slice is not copied.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// TotalBits returns the number of bits consumed so far.
func (r *Reader) TotalBits() int {
	return r.totalBits
}

// BitsLeft returns the number of unread bits in the buffer.
func (r *Reader) BitsLeft() int {
	return (len(r.data)-r.cursor)*8 - r.endbit
}

// BytePos returns the index of the byte holding the next unread bit.
func (r *Reader) BytePos() int {
	return r.cursor
}

// ShowBits returns the next n bits without consuming them.
// n must be 0-32. Asking for more bits than remain returns ErrUnexpectedEOF.
func (r *Reader) ShowBits(n int) (uint32, error) {
	if n < 0 || n > 32 {
		return 0, errors.Wrapf(ErrInvalidArgument, "read of %d bits", n)
	}
	if n == 0 {
		return 0, nil
	}
	if n > r.BitsLeft() {
		return 0, errors.Wrapf(ErrUnexpectedEOF, "read of %d bits at byte 0x%x", n, r.cursor)
	}
	return r.peek(n), nil
}

// peek assembles up to 5 source bytes: a 32-bit read starting at a
// nonzero bit offset spans five bytes. Callers check availability.
func (r *Reader) peek(n int) uint32 {
	span := r.endbit + n
	var acc uint64
	for i := 0; i*8 < span; i++ {
		acc |= uint64(r.data[r.cursor+i]) << (8 * i)
	}
	return uint32(acc>>r.endbit) & mask[n]
}

// FlushBits discards the next n bits.
func (r *Reader) FlushBits(n int) error {
	if n < 0 {
		return errors.Wrapf(ErrInvalidArgument, "skip of %d bits", n)
	}
	if n > r.BitsLeft() {
		return errors.Wrapf(ErrUnexpectedEOF, "skip of %d bits at byte 0x%x", n, r.cursor)
	}
	r.advance(n)
	return nil
}

func (r *Reader) advance(n int) {
	span := r.endbit + n
	r.cursor += span >> 3
	r.endbit = span & 7
	r.totalBits += n
}

// GetBits reads and returns the next n bits. n must be 0-32.
// A read of 0 bits always succeeds and returns 0, even at end of buffer.
func (r *Reader) GetBits(n int) (uint32, error) {
	v, err := r.ShowBits(n)
	if err != nil {
		return 0, err
	}
	r.advance(n)
	return v, nil
}

// Get1Bit reads a single bit.
func (r *Reader) Get1Bit() (uint8, error) {
	v, err := r.GetBits(1)
	return uint8(v), err
}

// GetFlag reads a single bit as a boolean.
func (r *Reader) GetFlag() (bool, error) {
	v, err := r.GetBits(1)
	return v != 0, err
}

// GetFloat32 reads a 32-bit IEEE-754 bit pattern.
func (r *Reader) GetFloat32() (float32, error) {
	v, err := r.GetBits(32)
	return math.Float32frombits(v), err
}

// GetBytes reads n whole bytes, each as an 8-bit field. The bytes need not
// be aligned to the underlying buffer.
func (r *Reader) GetBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "read of %d bytes", n)
	}
	if n*8 > r.BitsLeft() {
		return nil, errors.Wrapf(ErrUnexpectedEOF, "read of %d bytes at byte 0x%x", n, r.cursor)
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(r.peek(8))
		r.advance(8)
	}
	return out, nil
}
