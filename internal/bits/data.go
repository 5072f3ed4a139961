package bits

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Data is an owned bit string in the same LSB-first layout as Reader and
// Writer: bit i lives in byte i/8 at position i%8.
//
// Data is used to cut already-encoded regions out of a packet and splice
// them back without re-parsing what surrounds them. Bits past TotalBits in
// the final byte are always zero.
type Data struct {
	data      []byte
	totalBits int
}

// BytesFor returns the number of bytes needed to hold n bits.
func BytesFor(n int) int {
	return (n + 7) >> 3
}

// NewData copies the first totalBits bits of p. totalBits must not exceed
// len(p)*8.
func NewData(p []byte, totalBits int) Data {
	d := Data{
		data:      append([]byte(nil), p[:BytesFor(totalBits)]...),
		totalBits: totalBits,
	}
	d.removeResidue()
	return d
}

// DataFromBytes copies p as a bit string of len(p)*8 bits.
func DataFromBytes(p []byte) Data {
	return Data{
		data:      append([]byte(nil), p...),
		totalBits: len(p) * 8,
	}
}

// removeResidue zeroes the bits beyond totalBits in the last byte.
func (d *Data) removeResidue() {
	if r := d.totalBits & 7; r != 0 && len(d.data) > 0 {
		d.data[len(d.data)-1] &= byte(mask[r])
	}
}

// shrink drops trailing bytes that hold no bits.
func (d *Data) shrink() {
	d.data = d.data[:BytesFor(d.totalBits)]
	d.removeResidue()
}

// TotalBits returns the length of the bit string.
func (d Data) TotalBits() int {
	return d.totalBits
}

// TotalBytes returns the number of bytes needed to hold all bits.
func (d Data) TotalBytes() int {
	return BytesFor(d.totalBits)
}

// Reader returns a Reader positioned at the first bit.
func (d Data) Reader() *Reader {
	return NewReader(d.data)
}

// Bytes returns a copy of the bit string, zero padded to a whole byte.
func (d Data) Bytes() []byte {
	return append([]byte(nil), d.data[:d.TotalBytes()]...)
}

// Equal reports whether d and o hold the same bits.
func (d Data) Equal(o Data) bool {
	if d.totalBits != o.totalBits {
		return false
	}
	n := d.TotalBytes()
	for i := 0; i < n; i++ {
		if d.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// Split cuts the bit string at bit position at. The front holds bits
// [0, at) and the back holds the rest, shifted down to start at bit 0.
// Concatenating the two reproduces d.
func (d Data) Split(at int) (front, back Data) {
	if at <= 0 {
		return Data{}, d.clone()
	}
	if at >= d.totalBits {
		return d.clone(), Data{}
	}
	front = NewData(d.data, at)
	back = Data{
		data:      shiftToFront(d.data, at, d.totalBits),
		totalBits: d.totalBits - at,
	}
	back.removeResidue()
	return front, back
}

// Concat appends the bits of o immediately after the bits of d, with no
// padding in between. o is left unchanged.
func (d *Data) Concat(o Data) {
	if o.totalBits == 0 {
		return
	}
	d.shrink()
	shift := d.totalBits & 7
	if shift == 0 {
		d.data = append(d.data, o.data[:o.TotalBytes()]...)
	} else {
		// The low 8-shift bits of o fill the partial last byte; the rest
		// is realigned to start on a byte boundary.
		d.data[len(d.data)-1] |= o.data[0] << shift
		d.data = append(d.data, shiftToFront(o.data, 8-shift, o.totalBits)...)
	}
	d.totalBits += o.totalBits
	d.removeResidue()
}

func (d Data) clone() Data {
	return Data{
		data:      append([]byte(nil), d.data[:d.TotalBytes()]...),
		totalBits: d.totalBits,
	}
}

// String renders the bit string as hex bytes followed by its bit length.
func (d Data) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, b := range d.data[:d.TotalBytes()] {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", b)
	}
	fmt.Fprintf(&sb, "] (%d bits)", d.totalBits)
	return sb.String()
}

// shiftToFront drops the first n bits of a totalBits-long bit string and
// returns the remainder starting at bit 0, sized to exactly the bytes it
// needs. Residue bits in the last byte are not cleared.
//
// Sub-byte shifts are done 64 bits at a time on little-endian words, which
// matches the LSB-first bit order of the byte stream.
func shiftToFront(p []byte, n, totalBits int) []byte {
	if n >= totalBits {
		return nil
	}
	outLen := BytesFor(totalBits - n)
	src := p[n>>3 : BytesFor(totalBits)]
	shift := uint(n & 7)

	out := make([]byte, outLen)
	if shift == 0 {
		copy(out, src)
		return out
	}

	words := (len(src) + 7) / 8
	buf := make([]byte, (words+1)*8)
	copy(buf, src)
	for i := 0; i < words; i++ {
		lo := binary.LittleEndian.Uint64(buf[i*8:])
		hi := binary.LittleEndian.Uint64(buf[i*8+8:])
		binary.LittleEndian.PutUint64(buf[i*8:], lo>>shift|hi<<(64-shift))
	}
	copy(out, buf)
	return out
}
