package bits

import (
	"bytes"
	"io"
	"math"

	"github.com/pkg/errors"
)

// cacheSize is the cache length at which WriteBits flushes whole bytes to
// the sink. It only batches sink writes.
const cacheSize = 1024

// Writer writes bits least significant bit first, mirroring Reader.
//
// Bits accumulate in a cache. When the stream is not byte aligned the last
// cache byte is partial and stays in the cache across Flush calls, so later
// writes continue filling it. ForceFlush must be called once at stream end.
type Writer struct {
	sink      io.Writer
	cache     []byte
	endbit    int // Bits used in the trailing partial byte, 0-7
	totalBits int // Bits written since construction
}

// NewWriter creates a Writer flushing to sink.
func NewWriter(sink io.Writer) *Writer {
	return &Writer{
		sink:  sink,
		cache: make([]byte, 0, 64),
	}
}

// TotalBits returns the number of bits written so far.
func (w *Writer) TotalBits() int {
	return w.totalBits
}

// WriteBits writes the low n bits of value. n must be 0-32.
func (w *Writer) WriteBits(value uint32, n int) error {
	if n < 0 || n > 32 {
		return errors.Wrapf(ErrInvalidArgument, "write of %d bits", n)
	}
	if n == 0 {
		return nil
	}

	v := uint64(value&mask[n]) << w.endbit
	span := w.endbit + n

	if w.endbit != 0 {
		w.cache[len(w.cache)-1] |= byte(v)
	} else {
		w.cache = append(w.cache, byte(v))
	}
	for shift := 8; shift < span; shift += 8 {
		w.cache = append(w.cache, byte(v>>shift))
	}

	w.endbit = span & 7
	w.totalBits += n

	if len(w.cache) >= cacheSize {
		return w.Flush()
	}
	return nil
}

// WriteFlag writes a single bit.
func (w *Writer) WriteFlag(b bool) error {
	if b {
		return w.WriteBits(1, 1)
	}
	return w.WriteBits(0, 1)
}

// WriteFloat32 writes the 32-bit IEEE-754 pattern of f.
func (w *Writer) WriteFloat32(f float32) error {
	return w.WriteBits(math.Float32bits(f), 32)
}

// WriteBytes writes each byte of p as an 8-bit field.
func (w *Writer) WriteBytes(p []byte) error {
	for _, b := range p {
		if err := w.WriteBits(uint32(b), 8); err != nil {
			return err
		}
	}
	return nil
}

// WriteData writes the bits of d at the current bit position.
func (w *Writer) WriteData(d Data) error {
	p := d.Bytes()
	whole := d.TotalBits() / 8
	if err := w.WriteBytes(p[:whole]); err != nil {
		return err
	}
	if rest := d.TotalBits() % 8; rest != 0 {
		return w.WriteBits(uint32(p[whole]), rest)
	}
	return nil
}

// Flush pushes every complete cached byte to the sink. A partial trailing
// byte is kept so that later writes keep filling it.
func (w *Writer) Flush() error {
	if len(w.cache) == 0 {
		return nil
	}
	n := len(w.cache)
	if w.endbit != 0 {
		n--
	}
	if n == 0 {
		return nil
	}
	if _, err := w.sink.Write(w.cache[:n]); err != nil {
		return errors.Wrap(err, "bits: flush")
	}
	rest := copy(w.cache, w.cache[n:])
	w.cache = w.cache[:rest]
	return nil
}

// ForceFlush pushes the whole cache, including a partial final byte padded
// with zero bits, and resets the bit offset. It ends the stream: bits
// written afterwards start on a fresh byte.
func (w *Writer) ForceFlush() error {
	if len(w.cache) > 0 {
		if _, err := w.sink.Write(w.cache); err != nil {
			return errors.Wrap(err, "bits: flush")
		}
	}
	w.cache = w.cache[:0]
	w.endbit = 0
	return nil
}

// BufferWriter is a Writer collecting its output in memory.
type BufferWriter struct {
	*Writer
	buf bytes.Buffer
}

// NewBufferWriter creates a Writer over an in-memory buffer.
func NewBufferWriter() *BufferWriter {
	bw := &BufferWriter{}
	bw.Writer = NewWriter(&bw.buf)
	return bw
}

// Bytes force-flushes the writer and returns everything written.
func (bw *BufferWriter) Bytes() []byte {
	// bytes.Buffer writes never fail.
	_ = bw.ForceFlush()
	return bw.buf.Bytes()
}

// Data force-flushes the writer and returns its output as a bit string
// of exactly TotalBits bits.
func (bw *BufferWriter) Data() Data {
	total := bw.TotalBits()
	return NewData(bw.Bytes(), total)
}
