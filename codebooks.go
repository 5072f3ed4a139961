package vorbis

import (
	"github.com/pkg/errors"

	"github.com/llehouerou/go-vorbis/internal/bits"
	"github.com/llehouerou/go-vorbis/internal/codebook"
	"github.com/llehouerou/go-vorbis/internal/setup"
)

// ErrStripped indicates a stripped setup header whose trailing padding
// does not fit the codebook section given to restore it.
var ErrStripped = errors.WithMessage(bits.ErrInvalidData, "vorbis: codebooks do not fit stripped header")

// Codebooks is the packed codebook section of a setup header: a book
// count followed by the books, not padded to a byte boundary.
type Codebooks struct {
	packed *codebook.Packed
}

// Len returns the number of books.
func (c *Codebooks) Len() int {
	return c.packed.Len()
}

// Bits returns the size of the section in bits.
func (c *Codebooks) Bits() int {
	return c.packed.Data.TotalBits()
}

// Bytes returns the section, zero padded to a whole byte.
func (c *Codebooks) Bytes() []byte {
	return c.packed.Data.Bytes()
}

// Books returns each book as a single-book section.
func (c *Codebooks) Books() []*Codebooks {
	parts := c.packed.Split()
	out := make([]*Codebooks, len(parts))
	for i, part := range parts {
		p := &codebook.Packed{}
		if err := p.Concat(part); err != nil {
			panic(err)
		}
		out[i] = &Codebooks{packed: p}
	}
	return out
}

// Append adds the books of other after those of c.
func (c *Codebooks) Append(other *Codebooks) error {
	for _, book := range other.packed.Split() {
		if err := c.packed.Concat(book); err != nil {
			return err
		}
	}
	return nil
}

// Validate reloads every book.
func (c *Codebooks) Validate() error {
	_, err := c.packed.Unpack()
	return err
}

// locateCodebooks splits a setup header packet into the preamble, the
// codebook section and the rest of the packet.
func locateCodebooks(packet []byte) (pre bits.Data, books *codebook.Packed, rest bits.Data, err error) {
	if len(packet) < setup.CodebookOffset/8 || packet[0] != setup.PacketSetup || string(packet[1:7]) != "vorbis" {
		return pre, nil, rest, errors.Wrap(setup.ErrNotVorbis, "setup header")
	}
	pre, tail := bits.DataFromBytes(packet).Split(setup.CodebookOffset)

	s, err := codebook.LoadBooks(tail.Reader())
	if err != nil {
		return pre, nil, rest, err
	}
	section, rest := tail.Split(s.TotalBits)
	return pre, &codebook.Packed{Data: section, BookBits: s.BookBits}, rest, nil
}

// ExtractCodebooks returns the codebook section of a setup header packet.
func ExtractCodebooks(packet []byte) (*Codebooks, error) {
	_, books, _, err := locateCodebooks(packet)
	if err != nil {
		return nil, err
	}
	return &Codebooks{packed: books}, nil
}

// ReplaceCodebooks returns a copy of a setup header packet whose codebook
// section is replaced by books. The bits around the section are kept as
// they are; the result is padded to a whole byte.
func ReplaceCodebooks(packet []byte, books *Codebooks) ([]byte, error) {
	pre, _, rest, err := locateCodebooks(packet)
	if err != nil {
		return nil, err
	}
	pre.Concat(books.packed.Data)
	pre.Concat(rest)
	return pre.Bytes(), nil
}

// StripCodebooks removes the codebook section from a setup header packet.
// It returns the remaining packet and the section.
func StripCodebooks(packet []byte) ([]byte, *Codebooks, error) {
	pre, books, rest, err := locateCodebooks(packet)
	if err != nil {
		return nil, nil, err
	}
	pre.Concat(rest)
	return pre.Bytes(), &Codebooks{packed: books}, nil
}

// RestoreCodebooks reverses StripCodebooks. The result matches the
// original packet byte for byte.
func RestoreCodebooks(stripped []byte, books *Codebooks) ([]byte, error) {
	if len(stripped) < setup.CodebookOffset/8 || stripped[0] != setup.PacketSetup || string(stripped[1:7]) != "vorbis" {
		return nil, errors.Wrap(setup.ErrNotVorbis, "stripped setup header")
	}

	// Removing the section left the packet short of a whole byte by the
	// section size modulo 8, and packing padded it with that many zeros.
	pad := books.Bits() % 8
	d := bits.DataFromBytes(stripped)
	if d.TotalBits()-pad < setup.CodebookOffset {
		return nil, errors.Wrapf(ErrStripped, "%d bytes", len(stripped))
	}
	body, padding := d.Split(d.TotalBits() - pad)
	if !padding.Equal(bits.NewData(make([]byte, bits.BytesFor(pad)), pad)) {
		return nil, errors.Wrapf(ErrStripped, "%d trailing bits are not padding", pad)
	}

	pre, rest := body.Split(setup.CodebookOffset)
	pre.Concat(books.packed.Data)
	pre.Concat(rest)
	return pre.Bytes(), nil
}
