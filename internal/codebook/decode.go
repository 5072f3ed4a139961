package codebook

import (
	"github.com/pkg/errors"

	"github.com/llehouerou/go-vorbis/internal/bits"
)

// DecodeEntry reads one codeword from r and returns its entry number.
//
// Ported from: decode_packed_entry_number() in libvorbis lib/codebook.c
func (c *CodeBook) DecodeEntry(r *bits.Reader) (int, error) {
	if c.forEncode {
		return -1, ErrWrongMode
	}
	pos, err := c.decodePosition(r)
	if err != nil {
		return -1, err
	}
	return c.DecIndex[pos], nil
}

// decodePosition returns the sorted position of the next codeword.
func (c *CodeBook) decodePosition(r *bits.Reader) (int, error) {
	if c.UsedEntries == 0 {
		return -1, ErrEmptyBook
	}

	lo, hi := 0, c.UsedEntries
	if r.BitsLeft() >= c.DecFirstTableN {
		look, _ := r.ShowBits(c.DecFirstTableN)
		entry := c.DecFirstTable[look]
		if entry&0x80000000 == 0 {
			pos := int(entry) - 1
			_ = r.FlushBits(int(c.DecCodeLengths[pos]))
			return pos, nil
		}
		lo = int(entry>>15) & 0x7fff
		hi = c.UsedEntries - int(entry&0x7fff)
	}

	read := min(c.DecMaxLength, r.BitsLeft())
	if read < 1 {
		return -1, errors.Wrapf(bits.ErrUnexpectedEOF, "codebook: codeword at byte 0x%x", r.BytePos())
	}
	look, _ := r.ShowBits(read)
	testword := bits.Reverse32(look)

	for hi-lo > 1 {
		p := (hi - lo) >> 1
		if c.CodeList[lo+p] > testword {
			hi -= p
		} else {
			lo += p
		}
	}

	if l := int(c.DecCodeLengths[lo]); l <= read {
		_ = r.FlushBits(l)
		return lo, nil
	}
	_ = r.FlushBits(read)
	if read < c.DecMaxLength {
		return -1, errors.Wrapf(bits.ErrUnexpectedEOF, "codebook: codeword at byte 0x%x", r.BytePos())
	}
	return -1, errors.Wrapf(ErrBadCodeword, "at byte 0x%x", r.BytePos())
}

// DecodeVector reads one codeword and returns the Dim values of its entry.
// The returned slice aliases the book's value list.
func (c *CodeBook) DecodeVector(r *bits.Reader) ([]float32, error) {
	if c.forEncode {
		return nil, ErrWrongMode
	}
	if c.ValueList == nil {
		return nil, ErrNoValues
	}
	entry, err := c.DecodeEntry(r)
	if err != nil {
		return nil, err
	}
	return c.ValueList[entry*c.Dim : (entry+1)*c.Dim], nil
}
