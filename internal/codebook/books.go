package codebook

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/llehouerou/go-vorbis/internal/bits"
)

// MaxBooks is the largest number of codebooks a setup header can carry.
const MaxBooks = 256

// ErrBookCount indicates a collection with no books or more than MaxBooks.
var ErrBookCount = errors.WithMessage(bits.ErrInvalidData, "codebook: bad codebook count")

// StaticCodeBooks is the codebook section of a setup header: an 8-bit
// count minus one followed by the books, with no padding between them.
type StaticCodeBooks struct {
	Books []*StaticCodeBook

	// BookBits holds the packed size of every book and TotalBits the size
	// of the whole section, count field included. LoadBooks records the
	// sizes read and Pack the sizes written.
	BookBits  []int
	TotalBits int
}

// NewStaticCodeBooks collects books into a section.
func NewStaticCodeBooks(books ...*StaticCodeBook) *StaticCodeBooks {
	return &StaticCodeBooks{Books: books}
}

// LoadBooks reads a codebook section from r.
func LoadBooks(r *bits.Reader) (*StaticCodeBooks, error) {
	start := r.TotalBits()
	n, err := r.GetBits(8)
	if err != nil {
		return nil, err
	}
	count := int(n) + 1

	s := &StaticCodeBooks{
		Books:    make([]*StaticCodeBook, count),
		BookBits: make([]int, count),
	}
	for i := range s.Books {
		before := r.TotalBits()
		b, err := Load(r)
		if err != nil {
			return nil, errors.Wrapf(err, "codebook %d", i)
		}
		s.Books[i] = b
		s.BookBits[i] = r.TotalBits() - before
	}
	s.TotalBits = r.TotalBits() - start
	return s, nil
}

// LoadBooksFromBytes reads a codebook section starting at the first bit of p.
func LoadBooksFromBytes(p []byte) (*StaticCodeBooks, error) {
	return LoadBooks(bits.NewReader(p))
}

// Pack writes the section to w and records the size of every book.
//
// A loaded book may pack smaller than it was read, since the loader
// accepts length encodings Pack never chooses. Each packed book is loaded
// back: a book the loader rejects is an error, and a reload that consumes
// other than the bits written means the packer and loader disagree, so
// Pack panics.
func (s *StaticCodeBooks) Pack(w *bits.Writer) error {
	if len(s.Books) == 0 || len(s.Books) > MaxBooks {
		return errors.Wrapf(ErrBookCount, "%d books", len(s.Books))
	}

	start := w.TotalBits()
	if err := w.WriteBits(uint32(len(s.Books)-1), 8); err != nil {
		return err
	}
	sizes := make([]int, len(s.Books))
	for i, b := range s.Books {
		d, err := packChecked(b)
		if err != nil {
			return errors.Wrapf(err, "codebook %d", i)
		}
		if err := w.WriteData(d); err != nil {
			return err
		}
		sizes[i] = d.TotalBits()
	}
	s.BookBits = sizes
	s.TotalBits = w.TotalBits() - start
	return nil
}

// packChecked packs one book and loads it back.
func packChecked(b *StaticCodeBook) (bits.Data, error) {
	bw := bits.NewBufferWriter()
	if err := b.Pack(bw.Writer); err != nil {
		return bits.Data{}, err
	}
	d := bw.Data()
	r := d.Reader()
	if _, err := Load(r); err != nil {
		return bits.Data{}, errors.Wrap(err, "packed book does not load")
	}
	if r.TotalBits() != d.TotalBits() {
		panic(fmt.Sprintf("codebook: book packed to %d bits, loads from %d", d.TotalBits(), r.TotalBits()))
	}
	return d, nil
}

// ToPacked packs the section into a bit string that keeps each book's size.
func (s *StaticCodeBooks) ToPacked() (*Packed, error) {
	w := bits.NewBufferWriter()
	if err := s.Pack(w.Writer); err != nil {
		return nil, err
	}
	return &Packed{
		Data:     w.Data(),
		BookBits: append([]int(nil), s.BookBits...),
	}, nil
}

// Packed is a packed codebook section with the bit size of every book, so
// single books can be cut out or appended without reparsing.
type Packed struct {
	Data     bits.Data
	BookBits []int
}

// Len returns the number of books.
func (p *Packed) Len() int {
	return len(p.BookBits)
}

// Split returns one bit string per book, count field excluded.
func (p *Packed) Split() []bits.Data {
	out := make([]bits.Data, 0, len(p.BookBits))
	_, rest := p.Data.Split(8)
	for _, n := range p.BookBits {
		var book bits.Data
		book, rest = rest.Split(n)
		out = append(out, book)
	}
	return out
}

// Concat appends one packed book and updates the count field.
func (p *Packed) Concat(book bits.Data) error {
	if len(p.BookBits) >= MaxBooks {
		return errors.Wrapf(ErrBookCount, "%d books", len(p.BookBits)+1)
	}
	w := bits.NewBufferWriter()
	_ = w.WriteBits(uint32(len(p.BookBits)), 8)
	head := w.Data()

	_, rest := p.Data.Split(8)
	head.Concat(rest)
	head.Concat(book)
	p.Data = head
	p.BookBits = append(p.BookBits, book.TotalBits())
	return nil
}

// Unpack loads the books back. Each reloaded book must match its recorded
// size; Unpack panics otherwise.
func (p *Packed) Unpack() (*StaticCodeBooks, error) {
	s, err := LoadBooks(p.Data.Reader())
	if err != nil {
		return nil, err
	}
	if len(s.BookBits) != len(p.BookBits) {
		panic(fmt.Sprintf("codebook: packed section holds %d books, recorded %d", len(s.BookBits), len(p.BookBits)))
	}
	for i, n := range s.BookBits {
		if n != p.BookBits[i] {
			panic(fmt.Sprintf("codebook: book %d reloads as %d bits, recorded %d", i, n, p.BookBits[i]))
		}
	}
	return s, nil
}
