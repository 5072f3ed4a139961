package vorbis

import (
	"github.com/pkg/errors"

	"github.com/llehouerou/go-vorbis/internal/bits"
	"github.com/llehouerou/go-vorbis/internal/codebook"
)

// SessionMode selects which runtime tables a Session derives.
type SessionMode int

// Session modes.
const (
	ModeDecode SessionMode = iota
	ModeEncode
)

// String returns the mode name.
func (m SessionMode) String() string {
	switch m {
	case ModeDecode:
		return "decode"
	case ModeEncode:
		return "encode"
	}
	return "unknown"
}

// Session holds the runtime codebooks of one encode or decode session.
// It owns the static codebook table and every runtime book refers to its
// entry in that table.
type Session struct {
	mode   SessionMode
	static []*codebook.StaticCodeBook
	books  []*codebook.CodeBook
}

// NewSession derives the runtime codebooks of a setup header.
func NewSession(h *Setup, mode SessionMode) (*Session, error) {
	if h == nil || h.Books == nil {
		return nil, errors.Wrap(bits.ErrInvalidArgument, "vorbis: setup header without codebooks")
	}
	return newSession(h.Books.Books, mode)
}

// NewSessionFromCodebooks derives the runtime codebooks of a packed
// codebook section.
func NewSessionFromCodebooks(c *Codebooks, mode SessionMode) (*Session, error) {
	s, err := c.packed.Unpack()
	if err != nil {
		return nil, err
	}
	return newSession(s.Books, mode)
}

func newSession(static []*codebook.StaticCodeBook, mode SessionMode) (*Session, error) {
	if mode != ModeDecode && mode != ModeEncode {
		return nil, errors.Wrapf(bits.ErrInvalidArgument, "vorbis: session mode %d", mode)
	}
	s := &Session{
		mode:   mode,
		static: append([]*codebook.StaticCodeBook(nil), static...),
		books:  make([]*codebook.CodeBook, len(static)),
	}
	for i, b := range s.static {
		cb, err := codebook.New(mode == ModeEncode, b)
		if err != nil {
			return nil, errors.Wrapf(err, "codebook %d", i)
		}
		s.books[i] = cb
	}
	return s, nil
}

// Mode returns the session mode.
func (s *Session) Mode() SessionMode {
	return s.mode
}

// Len returns the number of codebooks.
func (s *Session) Len() int {
	return len(s.books)
}

// Dim returns the vector dimension of a book.
func (s *Session) Dim(book int) (int, error) {
	cb, err := s.book(book)
	if err != nil {
		return 0, err
	}
	return cb.Dim, nil
}

// Entries returns the number of entries of a book.
func (s *Session) Entries(book int) (int, error) {
	cb, err := s.book(book)
	if err != nil {
		return 0, err
	}
	return cb.Entries, nil
}

func (s *Session) book(i int) (*codebook.CodeBook, error) {
	if i < 0 || i >= len(s.books) {
		return nil, errors.Wrapf(bits.ErrInvalidArgument, "vorbis: codebook %d of %d", i, len(s.books))
	}
	return s.books[i], nil
}

// EncodeEntries packs the codewords of entries using one book. The output
// is padded to a whole byte.
func (s *Session) EncodeEntries(book int, entries []int) ([]byte, error) {
	cb, err := s.book(book)
	if err != nil {
		return nil, err
	}
	w := bits.NewBufferWriter()
	for i, e := range entries {
		if _, err := cb.Encode(w.Writer, e); err != nil {
			return nil, errors.Wrapf(err, "entry %d", i)
		}
	}
	return w.Bytes(), nil
}

// DecodeEntries reads n entries of one book from the start of data.
func (s *Session) DecodeEntries(book int, data []byte, n int) ([]int, error) {
	cb, err := s.book(book)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, errors.Wrapf(bits.ErrInvalidArgument, "vorbis: read %d codewords", n)
	}
	r := bits.NewReader(data)
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		e, err := cb.DecodeEntry(r)
		if err != nil {
			return out, errors.Wrapf(err, "entry %d", i)
		}
		out = append(out, e)
	}
	return out, nil
}

// DecodeVectors reads n vectors of one book from the start of data and
// returns them concatenated.
func (s *Session) DecodeVectors(book int, data []byte, n int) ([]float32, error) {
	cb, err := s.book(book)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, errors.Wrapf(bits.ErrInvalidArgument, "vorbis: read %d codewords", n)
	}
	r := bits.NewReader(data)
	out := make([]float32, 0, n*cb.Dim)
	for i := 0; i < n; i++ {
		v, err := cb.DecodeVector(r)
		if err != nil {
			return out, errors.Wrapf(err, "vector %d", i)
		}
		out = append(out, v...)
	}
	return out, nil
}

// Quantize maps each dim-sized group of vec to the closest entry of a
// lattice book and returns the entries. vec is left holding the residual.
func (s *Session) Quantize(book int, vec []int) ([]int, error) {
	cb, err := s.book(book)
	if err != nil {
		return nil, err
	}
	if cb.Dim < 1 || len(vec)%cb.Dim != 0 {
		return nil, errors.Wrapf(bits.ErrInvalidArgument, "vorbis: %d values for dim %d", len(vec), cb.Dim)
	}
	out := make([]int, 0, len(vec)/cb.Dim)
	for i := 0; i < len(vec); i += cb.Dim {
		e, err := cb.BestEntry(vec[i : i+cb.Dim])
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
