package setup

import (
	"github.com/pkg/errors"

	"github.com/llehouerou/go-vorbis/internal/bits"
	"github.com/llehouerou/go-vorbis/internal/codebook"
)

// Section limits of the setup header.
const (
	maxTimes    = 64
	maxFloors   = 64
	maxResidues = 64
	maxMaps     = 64
	maxModes    = 64
)

// Header is the setup header.
type Header struct {
	Books *codebook.StaticCodeBooks

	// Times counts the time placeholders, all type 0.
	Times int

	Floors   []Floor
	Residues []*Residue
	Maps     []*Mapping
	Modes    []*Mode
}

// LoadHeader reads a setup header packet. The channel count of the
// identification header sizes the mapping fields.
//
// Ported from: _vorbis_unpack_books() in libvorbis lib/info.c
func LoadHeader(r *bits.Reader, ident *Ident) (*Header, error) {
	if ident == nil {
		return nil, errors.Wrap(bits.ErrInvalidArgument, "setup: no identification header")
	}
	if err := readPreamble(r, PacketSetup); err != nil {
		return nil, err
	}

	books, err := codebook.LoadBooks(r)
	if err != nil {
		return nil, err
	}
	h := &Header{Books: books}

	f := bits.NewFieldReader(r)
	h.Times = f.Int(6) + 1
	for i := 0; i < h.Times; i++ {
		if t := f.Int(16); t != 0 && f.Err == nil {
			return nil, errors.Wrapf(ErrTimeType, "time %d type %d", i, t)
		}
	}

	h.Floors = make([]Floor, f.Int(6)+1)
	if f.Err != nil {
		return nil, f.Err
	}
	for i := range h.Floors {
		if h.Floors[i], err = loadFloor(f, books.Books); err != nil {
			return nil, errors.Wrapf(err, "floor %d", i)
		}
	}

	h.Residues = make([]*Residue, f.Int(6)+1)
	if f.Err != nil {
		return nil, f.Err
	}
	for i := range h.Residues {
		if h.Residues[i], err = loadResidue(f, books.Books); err != nil {
			return nil, errors.Wrapf(err, "residue %d", i)
		}
	}

	h.Maps = make([]*Mapping, f.Int(6)+1)
	if f.Err != nil {
		return nil, f.Err
	}
	for i := range h.Maps {
		if h.Maps[i], err = loadMapping(f, ident.Channels, len(h.Floors), len(h.Residues)); err != nil {
			return nil, errors.Wrapf(err, "mapping %d", i)
		}
	}

	h.Modes = make([]*Mode, f.Int(6)+1)
	if f.Err != nil {
		return nil, f.Err
	}
	for i := range h.Modes {
		if h.Modes[i], err = loadMode(f, len(h.Maps)); err != nil {
			return nil, errors.Wrapf(err, "mode %d", i)
		}
	}

	framing := f.Flag()
	if f.Err != nil {
		return nil, f.Err
	}
	if !framing {
		return nil, errors.Wrap(ErrFraming, "setup header")
	}
	return h, nil
}

// Pack writes the setup header packet.
//
// Ported from: _vorbis_pack_books() in libvorbis lib/info.c
func (h *Header) Pack(w *bits.Writer, ident *Ident) error {
	if ident == nil {
		return errors.Wrap(bits.ErrInvalidArgument, "setup: no identification header")
	}
	if err := h.checkCounts(); err != nil {
		return err
	}

	f := bits.NewFieldWriter(w)
	writePreamble(f, PacketSetup)
	if f.Err != nil {
		return f.Err
	}
	if err := h.Books.Pack(w); err != nil {
		return err
	}

	f.PutInt(h.Times-1, 6)
	for i := 0; i < h.Times; i++ {
		f.PutInt(0, 16)
	}

	f.PutInt(len(h.Floors)-1, 6)
	for i, fl := range h.Floors {
		if err := fl.pack(f); err != nil {
			return errors.Wrapf(err, "floor %d", i)
		}
	}

	f.PutInt(len(h.Residues)-1, 6)
	for i, res := range h.Residues {
		if err := res.pack(f); err != nil {
			return errors.Wrapf(err, "residue %d", i)
		}
	}

	f.PutInt(len(h.Maps)-1, 6)
	for i, m := range h.Maps {
		if err := m.pack(f, ident.Channels); err != nil {
			return errors.Wrapf(err, "mapping %d", i)
		}
	}

	f.PutInt(len(h.Modes)-1, 6)
	for _, m := range h.Modes {
		m.pack(f)
	}

	f.PutFlag(true)
	return f.Err
}

func (h *Header) checkCounts() error {
	switch {
	case h.Books == nil:
		return errors.Wrap(ErrSectionCount, "no codebooks")
	case h.Times < 1 || h.Times > maxTimes:
		return errors.Wrapf(ErrSectionCount, "%d times", h.Times)
	case len(h.Floors) < 1 || len(h.Floors) > maxFloors:
		return errors.Wrapf(ErrSectionCount, "%d floors", len(h.Floors))
	case len(h.Residues) < 1 || len(h.Residues) > maxResidues:
		return errors.Wrapf(ErrSectionCount, "%d residues", len(h.Residues))
	case len(h.Maps) < 1 || len(h.Maps) > maxMaps:
		return errors.Wrapf(ErrSectionCount, "%d mappings", len(h.Maps))
	case len(h.Modes) < 1 || len(h.Modes) > maxModes:
		return errors.Wrapf(ErrSectionCount, "%d modes", len(h.Modes))
	}
	return nil
}

// CodebookOffset is the bit position of the codebook section within a
// setup header packet.
const CodebookOffset = PreambleBits
