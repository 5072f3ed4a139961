package setup

import (
	"github.com/pkg/errors"

	"github.com/llehouerou/go-vorbis/internal/bits"
)

// Header packet types.
const (
	PacketIdent   = 1
	PacketComment = 3
	PacketSetup   = 5
)

// PreambleBits is the size of the type byte and "vorbis" signature that
// open every header packet.
const PreambleBits = 7 * 8

const signature = "vorbis"

func readPreamble(r *bits.Reader, packetType int) error {
	p, err := r.GetBytes(7)
	if err != nil {
		return err
	}
	if int(p[0]) != packetType || string(p[1:]) != signature {
		return errors.Wrapf(ErrNotVorbis, "packet type %d, want %d", p[0], packetType)
	}
	return nil
}

func writePreamble(f *bits.FieldWriter, packetType int) {
	f.PutInt(packetType, 8)
	f.PutBytes([]byte(signature))
}

// Ident is the identification header.
type Ident struct {
	Version        uint32
	Channels       int
	SampleRate     int
	BitrateUpper   int32
	BitrateNominal int32
	BitrateLower   int32

	// BlockSize holds the short and long block sizes, powers of two.
	BlockSize [2]int
}

// LoadIdent reads an identification header packet.
//
// Ported from: _vorbis_unpack_info() in libvorbis lib/info.c
func LoadIdent(r *bits.Reader) (*Ident, error) {
	if err := readPreamble(r, PacketIdent); err != nil {
		return nil, err
	}

	f := bits.NewFieldReader(r)
	h := &Ident{}
	h.Version = f.Get(32)
	h.Channels = f.Int(8)
	h.SampleRate = int(int32(f.Get(32)))
	h.BitrateUpper = int32(f.Get(32))
	h.BitrateNominal = int32(f.Get(32))
	h.BitrateLower = int32(f.Get(32))
	bs0 := f.Int(4)
	bs1 := f.Int(4)
	framing := f.Flag()
	if f.Err != nil {
		return nil, f.Err
	}

	if h.Version != 0 {
		return nil, errors.Wrapf(ErrVersion, "version %d", h.Version)
	}
	h.BlockSize = [2]int{1 << bs0, 1 << bs1}
	if err := h.validate(); err != nil {
		return nil, err
	}
	if !framing {
		return nil, errors.Wrap(ErrFraming, "identification header")
	}
	return h, nil
}

func (h *Ident) validate() error {
	switch {
	case h.SampleRate < 1:
		return errors.Wrapf(ErrIdent, "sample rate %d", h.SampleRate)
	case h.Channels < 1 || h.Channels > 255:
		return errors.Wrapf(ErrIdent, "%d channels", h.Channels)
	case h.BlockSize[0] < 64,
		h.BlockSize[1] < h.BlockSize[0],
		h.BlockSize[1] > 8192,
		h.BlockSize[0]&(h.BlockSize[0]-1) != 0,
		h.BlockSize[1]&(h.BlockSize[1]-1) != 0:
		return errors.Wrapf(ErrIdent, "block sizes %d/%d", h.BlockSize[0], h.BlockSize[1])
	}
	return nil
}

// Pack writes the identification header packet.
//
// Ported from: _vorbis_pack_info() in libvorbis lib/info.c
func (h *Ident) Pack(w *bits.Writer) error {
	if err := h.validate(); err != nil {
		return err
	}
	f := bits.NewFieldWriter(w)
	writePreamble(f, PacketIdent)
	f.Put(h.Version, 32)
	f.PutInt(h.Channels, 8)
	f.PutInt(h.SampleRate, 32)
	f.Put(uint32(h.BitrateUpper), 32)
	f.Put(uint32(h.BitrateNominal), 32)
	f.Put(uint32(h.BitrateLower), 32)
	f.PutInt(bits.Ilog(h.BlockSize[0]-1), 4)
	f.PutInt(bits.Ilog(h.BlockSize[1]-1), 4)
	f.PutFlag(true)
	return f.Err
}

// Comment is the comment header: a vendor string and user comments,
// conventionally "KEY=value".
type Comment struct {
	Vendor   string
	Comments []string
}

// LoadComment reads a comment header packet.
//
// Ported from: _vorbis_unpack_comment() in libvorbis lib/info.c
func LoadComment(r *bits.Reader) (*Comment, error) {
	if err := readPreamble(r, PacketComment); err != nil {
		return nil, err
	}

	f := bits.NewFieldReader(r)
	c := &Comment{}
	c.Vendor = string(f.Bytes(int(f.Get(32))))
	n := f.Get(32)
	if f.Err != nil {
		return nil, f.Err
	}
	// Every comment needs at least its 32-bit length.
	if int64(n)*32 > int64(r.BitsLeft()) {
		return nil, errors.Wrapf(ErrComment, "%d comments in %d bits", n, r.BitsLeft())
	}
	c.Comments = make([]string, n)
	for i := range c.Comments {
		c.Comments[i] = string(f.Bytes(int(f.Get(32))))
	}
	framing := f.Flag()
	if f.Err != nil {
		return nil, f.Err
	}
	if !framing {
		return nil, errors.Wrap(ErrFraming, "comment header")
	}
	return c, nil
}

// Pack writes the comment header packet.
func (c *Comment) Pack(w *bits.Writer) error {
	f := bits.NewFieldWriter(w)
	writePreamble(f, PacketComment)
	f.PutInt(len(c.Vendor), 32)
	f.PutBytes([]byte(c.Vendor))
	f.PutInt(len(c.Comments), 32)
	for _, s := range c.Comments {
		f.PutInt(len(s), 32)
		f.PutBytes([]byte(s))
	}
	f.PutFlag(true)
	return f.Err
}
