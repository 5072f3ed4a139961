package vorbis

import (
	"github.com/pkg/errors"

	"github.com/llehouerou/go-vorbis/internal/bits"
	"github.com/llehouerou/go-vorbis/internal/setup"
)

// Ident is the identification header.
type Ident = setup.Ident

// Comment is the comment header.
type Comment = setup.Comment

// Setup is the setup header.
type Setup = setup.Header

// Sections of a setup header.
type (
	Floor   = setup.Floor
	Floor0  = setup.Floor0
	Floor1  = setup.Floor1
	Residue = setup.Residue
	Mapping = setup.Mapping
	Mode    = setup.Mode
)

// ParseIdent parses an identification header packet.
func ParseIdent(packet []byte) (*Ident, error) {
	return setup.LoadIdent(bits.NewReader(packet))
}

// ParseComment parses a comment header packet.
func ParseComment(packet []byte) (*Comment, error) {
	return setup.LoadComment(bits.NewReader(packet))
}

// ParseSetup parses a setup header packet. The identification header of
// the same stream supplies the channel count.
func ParseSetup(packet []byte, ident *Ident) (*Setup, error) {
	return setup.LoadHeader(bits.NewReader(packet), ident)
}

// PackIdent serializes an identification header packet.
func PackIdent(h *Ident) ([]byte, error) {
	w := bits.NewBufferWriter()
	if err := h.Pack(w.Writer); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// PackComment serializes a comment header packet.
func PackComment(c *Comment) ([]byte, error) {
	w := bits.NewBufferWriter()
	if err := c.Pack(w.Writer); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// PackSetup serializes a setup header packet.
func PackSetup(h *Setup, ident *Ident) ([]byte, error) {
	if h == nil {
		return nil, errors.Wrap(bits.ErrInvalidArgument, "vorbis: no setup header")
	}
	w := bits.NewBufferWriter()
	if err := h.Pack(w.Writer, ident); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}
