package vorbis

import (
	"github.com/pkg/errors"

	"github.com/llehouerou/go-vorbis/internal/bits"
	"github.com/llehouerou/go-vorbis/internal/codebook"
	"github.com/llehouerou/go-vorbis/internal/setup"
)

// Error is a Vorbis return code.
// Ported from: include/vorbis/codec.h in libvorbis
type Error int

// Return codes from libvorbis.
const (
	OK           Error = 0
	ErrFalse     Error = -1
	ErrEOF       Error = -2
	ErrHole      Error = -3
	ErrRead      Error = -128
	ErrFault     Error = -129
	ErrImpl      Error = -130
	ErrInval     Error = -131
	ErrNotVorbis Error = -132
	ErrBadHeader Error = -133
	ErrVersion   Error = -134
	ErrNotAudio  Error = -135
	ErrBadPacket Error = -136
	ErrBadLink   Error = -137
	ErrNoSeek    Error = -138
)

var errMessages = map[Error]string{
	OK:           "No error",
	ErrFalse:     "Not true",
	ErrEOF:       "End of data",
	ErrHole:      "Hole in data",
	ErrRead:      "Read error",
	ErrFault:     "Internal fault",
	ErrImpl:      "Not implemented",
	ErrInval:     "Invalid argument",
	ErrNotVorbis: "Not Vorbis data",
	ErrBadHeader: "Invalid Vorbis header",
	ErrVersion:   "Vorbis version mismatch",
	ErrNotAudio:  "Packet is not audio",
	ErrBadPacket: "Invalid packet",
	ErrBadLink:   "Invalid stream section",
	ErrNoSeek:    "Stream is not seekable",
}

// Error implements the error interface.
func (e Error) Error() string {
	if msg, ok := errMessages[e]; ok {
		return msg
	}
	return "unknown error"
}

// Code classifies an error returned by this package.
func Code(err error) Error {
	var code Error
	switch {
	case err == nil:
		return OK
	case errors.As(err, &code):
		return code
	case errors.Is(err, setup.ErrNotVorbis):
		return ErrNotVorbis
	case errors.Is(err, setup.ErrVersion):
		return ErrVersion
	case errors.Is(err, codebook.ErrBadCodeword), errors.Is(err, codebook.ErrEmptyBook):
		return ErrBadPacket
	case errors.Is(err, bits.ErrUnexpectedEOF):
		return ErrEOF
	case errors.Is(err, bits.ErrInvalidArgument),
		errors.Is(err, codebook.ErrWrongMode),
		errors.Is(err, codebook.ErrEntryRange),
		errors.Is(err, codebook.ErrUnusedEntry),
		errors.Is(err, codebook.ErrNoValues):
		return ErrInval
	case errors.Is(err, bits.ErrInvalidData):
		return ErrBadHeader
	}
	return ErrFault
}
