// Package setup parses and packs the three Vorbis header packets. The
// setup header carries the codebooks and the floor, residue, mapping and
// mode sections that reference them by index.
package setup

import (
	"github.com/pkg/errors"

	"github.com/llehouerou/go-vorbis/internal/bits"
)

// Packet framing errors.
var (
	// ErrNotVorbis indicates a packet without the expected type byte and
	// "vorbis" signature.
	ErrNotVorbis = errors.WithMessage(bits.ErrInvalidData, "setup: not a vorbis header")

	// ErrVersion indicates an identification header for a version other than 0.
	ErrVersion = errors.WithMessage(bits.ErrInvalidData, "setup: unsupported vorbis version")

	// ErrFraming indicates a header whose final framing bit is not set.
	ErrFraming = errors.WithMessage(bits.ErrInvalidData, "setup: framing bit not set")
)

// Identification and comment header errors.
var (
	// ErrIdent indicates an identification header with an out of range field.
	ErrIdent = errors.WithMessage(bits.ErrInvalidData, "setup: bad identification header")

	// ErrComment indicates a comment header whose counts do not fit the packet.
	ErrComment = errors.WithMessage(bits.ErrInvalidData, "setup: bad comment header")
)

// Setup header section errors.
var (
	// ErrSectionCount indicates a section count the header cannot encode.
	ErrSectionCount = errors.WithMessage(bits.ErrInvalidData, "setup: section count out of range")

	// ErrTimeType indicates a nonzero time placeholder.
	ErrTimeType = errors.WithMessage(bits.ErrInvalidData, "setup: invalid time type")

	// ErrFloorType indicates a floor type other than 0 or 1.
	ErrFloorType = errors.WithMessage(bits.ErrInvalidData, "setup: invalid floor type")

	// ErrResidueType indicates a residue type other than 0, 1 or 2.
	ErrResidueType = errors.WithMessage(bits.ErrInvalidData, "setup: invalid residue type")

	// ErrMappingType indicates a mapping type other than 0.
	ErrMappingType = errors.WithMessage(bits.ErrInvalidData, "setup: invalid mapping type")

	// ErrBookIndex indicates a reference to a codebook that does not exist
	// or cannot serve the referencing section.
	ErrBookIndex = errors.WithMessage(bits.ErrInvalidData, "setup: bad codebook reference")

	// ErrFloor indicates a floor with an out of range field.
	ErrFloor = errors.WithMessage(bits.ErrInvalidData, "setup: bad floor")

	// ErrResidue indicates a residue with an out of range field.
	ErrResidue = errors.WithMessage(bits.ErrInvalidData, "setup: bad residue")

	// ErrMapping indicates a mapping with an out of range field.
	ErrMapping = errors.WithMessage(bits.ErrInvalidData, "setup: bad mapping")

	// ErrMode indicates a mode with an out of range field.
	ErrMode = errors.WithMessage(bits.ErrInvalidData, "setup: bad mode")
)
