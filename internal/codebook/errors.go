package codebook

import (
	"github.com/pkg/errors"

	"github.com/llehouerou/go-vorbis/internal/bits"
)

// Wire format errors. All of them match bits.ErrInvalidData with errors.Is.
var (
	// ErrSyncPattern indicates the 24-bit codebook sync pattern is missing.
	ErrSyncPattern = errors.WithMessage(bits.ErrInvalidData, "codebook: bad sync pattern")

	// ErrDimensions indicates ilog(dim)+ilog(entries) exceeds 24.
	ErrDimensions = errors.WithMessage(bits.ErrInvalidData, "codebook: dimensions out of range")

	// ErrLengthRun indicates an ordered length run that does not fit the
	// remaining entries or the current code length.
	ErrLengthRun = errors.WithMessage(bits.ErrInvalidData, "codebook: bad length run")

	// ErrCodeLength indicates a codeword length above 32 bits.
	ErrCodeLength = errors.WithMessage(bits.ErrInvalidData, "codebook: codeword length exceeds 32")

	// ErrMapType indicates a maptype other than 0, 1 or 2.
	ErrMapType = errors.WithMessage(bits.ErrInvalidData, "codebook: invalid maptype")

	// ErrQuantList indicates a missing or mis-sized quantized value list.
	ErrQuantList = errors.WithMessage(bits.ErrInvalidData, "codebook: bad quantized value list")
)

// Huffman tree errors.
var (
	// ErrOverpopulated indicates the length list assigns more codewords
	// than a binary tree can hold.
	ErrOverpopulated = errors.WithMessage(bits.ErrInvalidData, "codebook: overpopulated tree")

	// ErrUnderpopulated indicates the length list leaves tree leaves unassigned.
	ErrUnderpopulated = errors.WithMessage(bits.ErrInvalidData, "codebook: underpopulated tree")
)

// Runtime book errors.
var (
	// ErrEntryRange indicates an entry number outside 0..entries-1.
	ErrEntryRange = errors.WithMessage(bits.ErrInvalidData, "codebook: entry out of range")

	// ErrUnusedEntry indicates an attempt to encode an entry with no codeword.
	ErrUnusedEntry = errors.WithMessage(bits.ErrInvalidData, "codebook: entry has no codeword")

	// ErrBadCodeword indicates bits that match no codeword of the book.
	ErrBadCodeword = errors.WithMessage(bits.ErrInvalidData, "codebook: no codeword matches")

	// ErrEmptyBook indicates a decode from a book without used entries.
	ErrEmptyBook = errors.WithMessage(bits.ErrInvalidData, "codebook: book has no used entries")

	// ErrNoValues indicates a vector request against a maptype 0 book.
	ErrNoValues = errors.WithMessage(bits.ErrInvalidData, "codebook: book has no value mapping")

	// ErrWrongMode indicates an encode call on a decode book or vice versa.
	ErrWrongMode = errors.New("codebook: operation not supported in this book mode")
)

// Template errors.
var (
	// ErrTemplate indicates a preset template that does not describe a valid book.
	ErrTemplate = errors.WithMessage(bits.ErrInvalidData, "codebook: invalid template")
)
