package bits

import "errors"

// Error categories shared by every bitstream parser in the module.
var (
	// ErrUnexpectedEOF indicates a read past the end of the buffer.
	ErrUnexpectedEOF = errors.New("bits: unexpected end of data")

	// ErrInvalidArgument indicates a bit count outside 0..32.
	ErrInvalidArgument = errors.New("bits: invalid bit count")

	// ErrInvalidData is the category wrapped by every malformed-input error
	// raised by packages built on top of this one.
	ErrInvalidData = errors.New("invalid data")
)
