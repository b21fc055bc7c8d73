package checkpoint

import "errors"

// Common errors returned when reading .grft files.
var (
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrChecksumMismatch   = errors.New("checksum mismatch: file may be corrupted")
	ErrHeaderTooLarge     = errors.New("header exceeds maximum size")
	ErrTooManyTensors     = errors.New("too many tensors in file")
	ErrNegativeOffset     = errors.New("negative offset or size")
	ErrOutOfBounds        = errors.New("tensor extends beyond data section")
	ErrOffsetOverlap      = errors.New("tensor offsets overlap")
)
