package imgrotate

import "errors"

var (
	// ErrInvalidArgument is returned for empty images, non-positive dimensions,
	// non-finite angles, and unknown option names.
	ErrInvalidArgument = errors.New("imgrotate: invalid argument")

	// ErrIO is returned when a file cannot be opened, created, read or written.
	ErrIO = errors.New("imgrotate: i/o error")

	// ErrDecode is returned when file content is not a readable raster image.
	ErrDecode = errors.New("imgrotate: decode error")

	// ErrUnsupportedFormat is returned when an output extension has no encoder.
	ErrUnsupportedFormat = errors.New("imgrotate: unsupported format")
)
