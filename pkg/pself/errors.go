package pself

import "errors"

var (
	ErrBadMagic            = errors.New("invalid PSELF magic")
	ErrTruncated           = errors.New("truncated PSELF data")
	ErrBadSectionType      = errors.New("invalid section type")
	ErrInvalidName         = errors.New("invalid UTF-8 in section name")
	ErrNameTooLong         = errors.New("section name too long")
	ErrOutOfRange          = errors.New("section data out of range")
	ErrNoCompatibleSection = errors.New("no compatible section found for this OS")
)
