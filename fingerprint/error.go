package fingerprint

import "fmt"

// ErrorKind identifies the category of a fingerprint decode failure.
type ErrorKind int

const (
	// ErrInvalidSize means the input was shorter than a valid
	// fingerprint can be, either at the header or after the struct_len
	// field has been read.
	ErrInvalidSize ErrorKind = iota

	// ErrInvalidMagic means the first byte wasn't the fingerprint magic
	// byte.
	ErrInvalidMagic

	// ErrUnsupportedVersion means the version byte didn't match a
	// version this package knows how to decode. Error.Version holds the
	// offending value.
	ErrUnsupportedVersion
)

// Error reports why Decode failed. It implements error, and Kind can be
// compared directly or matched with errors.As against a *Error.
type Error struct {
	Kind ErrorKind

	// Version is set only when Kind is ErrUnsupportedVersion.
	Version uint8
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrInvalidSize:
		return "fingerprint: invalid size"
	case ErrInvalidMagic:
		return "fingerprint: invalid magic byte"
	case ErrUnsupportedVersion:
		return fmt.Sprintf("fingerprint: unsupported version: %d", e.Version)
	default:
		return "fingerprint: unknown error"
	}
}

// Is reports whether target is an *Error with the same Kind, letting
// callers write errors.Is(err, &fingerprint.Error{Kind: fingerprint.ErrInvalidMagic}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}
