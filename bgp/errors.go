package bgp

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrBadLength and ErrInvalid are the only two structural error kinds
// this package produces. A length field that disagrees with the bytes
// actually available wraps ErrBadLength; a reserved discriminant, a
// fixed-length field of the wrong size, or a broken invariant wraps
// ErrInvalid. Every returned error wraps exactly one of these with
// call-site context, so callers tell the kinds apart with IsBadLength /
// IsInvalid rather than matching message text.
var (
	ErrBadLength = errors.New("bgp: bad length")
	ErrInvalid   = errors.New("bgp: invalid")
)

func badLength(msg string) error {
	return errors.Wrap(ErrBadLength, msg)
}

func badLengthf(format string, args ...interface{}) error {
	return errors.Wrap(ErrBadLength, fmt.Sprintf(format, args...))
}

func invalid(msg string) error {
	return errors.Wrap(ErrInvalid, msg)
}

func invalidf(format string, args ...interface{}) error {
	return errors.Wrap(ErrInvalid, fmt.Sprintf(format, args...))
}

// IsBadLength reports whether err (or the error it wraps) signals a
// length mismatch between a declared field and the available bytes.
func IsBadLength(err error) bool {
	return errors.Cause(err) == ErrBadLength
}

// IsInvalid reports whether err (or the error it wraps) signals a
// disallowed discriminant, fixed-length mismatch, or broken invariant.
func IsInvalid(err error) bool {
	return errors.Cause(err) == ErrInvalid
}
