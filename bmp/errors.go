package bmp

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrBadLength and ErrInvalid mirror the two structural error kinds of
// package bgp, for the same reason: a declared length disagreeing with
// the available bytes wraps ErrBadLength, everything else structurally
// wrong (bad version, reserved discriminant, failed UTF-8 validation)
// wraps ErrInvalid.
var (
	ErrBadLength = errors.New("bmp: bad length")
	ErrInvalid   = errors.New("bmp: invalid")
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
// disallowed discriminant or broken invariant.
func IsInvalid(err error) bool {
	return errors.Cause(err) == ErrInvalid
}
