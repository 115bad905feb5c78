package sac

import (
	"errors"
	"fmt"
)

// Decode errors. Each indicates a malformed or incompatible payload.
var (
	ErrTooSmall              = errors.New("sac: buffer smaller than header")
	ErrBadMagic              = errors.New("sac: bad magic")
	ErrUnsupportedDataType   = errors.New("sac: unsupported data type")
	ErrUnsupportedArrayCount = errors.New("sac: unsupported array count")
	ErrLengthMismatch        = errors.New("sac: array length mismatch")
	ErrDimensionMismatch     = errors.New("sac: width*height does not match array length")
	ErrTruncated             = errors.New("sac: truncated array data")
)

// Render errors. These depend on RenderOptions, not on the wire bytes.
var (
	ErrMissingDimensions = errors.New("sac: missing dimensions")
	ErrSizeMismatch      = errors.New("sac: array length does not match width*height")
	ErrUnknownColorMode  = errors.New("sac: unknown color mode")
)

// DecodeError reports a rejected buffer along with the offending field.
type DecodeError struct {
	Field string
	Value any
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v (%s=%v)", e.Err, e.Field, e.Value)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func decodeErr(sentinel error, field string, value any) error {
	return &DecodeError{Field: field, Value: value, Err: sentinel}
}

// RenderError reports a render call rejected because of its configuration.
type RenderError struct {
	Detail string
	Err    error
}

func (e *RenderError) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + e.Detail
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

func renderErr(sentinel error, format string, args ...any) error {
	return &RenderError{Detail: fmt.Sprintf(format, args...), Err: sentinel}
}

// IsDecodeError reports whether err stems from a malformed payload.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// IsRenderError reports whether err stems from a render configuration problem.
func IsRenderError(err error) bool {
	var re *RenderError
	return errors.As(err, &re)
}
