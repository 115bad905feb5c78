package api

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrBodyTooLarge   = errors.New("body_too_large")
)

// requestError is a client mistake tied to one request parameter.
type requestError struct {
	param string
	msg   string
	kind  error
}

func (e *requestError) Error() string {
	if e.param == "" {
		return e.msg
	}
	return e.param + ": " + e.msg
}

func (e *requestError) Unwrap() error {
	return e.kind
}

func invalidParam(param, format string, args ...any) error {
	return &requestError{param: param, msg: fmt.Sprintf(format, args...), kind: ErrInvalidRequest}
}

func bodyTooLarge(limit int64) error {
	return &requestError{msg: fmt.Sprintf("body exceeds %d bytes", limit), kind: ErrBodyTooLarge}
}

// errorParam returns the parameter a request error refers to, if any.
func errorParam(err error) string {
	var re *requestError
	if errors.As(err, &re) {
		return re.param
	}
	return ""
}
