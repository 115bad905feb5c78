package transfer

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrTransport matches every *TransportError.
	ErrTransport = errors.New("transfer: transport failure")
	// ErrCancelled reports that the caller aborted the pipeline.
	ErrCancelled = errors.New("transfer: cancelled")
	// ErrBodyTooLarge reports a response exceeding the fetcher's limit.
	ErrBodyTooLarge = errors.New("transfer: response body too large")
)

// TransportError reports a failed retrieval: either a non-2xx response
// (StatusCode and Status set) or a network failure (Err set).
type TransportError struct {
	URL        string
	StatusCode int
	Status     string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Status)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// StageError records the pipeline state a failure happened in.
type StageError struct {
	Stage State
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("transfer: %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// FailedStage returns the state err was raised in, if it came from a Loader.
func FailedStage(err error) (State, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return StateFailed, false
}

// cancelled maps a context error to ErrCancelled while keeping the original
// matchable with errors.Is.
func cancelled(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %w", ErrCancelled, ctxErr)
	}
	return err
}
