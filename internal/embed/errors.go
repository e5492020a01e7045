package embed

import (
	"errors"
	"fmt"
)

// ErrModelUnavailable reports that a model-backed strategy cannot be built,
// e.g. missing model files or API key. Resolve recovers from it by
// selecting the synthetic encoder.
var ErrModelUnavailable = errors.New("embedding model unavailable")

// ErrBackend wraps a failure from an embedding backend.
type ErrBackend struct {
	Backend string
	// Transient is true for rate limits and server-side failures.
	Transient bool
	Err       error
}

func (e *ErrBackend) Error() string {
	return fmt.Sprintf("%s embedding backend: %v", e.Backend, e.Err)
}

func (e *ErrBackend) Unwrap() error { return e.Err }

// ErrBatchMismatch indicates a backend returned a different number of
// vectors than texts it was given.
type ErrBatchMismatch struct {
	Want, Got int
}

func (e *ErrBatchMismatch) Error() string {
	return fmt.Sprintf("embedding batch mismatch: sent %d texts, got %d vectors", e.Want, e.Got)
}
