package docstore

import (
	"fmt"
	"net/http"
	"strings"
)

// CredentialsError reports missing fields in the store credential bundle.
// It always carries the complete list of offending fields, not just the
// first, and is produced before any network call is attempted.
type CredentialsError struct {
	Missing []string
}

func (e *CredentialsError) Error() string {
	return fmt.Sprintf("store credentials incomplete: missing %s", strings.Join(e.Missing, ", "))
}

// StoreError wraps a store failure with an HTTP-style status code and a
// human-readable message alongside the underlying cause.
type StoreError struct {
	Code    int
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (code %d): %v", e.Message, e.Code, e.Err)
	}
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// WrapConnectivity wraps err as a connectivity failure (code 500).
func WrapConnectivity(msg string, err error) *StoreError {
	return &StoreError{Code: http.StatusInternalServerError, Message: msg, Err: err}
}
