package state

import (
	"errors"
	"fmt"
)

var (
	// ErrFetchFailed marks a refresh where the list or stats request failed.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrMutationFailed marks a create, update or delete the service rejected.
	ErrMutationFailed = errors.New("mutation failed")
)

// Op names a mutation.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// FetchError is returned when a refresh fails. The store keeps its previous
// data.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("refresh: %v", e.Err)
}

func (e *FetchError) Unwrap() []error {
	return []error{ErrFetchFailed, e.Err}
}

// MutationError is returned when the service rejects a mutation. The store is
// not touched and no refresh is attempted.
type MutationError struct {
	Op  Op
	Err error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("%s product: %v", e.Op, e.Err)
}

func (e *MutationError) Unwrap() []error {
	return []error{ErrMutationFailed, e.Err}
}
