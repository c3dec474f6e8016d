// Package gpuerr holds the error kinds reported by the buffer, batch and renderer packages.
//
// Each structured error matches its sentinel with errors.Is, so callers can branch on the kind
// while still printing which slot, index or bound was involved.
package gpuerr

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrCapacityExhausted = errors.New("capacity exhausted")
	ErrResourceCreation  = errors.New("resource creation failure")
	ErrInvalidArgument   = errors.New("invalid argument")
)

type IndexOutOfRangeError struct {
	// What is the kind of index (e.g. "buffer slot", "texture unit")
	What  string
	Index int
	Bound int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("%s: %s %d is outside [0, %d)", ErrIndexOutOfRange, e.What, e.Index, e.Bound)
}

func (e *IndexOutOfRangeError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// CapacityExhaustedError is returned when an append does not fit. Sizes are in bytes.
type CapacityExhaustedError struct {
	Slot     int
	Size     int
	Added    int
	Capacity int
}

func (e *CapacityExhaustedError) Error() string {
	return fmt.Sprintf("%s: slot %d has %d of %d bytes used, cannot append %d bytes", ErrCapacityExhausted, e.Slot, e.Size, e.Capacity, e.Added)
}

func (e *CapacityExhaustedError) Is(target error) bool {
	return target == ErrCapacityExhausted
}

type ResourceCreationError struct {
	Resource string
	Err      error
}

func (e *ResourceCreationError) Error() string {

	if e.Err == nil {
		return fmt.Sprintf("%s: %s", ErrResourceCreation, e.Resource)
	}

	return fmt.Sprintf("%s: %s: %v", ErrResourceCreation, e.Resource, e.Err)
}

func (e *ResourceCreationError) Is(target error) bool {
	return target == ErrResourceCreation
}

func (e *ResourceCreationError) Unwrap() error {
	return e.Err
}

type InvalidArgumentError struct {
	Arg    string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidArgument, e.Arg, e.Reason)
}

func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// CheckIndex panics with an *IndexOutOfRangeError if index is not in [0, bound)
func CheckIndex(what string, index, bound int) {
	if index < 0 || index >= bound {
		panic(&IndexOutOfRangeError{What: what, Index: index, Bound: bound})
	}
}

// ResourceCreation wraps err (which may be nil) as a resource creation failure of the named resource
func ResourceCreation(resource string, err error) error {

	if err != nil {
		err = errors.WithStack(err)
	}

	return &ResourceCreationError{Resource: resource, Err: err}
}
