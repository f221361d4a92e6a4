// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"fmt"
)

// ErrNotFound matches any NotFoundError via errors.Is.
var ErrNotFound = errors.New("not found")

// NotFoundError reports an absent form or survey.
type NotFoundError struct {
	Entity string // "Form", "Survey"
	ID     string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError reports a request that is missing or misusing fields.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ReadError wraps a persistence failure while reading.
type ReadError struct {
	Op  string
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Op, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError wraps a persistence failure while writing.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// SchemaError reports a stored form or survey that is malformed.
type SchemaError struct {
	Entity string
	ID     string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("malformed %s: %s", e.Entity, e.Reason)
	}
	return fmt.Sprintf("malformed %s %q: %s", e.Entity, e.ID, e.Reason)
}
