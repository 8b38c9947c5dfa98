// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested record does not exist for the caller.
// A row owned by another user produces the same error as a missing row, so
// callers cannot probe for the existence of foreign records.
var ErrNotFound = errors.New("not found")

// ErrValidation indicates malformed or missing required input fields.
var ErrValidation = errors.New("validation failed")
