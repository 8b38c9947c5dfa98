// Package page defines the pagination contract for collection queries.
package page

import (
	"fmt"

	"github.com/agentdesk/agentdesk/internal/domain"
)

// Pagination bounds are fixed service constants, not per-request negotiable.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MinPageSize     = 1
	MaxPageSize     = 100
)

// Request describes one window of a filtered collection.
type Request struct {
	Page     int
	PageSize int
	Search   string
}

// Normalize fills absent (zero) values with the defaults. It never clamps:
// out-of-range values must be rejected by Validate, not silently adjusted.
func (r *Request) Normalize() {
	if r.Page == 0 {
		r.Page = DefaultPage
	}
	if r.PageSize == 0 {
		r.PageSize = DefaultPageSize
	}
}

// Validate rejects out-of-range page and page size values.
func (r *Request) Validate() error {
	if r.Page < 1 {
		return fmt.Errorf("page must be at least 1: %w", domain.ErrValidation)
	}
	if r.PageSize < MinPageSize || r.PageSize > MaxPageSize {
		return fmt.Errorf("page_size must be between %d and %d: %w", MinPageSize, MaxPageSize, domain.ErrValidation)
	}
	return nil
}

// Offset returns the number of records skipped before the window.
func (r *Request) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// Result is one page of items plus count metadata for the full filtered set.
type Result[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewResult builds a Result with TotalPages = ceil(total/pageSize).
// A nil items slice becomes an empty one so JSON renders [] instead of null.
func NewResult[T any](items []T, total, pageSize int) Result[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return Result[T]{Items: items, Total: total, TotalPages: totalPages}
}
