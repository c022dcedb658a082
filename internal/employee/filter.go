package employee

import (
	"github.com/goliatone/go-errors"
)

// DefaultPageSize bounds list responses when the caller does not ask for a
// specific size.
const DefaultPageSize = 10

// MaxPageSize caps how much a single page may return.
const MaxPageSize = 100

// Filter is the immutable filter specification for List. All present fields
// combine with logical AND; age bounds are inclusive.
type Filter struct {
	Class  *string
	MinAge *int
	MaxAge *int
}

// Validate rejects contradictory bounds instead of silently returning an
// empty result for a malformed request.
func (f Filter) Validate() error {
	if f.MinAge != nil && *f.MinAge < 0 {
		return errors.New("minAge must not be negative", errors.CategoryValidation).
			WithTextCode("INVALID_FILTER")
	}
	if f.MaxAge != nil && *f.MaxAge < 0 {
		return errors.New("maxAge must not be negative", errors.CategoryValidation).
			WithTextCode("INVALID_FILTER")
	}
	if f.MinAge != nil && f.MaxAge != nil && *f.MinAge > *f.MaxAge {
		return errors.New("minAge must not exceed maxAge", errors.CategoryValidation).
			WithTextCode("INVALID_FILTER")
	}
	return nil
}

// ListOptions carries pagination and ordering for List. Page is 1-indexed.
type ListOptions struct {
	Page     int
	PageSize int
	SortBy   string
}

// sortColumns whitelists the fields List may order by, mapped to their
// column names. Sorting is ascending only, with id as the stable tie-break.
var sortColumns = map[string]string{
	"name":       "name",
	"age":        "age",
	"class":      "class",
	"attendance": "attendance",
	"createdAt":  "created_at",
}

// DefaultListOptions returns the first page at the default size, store-native
// order.
func DefaultListOptions() ListOptions {
	return ListOptions{Page: 1, PageSize: DefaultPageSize}
}

// Normalize fills zero-valued pagination fields with defaults. A ListOptions
// literal with just SortBy set behaves like DefaultListOptions plus sorting.
func (o ListOptions) Normalize() ListOptions {
	if o.Page == 0 {
		o.Page = 1
	}
	if o.PageSize == 0 {
		o.PageSize = DefaultPageSize
	}
	return o
}

// Validate rejects out-of-range pagination and unknown sort fields.
func (o ListOptions) Validate() error {
	if o.Page < 1 {
		return errors.New("page must be >= 1", errors.CategoryValidation).
			WithTextCode("INVALID_PAGE")
	}
	if o.PageSize < 1 || o.PageSize > MaxPageSize {
		return errors.New("pageSize must be between 1 and 100", errors.CategoryValidation).
			WithTextCode("INVALID_PAGE_SIZE")
	}
	if o.SortBy != "" {
		if _, ok := sortColumns[o.SortBy]; !ok {
			return errors.New("unknown sort field", errors.CategoryValidation).
				WithTextCode("INVALID_SORT_FIELD")
		}
	}
	return nil
}

// offset computes the zero-indexed row offset for the page.
func (o ListOptions) offset() int {
	return (o.Page - 1) * o.PageSize
}
