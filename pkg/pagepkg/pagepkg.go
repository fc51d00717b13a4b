// Package pagepkg provides pagination parameters parsing and metadata.
package pagepkg

import (
	"strconv"
	"strings"
)

// Pagination defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ParseInt parses s as a positive integer.
//
// It returns def when s is missing, unparsable or not positive.
func ParseInt(s string, def int32) int32 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil || n < 1 {
		return def
	}

	return int32(n)
}

// ParseLimit parses a page size with ParseInt, defaulting to DefaultLimit.
func ParseLimit(s string) int32 {
	return ParseInt(s, DefaultLimit)
}

// Offset returns the number of records preceding the page.
//
// It is computed in 64 bits so that any int32 page and limit give a non-negative offset.
func Offset(page, limit int32) int64 {
	return int64(page-1) * int64(limit)
}

// TotalPages returns ceil(total/limit). It is 0 when total is 0 or limit is not positive.
func TotalPages(total int64, limit int32) int64 {
	if total <= 0 || limit <= 0 {
		return 0
	}

	l := int64(limit)

	return (total + l - 1) / l
}

// Meta holds pagination metadata of a page.
type Meta struct {
	Total      int64 `json:"total"`
	Page       int32 `json:"page"`
	Limit      int32 `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

// NewMeta returns Meta for the given total count and page request.
func NewMeta(total int64, page, limit int32) Meta {
	return Meta{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: TotalPages(total, limit),
	}
}

// Page holds one page of items and its pagination metadata.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Pagination Meta `json:"pagination"`
}
