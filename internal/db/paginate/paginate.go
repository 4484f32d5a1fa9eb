// Package paginate runs limit/offset queries and reports the page metadata.
package paginate

import "gorm.io/gorm"

const (
	// DefaultPageSize is the default number of items per page.
	DefaultPageSize = 25
	// MaxPageSize caps the requested page size.
	MaxPageSize = 100
)

// Params is a requested page.
type Params struct {
	Page  int
	Limit int
}

// Normalize clamps page and limit into range.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}

	if p.Limit < 1 || p.Limit > MaxPageSize {
		p.Limit = DefaultPageSize
	}

	return p
}

// Offset returns the number of rows to skip.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Result is one page of items.
type Result[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

// Find counts the rows matched by query and loads the requested page of them.
func Find[T any](query *gorm.DB, p Params) (Result[T], error) {
	p = p.Normalize()
	query = query.Model(new(T))

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Result[T]{}, err
	}

	items := make([]T, 0)
	if err := query.Session(&gorm.Session{}).Limit(p.Limit).Offset(p.Offset()).Find(&items).Error; err != nil {
		return Result[T]{}, err
	}

	return Result[T]{
		Items:      items,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalItems: total,
		TotalPages: TotalPages(total, p.Limit),
	}, nil
}

// TotalPages returns the number of pages needed for total items, at least one.
func TotalPages(total int64, limit int) int {
	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		pages = 1
	}

	return pages
}
