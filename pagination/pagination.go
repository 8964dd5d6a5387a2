package pagination

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultOffset is used when the request has no ?offset=
	DefaultOffset = 0
	// DefaultLimit is used when the request has no ?limit=
	DefaultLimit = 20
)

// Params are the offset/limit pair of a paginated request.
type Params struct {
	Offset int `form:"offset" binding:"min=0"`
	Limit  int `form:"limit" binding:"min=0"`
}

// Page is a paginated result.
type Page[T any] struct {
	Offset     int   `json:"offset"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	Items      []T   `json:"items"`
}

// Parse reads ?offset= and ?limit= from the query string, applying the
// defaults for missing values.
func Parse(c *gin.Context) (Params, error) {
	p := Params{Offset: DefaultOffset, Limit: DefaultLimit}
	if err := c.ShouldBindQuery(&p); err != nil {
		return Params{}, fmt.Errorf("invalid pagination parameters: %w", err)
	}
	return p, nil
}

// New builds a page from items already limited by the caller, such as the
// rows of a LIMIT/OFFSET query, and the total count of the unpaginated set.
func New[T any](items []T, p Params, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Offset:     p.Offset,
		Limit:      p.Limit,
		TotalItems: total,
		Items:      items,
	}
}

// Slice paginates an in-memory slice.
func Slice[T any](items []T, p Params) Page[T] {
	total := len(items)

	start := p.Offset
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := start + p.Limit
	if p.Limit < 0 || end > total {
		end = total
	}

	return New(items[start:end], p, int64(total))
}
