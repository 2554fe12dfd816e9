package pagination

import "errors"

// AllRows disables slicing: every matching row comes back in a single page.
const AllRows = -1

const (
	DefaultLimit = 12
	DefaultPage  = 1
)

var ErrInvalidLimit = errors.New("invalid_limit")

// Pagination is a validated offset/limit pair. The zero value is not valid;
// construct it with New.
type Pagination struct {
	Limit int
	Page  int
}

// New validates limit and page. AllRows means no slicing; any other
// non-positive limit, zero included, is rejected. Callers that treat an
// absent limit as the default pass DefaultLimit themselves.
// A non-positive page clamps to the first page.
func New(limit, page int) (Pagination, error) {
	if limit < 1 && limit != AllRows {
		return Pagination{}, ErrInvalidLimit
	}
	if page < 1 {
		page = DefaultPage
	}
	return Pagination{Limit: limit, Page: page}, nil
}

func (p Pagination) All() bool {
	return p.Limit == AllRows
}

func (p Pagination) Offset() int {
	if p.All() {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Page is the paginated response envelope.
type Page[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Limit      int   `json:"limit"`
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
}

// NewPage shapes the envelope from the pre-pagination total and the data slice.
func NewPage[T any](data []T, total int64, p Pagination) Page[T] {
	if data == nil {
		data = []T{}
	}
	if p.All() {
		return Page[T]{Data: data, Total: total, Limit: p.Limit, Page: 1, TotalPages: 1}
	}
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Page[T]{
		Data:       data,
		Total:      total,
		Limit:      p.Limit,
		Page:       p.Page,
		TotalPages: pages,
	}
}
