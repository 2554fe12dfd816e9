package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dripstore/catalog/pkg/db/pagination"
)

type Service interface {
	Search(ctx context.Context, req SearchRequest) (*pagination.Page[Response], error)
	Get(ctx context.Context, id int64) (*Response, error)
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Update(ctx context.Context, id int64, req UpdateRequest) error
	Delete(ctx context.Context, id int64) error
}

type SearchRequest struct {
	Limit     int
	Page      int
	Fields    string
	UseInMenu *bool
}

type CreateRequest struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	UseInMenu bool   `json:"use_in_menu"`
}

type UpdateRequest struct {
	Name      *string `json:"name"`
	Slug      *string `json:"slug"`
	UseInMenu *bool   `json:"use_in_menu"`
}

type Response struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name,omitempty"`
	Slug      string    `json:"slug,omitempty"`
	UseInMenu bool      `json:"use_in_menu"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

var (
	ErrNotFound      = errors.New("category_not_found")
	ErrInvalidName   = errors.New("invalid_name")
	ErrDuplicateSlug = errors.New("duplicate_slug")
)

// searchColumns is the projection whitelist for category search.
var searchColumns = map[string]bool{
	"id":          true,
	"name":        true,
	"slug":        true,
	"use_in_menu": true,
}

// ParseFields validates a comma-separated field list against the category
// column whitelist. Unknown names are silently dropped; an empty result
// means the full column set.
func ParseFields(fields string) []string {
	var cols []string
	hasID := false
	for _, f := range strings.Split(fields, ",") {
		f = strings.TrimSpace(f)
		if !searchColumns[f] {
			continue
		}
		if f == "id" {
			hasID = true
		}
		cols = append(cols, f)
	}
	if len(cols) > 0 && !hasID {
		cols = append([]string{"id"}, cols...)
	}
	return cols
}
