package domain

import (
	"context"
	"errors"
	"time"

	categorydomain "github.com/dripstore/catalog/internal/category/domain"
	"github.com/dripstore/catalog/pkg/db/pagination"
	"github.com/shopspring/decimal"
)

type Service interface {
	Search(ctx context.Context, req SearchRequest) (*pagination.Page[Response], error)
	Get(ctx context.Context, id int64) (*Response, error)
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Update(ctx context.Context, id int64, req UpdateRequest) error
	Delete(ctx context.Context, id int64) error
}

type SearchRequest struct {
	Limit  int
	Page   int
	Fields string
	Query  SearchQuery
}

// ImagePayload is one submitted image entry. Content carries the base64
// encoded binary; Type its mime type. On update an entry with an ID and no
// Deleted flag patches the row in place.
type ImagePayload struct {
	ID       int64  `json:"id"`
	Deleted  bool   `json:"deleted"`
	Type     string `json:"type"`
	Content  string `json:"content"`
	Position *int   `json:"position"`
}

// OptionPayload is one submitted option-group entry. On update, zero-valued
// fields leave the row untouched.
type OptionPayload struct {
	ID       int64    `json:"id"`
	Deleted  bool     `json:"deleted"`
	Title    string   `json:"title"`
	Type     string   `json:"type"`
	Values   []string `json:"values"`
	Position *int     `json:"position"`
}

type CreateRequest struct {
	Name              string           `json:"name"`
	Slug              string           `json:"slug"`
	Price             decimal.Decimal  `json:"price"`
	PriceWithDiscount *decimal.Decimal `json:"price_with_discount"`
	Stock             int              `json:"stock"`
	Description       string           `json:"description"`
	Enabled           bool             `json:"enabled"`
	CategoryIDs       []int64          `json:"category_ids"`
	Images            []ImagePayload   `json:"images"`
	Options           []OptionPayload  `json:"options"`
}

// UpdateRequest patches the aggregate. Nil scalar fields stay untouched.
// A nil CategoryIDs slice keeps the association set; a non-nil one replaces
// it wholesale.
type UpdateRequest struct {
	Name              *string          `json:"name"`
	Slug              *string          `json:"slug"`
	Price             *decimal.Decimal `json:"price"`
	PriceWithDiscount *decimal.Decimal `json:"price_with_discount"`
	Stock             *int             `json:"stock"`
	Description       *string          `json:"description"`
	Enabled           *bool            `json:"enabled"`
	CategoryIDs       []int64          `json:"category_ids"`
	Images            []ImagePayload   `json:"images"`
	Options           []OptionPayload  `json:"options"`
}

type ImageResponse struct {
	ID       int64  `json:"id"`
	Path     string `json:"path"`
	Position int    `json:"position"`
}

type OptionResponse struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Type     string   `json:"type"`
	Values   []string `json:"values"`
	Position int      `json:"position"`
}

type Response struct {
	ID                int64                     `json:"id"`
	Name              string                    `json:"name,omitempty"`
	Slug              string                    `json:"slug,omitempty"`
	Price             *decimal.Decimal          `json:"price,omitempty"`
	PriceWithDiscount *decimal.Decimal          `json:"price_with_discount,omitempty"`
	Stock             *int                      `json:"stock,omitempty"`
	Description       string                    `json:"description,omitempty"`
	Enabled           *bool                     `json:"enabled,omitempty"`
	CreatedAt         time.Time                 `json:"created_at,omitzero"`
	UpdatedAt         time.Time                 `json:"updated_at,omitzero"`
	Categories        []categorydomain.Response `json:"categories,omitempty"`
	Images            []ImageResponse           `json:"images,omitempty"`
	Options           []OptionResponse          `json:"options,omitempty"`
}

var (
	ErrNotFound            = errors.New("product_not_found")
	ErrInvalidName         = errors.New("invalid_name")
	ErrDuplicateSlug       = errors.New("duplicate_slug")
	ErrInvalidPrice        = errors.New("invalid_price")
	ErrInvalidDiscount     = errors.New("invalid_discount")
	ErrInvalidStock        = errors.New("invalid_stock")
	ErrInvalidOptionType   = errors.New("invalid_option_type")
	ErrInvalidOptionTitle  = errors.New("invalid_option_title")
	ErrInvalidImageContent = errors.New("invalid_image_content")
	ErrCategoryNotFound    = errors.New("category_not_found")
	ErrImageNotOwned       = errors.New("image_not_owned")
	ErrOptionNotOwned      = errors.New("option_not_owned")
)
