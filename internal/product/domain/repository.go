package domain

import (
	"context"

	"github.com/dripstore/catalog/pkg/db/pagination"
	"gorm.io/gorm"
)

// Repository executes single statements against the handle it is given,
// which is either the root connection or an open transaction.
type Repository interface {
	Create(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Product, error)
	Search(ctx context.Context, db *gorm.DB, proj Projection, preds []Predicate, pg pagination.Pagination) ([]Product, int64, error)
	Update(ctx context.Context, db *gorm.DB, product *Product) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error

	CreateImage(ctx context.Context, db *gorm.DB, image *ProductImage) error
	UpdateImage(ctx context.Context, db *gorm.DB, image *ProductImage) error
	DeleteImage(ctx context.Context, db *gorm.DB, id int64) error
	DeleteImagesByProduct(ctx context.Context, db *gorm.DB, productID int64) error

	CreateOption(ctx context.Context, db *gorm.DB, option *ProductOption) error
	UpdateOption(ctx context.Context, db *gorm.DB, option *ProductOption) error
	DeleteOption(ctx context.Context, db *gorm.DB, id int64) error
	DeleteOptionsByProduct(ctx context.Context, db *gorm.DB, productID int64) error

	CountCategories(ctx context.Context, db *gorm.DB, categoryIDs []int64) (int64, error)
	AddCategories(ctx context.Context, db *gorm.DB, productID int64, categoryIDs []int64) error
	RemoveCategories(ctx context.Context, db *gorm.DB, productID int64, categoryIDs []int64) error
	ClearCategories(ctx context.Context, db *gorm.DB, productID int64) error
}
