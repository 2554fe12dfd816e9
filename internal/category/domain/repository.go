package domain

import (
	"context"

	"github.com/dripstore/catalog/pkg/db/pagination"
	"gorm.io/gorm"
)

type SearchFilter struct {
	Columns   []string
	UseInMenu *bool
}

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, category *Category) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Category, error)
	Search(ctx context.Context, db *gorm.DB, filter SearchFilter, pg pagination.Pagination) ([]Category, int64, error)
	Update(ctx context.Context, db *gorm.DB, category *Category) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
	DeleteProductLinks(ctx context.Context, db *gorm.DB, id int64) error
}
