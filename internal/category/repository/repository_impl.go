package repository

import (
	"context"
	"errors"

	"github.com/dripstore/catalog/internal/category/domain"
	"github.com/dripstore/catalog/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, category *domain.Category) error {
	return db.WithContext(ctx).Create(category).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Category, error) {
	var c domain.Category
	err := db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repo) Search(ctx context.Context, db *gorm.DB, filter domain.SearchFilter, pg pagination.Pagination) ([]domain.Category, int64, error) {
	stmt := db.WithContext(ctx).Model(&domain.Category{})
	if filter.UseInMenu != nil {
		stmt = stmt.Where("use_in_menu = ?", *filter.UseInMenu)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if len(filter.Columns) > 0 {
		stmt = stmt.Select(filter.Columns)
	}
	if !pg.All() {
		stmt = stmt.Offset(pg.Offset()).Limit(pg.Limit)
	}

	var items []domain.Category
	if err := stmt.Order("id").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, category *domain.Category) error {
	return db.WithContext(ctx).Exec(
		`UPDATE categories SET name = ?, slug = ?, use_in_menu = ?, updated_at = ? WHERE id = ?`,
		category.Name,
		category.Slug,
		category.UseInMenu,
		category.UpdatedAt,
		category.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Exec(`DELETE FROM categories WHERE id = ?`, id).Error
}

func (r *repo) DeleteProductLinks(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Exec(`DELETE FROM product_categories WHERE category_id = ?`, id).Error
}
