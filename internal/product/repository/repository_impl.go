package repository

import (
	"context"
	"errors"

	"github.com/dripstore/catalog/internal/product/domain"
	"github.com/dripstore/catalog/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Omit("Images", "Options", "Categories").Create(product).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Product, error) {
	var p domain.Product
	err := db.WithContext(ctx).
		Preload("Images", orderByPosition).
		Preload("Options", orderByPosition).
		Preload("Categories").
		First(&p, "products.id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repo) Search(ctx context.Context, db *gorm.DB, proj domain.Projection, preds []domain.Predicate, pg pagination.Pagination) ([]domain.Product, int64, error) {
	stmt := db.WithContext(ctx).Model(&domain.Product{})
	for _, pred := range preds {
		stmt = stmt.Where(pred.Expr, pred.Args...)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if len(proj.Columns) > 0 {
		stmt = stmt.Select(proj.Columns)
	}
	if proj.WithImages {
		stmt = stmt.Preload("Images", orderByPosition)
	}
	if proj.WithOptions {
		stmt = stmt.Preload("Options", orderByPosition)
	}
	if proj.WithCategories {
		stmt = stmt.Preload("Categories")
	}
	if !pg.All() {
		stmt = stmt.Offset(pg.Offset()).Limit(pg.Limit)
	}

	var items []domain.Product
	if err := stmt.Order("products.id").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Exec(
		`UPDATE products
		 SET name = ?, slug = ?, price = ?, price_with_discount = ?, stock = ?, description = ?, enabled = ?, updated_at = ?
		 WHERE id = ?`,
		product.Name,
		product.Slug,
		product.Price,
		product.PriceWithDiscount,
		product.Stock,
		product.Description,
		product.Enabled,
		product.UpdatedAt,
		product.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Exec(`DELETE FROM products WHERE id = ?`, id).Error
}

func (r *repo) CreateImage(ctx context.Context, db *gorm.DB, image *domain.ProductImage) error {
	return db.WithContext(ctx).Create(image).Error
}

func (r *repo) UpdateImage(ctx context.Context, db *gorm.DB, image *domain.ProductImage) error {
	return db.WithContext(ctx).Exec(
		`UPDATE product_images SET path = ?, position = ? WHERE id = ?`,
		image.Path,
		image.Position,
		image.ID,
	).Error
}

func (r *repo) DeleteImage(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Exec(`DELETE FROM product_images WHERE id = ?`, id).Error
}

func (r *repo) DeleteImagesByProduct(ctx context.Context, db *gorm.DB, productID int64) error {
	return db.WithContext(ctx).Exec(`DELETE FROM product_images WHERE product_id = ?`, productID).Error
}

func (r *repo) CreateOption(ctx context.Context, db *gorm.DB, option *domain.ProductOption) error {
	return db.WithContext(ctx).Create(option).Error
}

func (r *repo) UpdateOption(ctx context.Context, db *gorm.DB, option *domain.ProductOption) error {
	return db.WithContext(ctx).Exec(
		`UPDATE product_options SET title = ?, type = ?, "values" = ?, position = ? WHERE id = ?`,
		option.Title,
		option.Type,
		option.Values,
		option.Position,
		option.ID,
	).Error
}

func (r *repo) DeleteOption(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Exec(`DELETE FROM product_options WHERE id = ?`, id).Error
}

func (r *repo) DeleteOptionsByProduct(ctx context.Context, db *gorm.DB, productID int64) error {
	return db.WithContext(ctx).Exec(`DELETE FROM product_options WHERE product_id = ?`, productID).Error
}

func (r *repo) CountCategories(ctx context.Context, db *gorm.DB, categoryIDs []int64) (int64, error) {
	if len(categoryIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := db.WithContext(ctx).
		Table("categories").
		Where("id IN ?", categoryIDs).
		Count(&count).Error
	return count, err
}

func (r *repo) AddCategories(ctx context.Context, db *gorm.DB, productID int64, categoryIDs []int64) error {
	for _, categoryID := range categoryIDs {
		err := db.WithContext(ctx).Exec(
			`INSERT INTO product_categories (product_id, category_id) VALUES (?, ?)`,
			productID,
			categoryID,
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) RemoveCategories(ctx context.Context, db *gorm.DB, productID int64, categoryIDs []int64) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	return db.WithContext(ctx).Exec(
		`DELETE FROM product_categories WHERE product_id = ? AND category_id IN ?`,
		productID,
		categoryIDs,
	).Error
}

func (r *repo) ClearCategories(ctx context.Context, db *gorm.DB, productID int64) error {
	return db.WithContext(ctx).Exec(`DELETE FROM product_categories WHERE product_id = ?`, productID).Error
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
