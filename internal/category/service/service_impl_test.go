package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/dripstore/catalog/internal/category/domain"
	"github.com/dripstore/catalog/internal/category/repository"
	productdomain "github.com/dripstore/catalog/internal/product/domain"
	"github.com/dripstore/catalog/pkg/db/pagination"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCategoryService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&domain.Category{},
		&productdomain.Product{},
		&productdomain.ProductImage{},
		&productdomain.ProductOption{},
	)
	require.NoError(t, err)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, db
}

func TestCategoryCreateAndGet(t *testing.T) {
	svc, _ := setupCategoryService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateRequest{Name: "Running Shoes", UseInMenu: true})
	require.NoError(t, err)
	require.Equal(t, "running-shoes", created.Slug)
	require.True(t, created.UseInMenu)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Name, got.Name)

	_, err = svc.Get(ctx, 404)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryCreateValidation(t *testing.T) {
	svc, _ := setupCategoryService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRequest{Name: "   "})
	require.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(ctx, domain.CreateRequest{Name: "Shoes"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateRequest{Name: "Other", Slug: "shoes"})
	require.ErrorIs(t, err, domain.ErrDuplicateSlug)
}

func TestCategoryUpdatePartial(t *testing.T) {
	svc, _ := setupCategoryService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateRequest{Name: "Shoes", UseInMenu: true})
	require.NoError(t, err)

	name := "Footwear"
	err = svc.Update(ctx, created.ID, domain.UpdateRequest{Name: &name})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Footwear", got.Name)
	require.Equal(t, "shoes", got.Slug)
	require.True(t, got.UseInMenu)

	require.ErrorIs(t, svc.Update(ctx, 404, domain.UpdateRequest{Name: &name}), domain.ErrNotFound)
}

func TestCategoryDeletePreservesProducts(t *testing.T) {
	svc, db := setupCategoryService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateRequest{Name: "Shoes"})
	require.NoError(t, err)

	p := productdomain.Product{ID: 1001, Name: "Air Runner", Slug: "air-runner"}
	require.NoError(t, db.Omit("Images", "Options", "Categories").Create(&p).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO product_categories (product_id, category_id) VALUES (?, ?)`,
		p.ID, created.ID,
	).Error)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	var joins int64
	require.NoError(t, db.Table("product_categories").Count(&joins).Error)
	require.Equal(t, int64(0), joins)

	var products int64
	require.NoError(t, db.Table("products").Count(&products).Error)
	require.Equal(t, int64(1), products)

	require.ErrorIs(t, svc.Delete(ctx, created.ID), domain.ErrNotFound)
}

func TestCategorySearch(t *testing.T) {
	svc, _ := setupCategoryService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, domain.CreateRequest{
			Name:      fmt.Sprintf("Category %d", i),
			UseInMenu: i%2 == 0,
		})
		require.NoError(t, err)
	}

	page, err := svc.Search(ctx, domain.SearchRequest{Limit: pagination.DefaultLimit})
	require.NoError(t, err)
	require.Equal(t, int64(3), page.Total)
	require.Len(t, page.Data, 3)

	inMenu := true
	page, err = svc.Search(ctx, domain.SearchRequest{Limit: pagination.DefaultLimit, UseInMenu: &inMenu})
	require.NoError(t, err)
	require.Equal(t, int64(2), page.Total)

	page, err = svc.Search(ctx, domain.SearchRequest{Limit: 2, Page: 2})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	require.Equal(t, 2, page.TotalPages)

	page, err = svc.Search(ctx, domain.SearchRequest{Limit: pagination.DefaultLimit, Fields: "name"})
	require.NoError(t, err)
	require.NotZero(t, page.Data[0].ID)
	require.NotEmpty(t, page.Data[0].Name)
	require.Empty(t, page.Data[0].Slug)

	// A zero limit is rejected, only -1 means all rows.
	_, err = svc.Search(ctx, domain.SearchRequest{Limit: 0})
	require.ErrorIs(t, err, pagination.ErrInvalidLimit)
}
