package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/dripstore/catalog/internal/category/domain"
	"github.com/dripstore/catalog/pkg/db"
	"github.com/dripstore/catalog/pkg/db/pagination"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("category.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) Search(ctx context.Context, req domain.SearchRequest) (*pagination.Page[domain.Response], error) {
	pg, err := pagination.New(req.Limit, req.Page)
	if err != nil {
		return nil, err
	}

	filter := domain.SearchFilter{
		Columns:   domain.ParseFields(req.Fields),
		UseInMenu: req.UseInMenu,
	}

	items, total, err := s.repo.Search(ctx, s.db, filter, pg)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, toResponse(&item))
	}

	page := pagination.NewPage(resp, total, pg)
	return &page, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Response, error) {
	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	categorySlug := strings.TrimSpace(req.Slug)
	if categorySlug == "" {
		categorySlug = slug.Make(name)
	} else {
		categorySlug = slug.Make(categorySlug)
	}

	now := time.Now().UTC()
	c := &domain.Category{
		ID:        s.genID.Generate().Int64(),
		Name:      name,
		Slug:      categorySlug,
		UseInMenu: req.UseInMenu,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, s.db, c); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicateSlug
		}
		return nil, err
	}

	resp := toResponse(c)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, id int64, req domain.UpdateRequest) error {
	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.ErrInvalidName
		}
		item.Name = name
	}
	if req.Slug != nil {
		item.Slug = slug.Make(strings.TrimSpace(*req.Slug))
	}
	if req.UseInMenu != nil {
		item.UseInMenu = *req.UseInMenu
	}

	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, item); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.ErrDuplicateSlug
		}
		return err
	}
	return nil
}

// Delete removes the category and its product associations. Products stay
// untouched; only the join rows go.
func (s *Service) Delete(ctx context.Context, id int64) error {
	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.DeleteProductLinks(ctx, tx, id); err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, id)
	})
}

func toResponse(c *domain.Category) domain.Response {
	return domain.Response{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		UseInMenu: c.UseInMenu,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
