package service

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	categorydomain "github.com/dripstore/catalog/internal/category/domain"
	"github.com/dripstore/catalog/internal/media"
	"github.com/dripstore/catalog/internal/product/domain"
	"github.com/dripstore/catalog/pkg/db"
	"github.com/dripstore/catalog/pkg/db/pagination"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
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
	Media media.Store
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
	media media.Store
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("product.service"),
		repo:  p.Repo,
		genID: p.GenID,
		media: p.Media,
	}
}

func (s *Service) Search(ctx context.Context, req domain.SearchRequest) (*pagination.Page[domain.Response], error) {
	pg, err := pagination.New(req.Limit, req.Page)
	if err != nil {
		return nil, err
	}

	preds, err := req.Query.Predicates()
	if err != nil {
		return nil, err
	}

	proj := domain.ParseProjection(req.Fields)

	items, total, err := s.repo.Search(ctx, s.db, proj, preds, pg)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, toResponse(&items[i], proj))
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
	resp := toResponse(item, domain.DefaultProjection())
	return &resp, nil
}

// Create persists the product plus its images, option groups and category
// associations as one transaction. Nothing of the aggregate survives a
// failure of any single step.
func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.Price.IsNegative() {
		return nil, domain.ErrInvalidPrice
	}
	if err := validateDiscount(req.PriceWithDiscount, req.Price); err != nil {
		return nil, err
	}
	if req.Stock < 0 {
		return nil, domain.ErrInvalidStock
	}

	productSlug := normalizeSlug(req.Slug, name)
	if productSlug == "" {
		return nil, domain.ErrInvalidName
	}

	options, err := buildOptions(req.Options)
	if err != nil {
		return nil, err
	}

	// Decode every image up front so malformed payloads fail before the
	// transaction opens.
	contents, err := decodeImages(req.Images)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &domain.Product{
		ID:                s.genID.Generate().Int64(),
		Name:              name,
		Slug:              productSlug,
		Price:             req.Price,
		PriceWithDiscount: req.PriceWithDiscount,
		Stock:             req.Stock,
		Description:       strings.TrimSpace(req.Description),
		Enabled:           req.Enabled,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	var savedPaths []string
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, p); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.ErrDuplicateSlug
			}
			return err
		}

		for i, img := range req.Images {
			path, err := s.media.Save(ctx, img.Type, contents[i])
			if err != nil {
				return err
			}
			savedPaths = append(savedPaths, path)
			row := &domain.ProductImage{
				ID:        s.genID.Generate().Int64(),
				ProductID: p.ID,
				Path:      path,
				Position:  positionOr(img.Position, i),
			}
			if err := s.repo.CreateImage(ctx, tx, row); err != nil {
				return err
			}
		}

		for i, opt := range options {
			opt.ID = s.genID.Generate().Int64()
			opt.ProductID = p.ID
			opt.Position = positionOr(req.Options[i].Position, i)
			if err := s.repo.CreateOption(ctx, tx, &opt); err != nil {
				return err
			}
		}

		return s.replaceCategoryLinks(ctx, tx, p.ID, nil, req.CategoryIDs)
	})
	if txErr != nil {
		s.removeFiles(ctx, savedPaths)
		return nil, txErr
	}

	return s.Get(ctx, p.ID)
}

// Update reconciles the aggregate against the submitted payload. Children are
// classified as create/update/delete and ownership is checked before any row
// is touched; the whole reconciliation runs in one transaction.
func (s *Service) Update(ctx context.Context, id int64, req domain.UpdateRequest) error {
	existing, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}

	if err := applyScalars(existing, req); err != nil {
		return err
	}

	imagesByID := make(map[int64]*domain.ProductImage, len(existing.Images))
	for i := range existing.Images {
		imagesByID[existing.Images[i].ID] = &existing.Images[i]
	}
	optionsByID := make(map[int64]*domain.ProductOption, len(existing.Options))
	for i := range existing.Options {
		optionsByID[existing.Options[i].ID] = &existing.Options[i]
	}

	// Ownership gate: a child id from another product rejects the whole
	// payload before anything is written.
	for _, img := range req.Images {
		if img.ID != 0 {
			if _, ok := imagesByID[img.ID]; !ok {
				return domain.ErrImageNotOwned
			}
		}
	}
	for _, opt := range req.Options {
		if opt.ID != 0 {
			if _, ok := optionsByID[opt.ID]; !ok {
				return domain.ErrOptionNotOwned
			}
		}
	}

	contents, err := decodeImages(req.Images)
	if err != nil {
		return err
	}

	existing.UpdatedAt = time.Now().UTC()

	var savedPaths, stalePaths []string
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Update(ctx, tx, existing); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.ErrDuplicateSlug
			}
			return err
		}

		for i, img := range req.Images {
			switch domain.Classify(img.ID, img.Deleted) {
			case domain.ChangeCreate:
				if img.Content == "" {
					return domain.ErrInvalidImageContent
				}
				path, err := s.media.Save(ctx, img.Type, contents[i])
				if err != nil {
					return err
				}
				savedPaths = append(savedPaths, path)
				row := &domain.ProductImage{
					ID:        s.genID.Generate().Int64(),
					ProductID: existing.ID,
					Path:      path,
					Position:  positionOr(img.Position, len(existing.Images)+i),
				}
				if err := s.repo.CreateImage(ctx, tx, row); err != nil {
					return err
				}
			case domain.ChangeDelete:
				row := imagesByID[img.ID]
				if err := s.repo.DeleteImage(ctx, tx, img.ID); err != nil {
					return err
				}
				stalePaths = append(stalePaths, row.Path)
			case domain.ChangeUpdate:
				row := imagesByID[img.ID]
				if img.Content != "" {
					path, err := s.media.Save(ctx, img.Type, contents[i])
					if err != nil {
						return err
					}
					savedPaths = append(savedPaths, path)
					stalePaths = append(stalePaths, row.Path)
					row.Path = path
				}
				if img.Position != nil {
					row.Position = *img.Position
				}
				if err := s.repo.UpdateImage(ctx, tx, row); err != nil {
					return err
				}
			}
		}

		for _, opt := range req.Options {
			switch domain.Classify(opt.ID, opt.Deleted) {
			case domain.ChangeCreate:
				row, err := buildOption(opt)
				if err != nil {
					return err
				}
				row.ID = s.genID.Generate().Int64()
				row.ProductID = existing.ID
				if opt.Position != nil {
					row.Position = *opt.Position
				} else {
					row.Position = len(existing.Options)
				}
				if err := s.repo.CreateOption(ctx, tx, &row); err != nil {
					return err
				}
			case domain.ChangeDelete:
				if err := s.repo.DeleteOption(ctx, tx, opt.ID); err != nil {
					return err
				}
			case domain.ChangeUpdate:
				row := optionsByID[opt.ID]
				if title := strings.TrimSpace(opt.Title); title != "" {
					row.Title = title
				}
				if opt.Type != "" {
					if !domain.ValidOptionType(opt.Type) {
						return domain.ErrInvalidOptionType
					}
					row.Type = opt.Type
				}
				if opt.Values != nil {
					row.Values = domain.JoinValues(opt.Values)
				}
				if opt.Position != nil {
					row.Position = *opt.Position
				}
				if err := s.repo.UpdateOption(ctx, tx, row); err != nil {
					return err
				}
			}
		}

		if req.CategoryIDs != nil {
			current := make([]int64, 0, len(existing.Categories))
			for _, c := range existing.Categories {
				current = append(current, c.ID)
			}
			return s.replaceCategoryLinks(ctx, tx, existing.ID, current, req.CategoryIDs)
		}
		return nil
	})
	if txErr != nil {
		s.removeFiles(ctx, savedPaths)
		return txErr
	}

	// Stored content of replaced or deleted images goes only after commit.
	s.removeFiles(ctx, stalePaths)
	return nil
}

// Delete removes the product and everything it owns in one transaction.
func (s *Service) Delete(ctx context.Context, id int64) error {
	existing, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.DeleteImagesByProduct(ctx, tx, id); err != nil {
			return err
		}
		if err := s.repo.DeleteOptionsByProduct(ctx, tx, id); err != nil {
			return err
		}
		if err := s.repo.ClearCategories(ctx, tx, id); err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, id)
	})
	if txErr != nil {
		return txErr
	}

	paths := make([]string, 0, len(existing.Images))
	for _, img := range existing.Images {
		paths = append(paths, img.Path)
	}
	s.removeFiles(ctx, paths)
	return nil
}

// replaceCategoryLinks diffs current against desired and applies the
// add/remove sets. Desired ids must all exist.
func (s *Service) replaceCategoryLinks(ctx context.Context, tx *gorm.DB, productID int64, current, desired []int64) error {
	desired = dedupe(desired)
	if len(desired) > 0 {
		count, err := s.repo.CountCategories(ctx, tx, desired)
		if err != nil {
			return err
		}
		if count != int64(len(desired)) {
			return domain.ErrCategoryNotFound
		}
	}

	currentSet := make(map[int64]bool, len(current))
	for _, id := range current {
		currentSet[id] = true
	}
	desiredSet := make(map[int64]bool, len(desired))
	for _, id := range desired {
		desiredSet[id] = true
	}

	var add, remove []int64
	for _, id := range desired {
		if !currentSet[id] {
			add = append(add, id)
		}
	}
	for _, id := range current {
		if !desiredSet[id] {
			remove = append(remove, id)
		}
	}

	if err := s.repo.RemoveCategories(ctx, tx, productID, remove); err != nil {
		return err
	}
	return s.repo.AddCategories(ctx, tx, productID, add)
}

func (s *Service) removeFiles(ctx context.Context, paths []string) {
	for _, path := range paths {
		if err := s.media.Remove(ctx, path); err != nil {
			s.log.Warn("remove stored image", zap.String("path", path), zap.Error(err))
		}
	}
}

func applyScalars(p *domain.Product, req domain.UpdateRequest) error {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.ErrInvalidName
		}
		p.Name = name
	}
	if req.Slug != nil {
		p.Slug = normalizeSlug(*req.Slug, p.Name)
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return domain.ErrInvalidPrice
		}
		p.Price = *req.Price
	}
	if req.PriceWithDiscount != nil {
		p.PriceWithDiscount = req.PriceWithDiscount
	}
	if err := validateDiscount(p.PriceWithDiscount, p.Price); err != nil {
		return err
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return domain.ErrInvalidStock
		}
		p.Stock = *req.Stock
	}
	if req.Description != nil {
		p.Description = strings.TrimSpace(*req.Description)
	}
	if req.Enabled != nil {
		p.Enabled = *req.Enabled
	}
	return nil
}

func validateDiscount(discount *decimal.Decimal, price decimal.Decimal) error {
	if discount == nil {
		return nil
	}
	if discount.IsNegative() || discount.GreaterThan(price) {
		return domain.ErrInvalidDiscount
	}
	return nil
}

func normalizeSlug(raw, name string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = name
	}
	return slug.Make(raw)
}

func buildOptions(payloads []domain.OptionPayload) ([]domain.ProductOption, error) {
	options := make([]domain.ProductOption, 0, len(payloads))
	for _, payload := range payloads {
		opt, err := buildOption(payload)
		if err != nil {
			return nil, err
		}
		options = append(options, opt)
	}
	return options, nil
}

func buildOption(payload domain.OptionPayload) (domain.ProductOption, error) {
	title := strings.TrimSpace(payload.Title)
	if title == "" {
		return domain.ProductOption{}, domain.ErrInvalidOptionTitle
	}
	optType := payload.Type
	if optType == "" {
		optType = domain.OptionTypeText
	}
	if !domain.ValidOptionType(optType) {
		return domain.ProductOption{}, domain.ErrInvalidOptionType
	}
	return domain.ProductOption{
		Title:  title,
		Type:   optType,
		Values: domain.JoinValues(payload.Values),
	}, nil
}

// decodeImages decodes every non-empty base64 content. The returned slice is
// index-aligned with the payload slice; entries without content are nil.
func decodeImages(payloads []domain.ImagePayload) ([][]byte, error) {
	contents := make([][]byte, len(payloads))
	for i, payload := range payloads {
		if payload.Deleted || payload.Content == "" {
			continue
		}
		raw := payload.Content
		// Tolerate data-URI payloads the storefront sends.
		if strings.HasPrefix(raw, "data:") {
			if idx := strings.IndexByte(raw, ','); idx >= 0 {
				raw = raw[idx+1:]
			}
		}
		data, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, domain.ErrInvalidImageContent
		}
		contents[i] = data
	}
	return contents, nil
}

func positionOr(p *int, def int) int {
	if p != nil {
		return *p
	}
	return def
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func toResponse(p *domain.Product, proj domain.Projection) domain.Response {
	selected := func(col string) bool {
		if len(proj.Columns) == 0 {
			return true
		}
		for _, c := range proj.Columns {
			if c == col {
				return true
			}
		}
		return false
	}

	resp := domain.Response{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if selected("price") {
		price := p.Price
		resp.Price = &price
	}
	if selected("price_with_discount") {
		resp.PriceWithDiscount = p.PriceWithDiscount
	}
	if selected("stock") {
		stock := p.Stock
		resp.Stock = &stock
	}
	if selected("enabled") {
		enabled := p.Enabled
		resp.Enabled = &enabled
	}

	if proj.WithCategories {
		resp.Categories = make([]categorydomain.Response, 0, len(p.Categories))
		for _, c := range p.Categories {
			resp.Categories = append(resp.Categories, categorydomain.Response{
				ID:        c.ID,
				Name:      c.Name,
				Slug:      c.Slug,
				UseInMenu: c.UseInMenu,
			})
		}
	}
	if proj.WithImages {
		resp.Images = make([]domain.ImageResponse, 0, len(p.Images))
		for _, img := range p.Images {
			resp.Images = append(resp.Images, domain.ImageResponse{
				ID:       img.ID,
				Path:     img.Path,
				Position: img.Position,
			})
		}
	}
	if proj.WithOptions {
		resp.Options = make([]domain.OptionResponse, 0, len(p.Options))
		for _, opt := range p.Options {
			resp.Options = append(resp.Options, domain.OptionResponse{
				ID:       opt.ID,
				Title:    opt.Title,
				Type:     opt.Type,
				Values:   opt.ValueList(),
				Position: opt.Position,
			})
		}
	}
	return resp
}
