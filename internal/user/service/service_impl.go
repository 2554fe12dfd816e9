package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/dripstore/catalog/internal/auth/password"
	"github.com/dripstore/catalog/internal/auth/token"
	"github.com/dripstore/catalog/internal/user/domain"
	"github.com/dripstore/catalog/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const minPasswordLen = 6

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Repo   domain.Repository
	Issuer *token.Issuer
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	repo   domain.Repository
	genID  *snowflake.Node
	issuer *token.Issuer
}

func New(p Params) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("user.service"),
		repo:   p.Repo,
		genID:  p.GenID,
		issuer: p.Issuer,
	}
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
	firstname := strings.TrimSpace(req.Firstname)
	surname := strings.TrimSpace(req.Surname)
	if firstname == "" || surname == "" {
		return nil, domain.ErrInvalidName
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}

	if len(req.Password) < minPasswordLen {
		return nil, domain.ErrInvalidPassword
	}
	if req.Password != req.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := &domain.User{
		ID:           s.genID.Generate().Int64(),
		Firstname:    firstname,
		Surname:      surname,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, s.db, u); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, err
	}

	resp := toResponse(u)
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

	if req.Firstname != nil {
		firstname := strings.TrimSpace(*req.Firstname)
		if firstname == "" {
			return domain.ErrInvalidName
		}
		item.Firstname = firstname
	}
	if req.Surname != nil {
		surname := strings.TrimSpace(*req.Surname)
		if surname == "" {
			return domain.ErrInvalidName
		}
		item.Surname = surname
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" || !strings.Contains(email, "@") {
			return domain.ErrInvalidEmail
		}
		item.Email = email
	}

	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, item); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, id)
}

// Token verifies credentials and mints a stateless bearer token.
func (s *Service) Token(ctx context.Context, req domain.TokenRequest) (*domain.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	item, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}
	if item == nil || !password.Verify(req.Password, item.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	signed, expiresAt, err := s.issuer.Issue(item.ID)
	if err != nil {
		return nil, err
	}
	return &domain.TokenResponse{Token: signed, ExpiresAt: expiresAt}, nil
}

func toResponse(u *domain.User) domain.Response {
	return domain.Response{
		ID:        u.ID,
		Firstname: u.Firstname,
		Surname:   u.Surname,
		Email:     u.Email,
	}
}
