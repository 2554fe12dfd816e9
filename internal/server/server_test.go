package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dripstore/catalog/internal/auth/token"
	categorydomain "github.com/dripstore/catalog/internal/category/domain"
	"github.com/dripstore/catalog/internal/config"
	productdomain "github.com/dripstore/catalog/internal/product/domain"
	userdomain "github.com/dripstore/catalog/internal/user/domain"
	"github.com/dripstore/catalog/pkg/db/pagination"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type userStub struct {
	err error
}

func (s *userStub) Get(ctx context.Context, id int64) (*userdomain.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &userdomain.Response{ID: id, Firstname: "Ana"}, nil
}

func (s *userStub) Create(ctx context.Context, req userdomain.CreateRequest) (*userdomain.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &userdomain.Response{ID: 1, Firstname: req.Firstname}, nil
}

func (s *userStub) Update(ctx context.Context, id int64, req userdomain.UpdateRequest) error {
	return s.err
}

func (s *userStub) Delete(ctx context.Context, id int64) error {
	return s.err
}

func (s *userStub) Token(ctx context.Context, req userdomain.TokenRequest) (*userdomain.TokenResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &userdomain.TokenResponse{Token: "signed", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

type categoryStub struct {
	err error
}

func (s *categoryStub) Search(ctx context.Context, req categorydomain.SearchRequest) (*pagination.Page[categorydomain.Response], error) {
	if s.err != nil {
		return nil, s.err
	}
	page := pagination.Page[categorydomain.Response]{Data: []categorydomain.Response{}, Limit: req.Limit, Page: req.Page, TotalPages: 0}
	return &page, nil
}

func (s *categoryStub) Get(ctx context.Context, id int64) (*categorydomain.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &categorydomain.Response{ID: id}, nil
}

func (s *categoryStub) Create(ctx context.Context, req categorydomain.CreateRequest) (*categorydomain.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &categorydomain.Response{ID: 1, Name: req.Name}, nil
}

func (s *categoryStub) Update(ctx context.Context, id int64, req categorydomain.UpdateRequest) error {
	return s.err
}

func (s *categoryStub) Delete(ctx context.Context, id int64) error {
	return s.err
}

type productStub struct {
	err      error
	lastReq  productdomain.SearchRequest
	searched bool
}

func (s *productStub) Search(ctx context.Context, req productdomain.SearchRequest) (*pagination.Page[productdomain.Response], error) {
	s.lastReq = req
	s.searched = true
	if s.err != nil {
		return nil, s.err
	}
	page := pagination.Page[productdomain.Response]{Data: []productdomain.Response{}, Limit: req.Limit, Page: req.Page}
	return &page, nil
}

func (s *productStub) Get(ctx context.Context, id int64) (*productdomain.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &productdomain.Response{ID: id}, nil
}

func (s *productStub) Create(ctx context.Context, req productdomain.CreateRequest) (*productdomain.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &productdomain.Response{ID: 1, Name: req.Name}, nil
}

func (s *productStub) Update(ctx context.Context, id int64, req productdomain.UpdateRequest) error {
	return s.err
}

func (s *productStub) Delete(ctx context.Context, id int64) error {
	return s.err
}

type serverFixture struct {
	server   *Server
	issuer   *token.Issuer
	users    *userStub
	category *categoryStub
	product  *productStub
}

func setupServer(t *testing.T) *serverFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	cfg := config.Config{
		HTTPPort:      "0",
		MediaDir:      "uploads",
		AuthJWTSecret: "test-secret",
		AuthTokenTTL:  time.Hour,
	}
	issuer := token.New(cfg)

	f := &serverFixture{
		issuer:   issuer,
		users:    &userStub{},
		category: &categoryStub{},
		product:  &productStub{},
	}
	f.server = NewServer(ServerParams{
		Gin:         engine,
		Cfg:         cfg,
		Issuer:      issuer,
		UserSvc:     f.users,
		CategorySvc: f.category,
		ProductSvc:  f.product,
	})
	f.server.RegisterRoutes()
	return f
}

func (f *serverFixture) do(t *testing.T, method, path, body, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	f.server.Engine().ServeHTTP(rec, req)
	return rec
}

func (f *serverFixture) validToken(t *testing.T) string {
	t.Helper()
	signed, _, err := f.issuer.Issue(7)
	require.NoError(t, err)
	return signed
}

func TestWriteEndpointsRequireToken(t *testing.T) {
	f := setupServer(t)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/v1/produto"},
		{http.MethodPut, "/v1/produto/1"},
		{http.MethodDelete, "/v1/produto/1"},
		{http.MethodPost, "/v1/categoria"},
		{http.MethodPut, "/v1/usuario/1"},
	} {
		rec := f.do(t, tc.method, tc.path, `{}`, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)

		rec = f.do(t, tc.method, tc.path, `{}`, "garbage")
		require.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestCreateProductStatusCreated(t *testing.T) {
	f := setupServer(t)

	rec := f.do(t, http.MethodPost, "/v1/produto", `{"name":"Air Runner"}`, f.validToken(t))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp productdomain.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Air Runner", resp.Name)
}

func TestUpdateAndDeleteNoContent(t *testing.T) {
	f := setupServer(t)
	tok := f.validToken(t)

	rec := f.do(t, http.MethodPut, "/v1/produto/1", `{"stock":5}`, tok)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.String())

	rec = f.do(t, http.MethodDelete, "/v1/produto/1", "", tok)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodPut, "/v1/categoria/1", `{"name":"Shoes"}`, tok)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestErrorStatusMapping(t *testing.T) {
	f := setupServer(t)
	tok := f.validToken(t)

	f.product.err = productdomain.ErrNotFound
	rec := f.do(t, http.MethodGet, "/v1/produto/1", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	f.product.err = productdomain.ErrImageNotOwned
	rec = f.do(t, http.MethodPut, "/v1/produto/1", `{}`, tok)
	require.Equal(t, http.StatusForbidden, rec.Code)

	f.product.err = productdomain.ErrInvalidPrice
	rec = f.do(t, http.MethodPost, "/v1/produto", `{}`, tok)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	f.product.err = pagination.ErrInvalidLimit
	rec = f.do(t, http.MethodGet, "/v1/produto/pesquisa?limit=0", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	f.users.err = userdomain.ErrInvalidCredentials
	rec = f.do(t, http.MethodPost, "/v1/usuario/token", `{"email":"a@b.c","password":"x"}`, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNonNumericIDIsNotFound(t *testing.T) {
	f := setupServer(t)
	rec := f.do(t, http.MethodGet, "/v1/produto/abc", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodGet, "/v1/categoria/abc", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchQueryParamWiring(t *testing.T) {
	f := setupServer(t)

	rec := f.do(t, http.MethodGet,
		"/v1/produto/pesquisa?limit=30&page=2&fields=name,price&match=runner&category_ids=15,24&price-range=50-500&option%5B45%5D=GG,PP",
		"", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, f.product.searched)

	req := f.product.lastReq
	require.Equal(t, 30, req.Limit)
	require.Equal(t, 2, req.Page)
	require.Equal(t, "name,price", req.Fields)
	require.Equal(t, "runner", req.Query.Match)
	require.Equal(t, "15,24", req.Query.CategoryIDs)
	require.Equal(t, "50-500", req.Query.PriceRange)
	require.Equal(t, map[int64][]string{45: {"GG", "PP"}}, req.Query.Options)
}

func TestSearchInvalidLimitParam(t *testing.T) {
	f := setupServer(t)

	rec := f.do(t, http.MethodGet, "/v1/produto/pesquisa?limit=abc", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, f.product.searched)

	rec = f.do(t, http.MethodGet, "/v1/categoria/pesquisa?limit=abc", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTokenEndpoint(t *testing.T) {
	f := setupServer(t)

	rec := f.do(t, http.MethodPost, "/v1/usuario/token", `{"email":"a@b.c","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp userdomain.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "signed", resp.Token)

	rec = f.do(t, http.MethodPost, "/v1/usuario/token", `not json`, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
