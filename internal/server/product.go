package server

import (
	"net/http"

	productdomain "github.com/dripstore/catalog/internal/product/domain"
	"github.com/dripstore/catalog/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

func (s *Server) SearchProducts(c *gin.Context) {
	limit, err := parseOptionalInt(c.Query("limit"), pagination.DefaultLimit)
	if err != nil {
		AbortWithError(c, pagination.ErrInvalidLimit)
		return
	}
	page, err := parseOptionalInt(c.Query("page"), 1)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.productSvc.Search(c.Request.Context(), productdomain.SearchRequest{
		Limit:  limit,
		Page:   page,
		Fields: c.Query("fields"),
		Query: productdomain.SearchQuery{
			Match:       c.Query("match"),
			CategoryIDs: c.Query("category_ids"),
			PriceRange:  c.Query("price-range"),
			Options:     parseOptionFilters(c.Request.URL.Query()),
		},
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetProductByID(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, productdomain.ErrNotFound)
		return
	}

	resp, err := s.productSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateProduct(c *gin.Context) {
	var req productdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.productSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (s *Server) UpdateProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, productdomain.ErrNotFound)
		return
	}

	var req productdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.productSvc.Update(c.Request.Context(), id, req); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) DeleteProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, productdomain.ErrNotFound)
		return
	}

	if err := s.productSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
