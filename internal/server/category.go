package server

import (
	"net/http"

	categorydomain "github.com/dripstore/catalog/internal/category/domain"
	"github.com/dripstore/catalog/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

func (s *Server) SearchCategories(c *gin.Context) {
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
	useInMenu, err := parseOptionalBool(c.Query("use_in_menu"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.categorySvc.Search(c.Request.Context(), categorydomain.SearchRequest{
		Limit:     limit,
		Page:      page,
		Fields:    c.Query("fields"),
		UseInMenu: useInMenu,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetCategoryByID(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, categorydomain.ErrNotFound)
		return
	}

	resp, err := s.categorySvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateCategory(c *gin.Context) {
	var req categorydomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.categorySvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (s *Server) UpdateCategory(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, categorydomain.ErrNotFound)
		return
	}

	var req categorydomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.categorySvc.Update(c.Request.Context(), id, req); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) DeleteCategory(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, categorydomain.ErrNotFound)
		return
	}

	if err := s.categorySvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
