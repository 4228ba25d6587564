package httpapi

import (
	"net/http"
	"strconv"

	"rewear-be/internal/middleware"
	"rewear-be/internal/product"

	"github.com/gin-gonic/gin"
)

type createProductRequest struct {
	UserID      int               `json:"user_id"`
	ProductName string            `json:"product_name"`
	Price       float64           `json:"price"`
	Description *string           `json:"description"`
	Category    *string           `json:"category"`
	Size        *string           `json:"size"`
	Material    *string           `json:"material"`
	Quantity    int               `json:"quantity"`
	Photos      map[string]string `json:"photos"`
}

func (s *Server) handleCreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	p, err := s.products.Create(c.Request.Context(), product.CreateInput{
		UserID:      middleware.ResolveUserID(c, req.UserID),
		ProductName: req.ProductName,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		Size:        req.Size,
		Material:    req.Material,
		Quantity:    req.Quantity,
		Photos:      req.Photos,
	})
	if err != nil {
		failFor(c, err)
		return
	}

	respond(c, http.StatusCreated, gin.H{"product": p})
}

func (s *Server) handleListProducts(c *gin.Context) {
	var filter product.ListFilter

	if v := c.Query("user_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}
		filter.UserID = &id
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}

	products, err := s.products.List(c.Request.Context(), filter)
	if err != nil {
		failFor(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"products": products})
}

func (s *Server) handleSearchProducts(c *gin.Context) {
	filter := product.SearchFilter{Query: c.Query("q")}

	if v := c.Query("grade"); v != "" {
		filter.Grade = &v
	}
	if v := c.Query("minPrice"); v != "" {
		min, err := strconv.ParseFloat(v, 64)
		if err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}
		filter.MinPrice = &min
	}
	if v := c.Query("maxPrice"); v != "" {
		max, err := strconv.ParseFloat(v, 64)
		if err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}
		filter.MaxPrice = &max
	}

	results, err := s.products.Search(c.Request.Context(), filter)
	if err != nil {
		failFor(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"products": results})
}

func (s *Server) handleGetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	detail, err := s.products.GetDetail(c.Request.Context(), id)
	if err != nil {
		failFor(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"product": detail})
}

func (s *Server) handleDeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	if err := s.products.Delete(c.Request.Context(), id); err != nil {
		failFor(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"deleted": id})
}
