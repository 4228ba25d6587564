package httpapi

import (
	"net/http"
	"strconv"

	"rewear-be/internal/cart"
	"rewear-be/internal/middleware"

	"github.com/gin-gonic/gin"
)

// cartUserID resolves the cart owner: the token identity when present,
// otherwise the user_id query parameter.
func cartUserID(c *gin.Context) (int, error) {
	if id, ok := middleware.UserID(c); ok {
		return id, nil
	}
	return strconv.Atoi(c.Query("user_id"))
}

func (s *Server) handleGetCart(c *gin.Context) {
	userID, err := cartUserID(c)
	if err != nil || userID == 0 {
		fail(c, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	view, err := s.carts.GetCart(c.Request.Context(), userID)
	if err != nil {
		failFor(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"cart": view})
}

type addCartItemRequest struct {
	UserID    int `json:"user_id"`
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

func (s *Server) handleAddCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	item, err := s.carts.AddItem(c.Request.Context(), cart.AddItemParams{
		UserID:    middleware.ResolveUserID(c, req.UserID),
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		failFor(c, err)
		return
	}

	respond(c, http.StatusCreated, gin.H{"item": item})
}

func (s *Server) handleUpdateCartItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	item, err := s.carts.UpdateItemQuantity(c.Request.Context(), itemID, req.Quantity)
	if err != nil {
		failFor(c, err)
		return
	}

	if item == nil {
		respond(c, http.StatusOK, gin.H{"removed": itemID})
		return
	}
	respond(c, http.StatusOK, gin.H{"item": item})
}

func (s *Server) handleRemoveCartItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	if err := s.carts.RemoveItem(c.Request.Context(), itemID); err != nil {
		failFor(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"removed": itemID})
}

func (s *Server) handleClearCart(c *gin.Context) {
	userID, err := cartUserID(c)
	if err != nil || userID == 0 {
		fail(c, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	if err := s.carts.Clear(c.Request.Context(), userID); err != nil {
		failFor(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"cleared": userID})
}
