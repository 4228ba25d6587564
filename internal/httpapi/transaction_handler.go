package httpapi

import (
	"net/http"
	"strconv"

	"rewear-be/internal/middleware"
	"rewear-be/internal/transaction"

	"github.com/gin-gonic/gin"
)

type checkoutRequest struct {
	BuyerID    int     `json:"buyer_id"`
	SellerID   int     `json:"seller_id"`
	ProductID  int     `json:"product_id"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
}

func (s *Server) handleCheckout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	t, err := s.transactions.Checkout(c.Request.Context(), transaction.CheckoutParams{
		BuyerID:    middleware.ResolveUserID(c, req.BuyerID),
		SellerID:   req.SellerID,
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
		TotalPrice: req.TotalPrice,
	})
	if err != nil {
		failFor(c, err)
		return
	}

	respond(c, http.StatusCreated, gin.H{"transaction": t})
}

func (s *Server) handleTransactionHistory(c *gin.Context) {
	userID, err := strconv.Atoi(c.Query("user_id"))
	if id, ok := middleware.UserID(c); ok {
		userID, err = id, nil
	}
	if err != nil || userID == 0 {
		fail(c, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	history, err := s.transactions.History(c.Request.Context(), transaction.HistoryFilter{
		UserID: userID,
		Role:   c.Query("type"),
	})
	if err != nil {
		failFor(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"transactions": history})
}
