package httpapi

import (
	"rewear-be/internal/cart"
	"rewear-be/internal/donation"
	"rewear-be/internal/grading"
	"rewear-be/internal/logger"
	"rewear-be/internal/middleware"
	"rewear-be/internal/product"
	"rewear-be/internal/transaction"
	"rewear-be/internal/user"

	"github.com/gin-gonic/gin"
)

// Server bundles the domain services behind the HTTP surface.
type Server struct {
	users        user.Service
	products     product.Service
	grader       grading.Service
	carts        cart.Service
	transactions transaction.Service
	donations    donation.Service
}

func NewServer(
	users user.Service,
	products product.Service,
	grader grading.Service,
	carts cart.Service,
	transactions transaction.Service,
	donations donation.Service,
) *Server {
	return &Server{
		users:        users,
		products:     products,
		grader:       grader,
		carts:        carts,
		transactions: transactions,
		donations:    donations,
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestIDMiddleware())
	r.Use(logger.LoggingMiddleware())
	r.Use(middleware.Auth())
	r.Use(middleware.RateLimit())

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/signup", s.handleSignup)
		auth.POST("/login", s.handleLogin)
		auth.POST("/check-email", s.handleCheckEmail)
		auth.PATCH("/update-profile", s.handleUpdateProfile)
	}

	users := api.Group("/users")
	{
		users.GET("/profile", s.handleGetProfile)
		users.PATCH("/profile", s.handleUpdateProfile)
		users.GET("/address", s.handleGetAddress)
		users.PATCH("/address", s.handleUpdateAddress)
		users.GET("/:id", s.handleGetUser)
		users.PATCH("/:id", s.handleUpdateUserByID)
	}

	products := api.Group("/products")
	{
		products.POST("", s.handleCreateProduct)
		products.GET("", s.handleListProducts)
		products.GET("/search", s.handleSearchProducts)
		products.GET("/:id", s.handleGetProduct)
		products.DELETE("/:id", s.handleDeleteProduct)
	}

	ai := api.Group("/ai")
	{
		ai.POST("/grade-product", s.handleGradeProduct)
		ai.GET("/grade-product", s.handleCheckGrade)
	}

	carts := api.Group("/carts")
	{
		carts.GET("", s.handleGetCart)
		carts.DELETE("", s.handleClearCart)
		carts.POST("/items", s.handleAddCartItem)
		carts.PATCH("/items/:id", s.handleUpdateCartItem)
		carts.DELETE("/items/:id", s.handleRemoveCartItem)
	}

	transactions := api.Group("/transactions")
	{
		transactions.POST("", s.handleCheckout)
		transactions.GET("", s.handleTransactionHistory)
	}

	donations := api.Group("/donations")
	{
		donations.POST("", s.handleCreateCampaign)
		donations.GET("", s.handleListDonations)
		donations.GET("/:id", s.handleGetDonation)
		donations.GET("/:id/contributions", s.handleListContributions)
		donations.POST("/:id/contribute", s.handleContribute)
		donations.POST("/:id/report", s.handleSubmitReport)
	}

	return r
}
