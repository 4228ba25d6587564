package main

import (
	"context"
	"log"

	"rewear-be/internal/cart"
	"rewear-be/internal/config"
	"rewear-be/internal/db"
	"rewear-be/internal/donation"
	"rewear-be/internal/grading"
	"rewear-be/internal/httpapi"
	"rewear-be/internal/logger"
	"rewear-be/internal/product"
	"rewear-be/internal/storage"
	"rewear-be/internal/transaction"
	"rewear-be/internal/user"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	gw := storage.NewSupabaseGateway(cfg.SupabaseURL, cfg.SupabaseServiceKey)

	model, err := grading.NewGeminiModel(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("Failed to init Gemini client: %v", err)
	}

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, gw)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo, gw)

	gradingSvc := grading.NewService(productRepo, model)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo)

	transactionRepo := transaction.NewRepository(database)
	transactionSvc := transaction.NewService(transactionRepo, productRepo)

	donationRepo := donation.NewRepository(database)
	donationSvc := donation.NewService(donationRepo, userRepo, gw)

	server := httpapi.NewServer(userSvc, productSvc, gradingSvc, cartSvc, transactionSvc, donationSvc)
	router := server.Router()

	log.Printf("🚀 API server running at http://localhost:%s/api", cfg.AppPort)
	log.Fatal(router.Run(":" + cfg.AppPort))
}
