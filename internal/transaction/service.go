package transaction

import (
	"context"

	"rewear-be/internal/logger"
	"rewear-be/internal/product"

	"go.uber.org/zap"
)

type Service interface {
	Checkout(ctx context.Context, params CheckoutParams) (Transaction, error)
	History(ctx context.Context, filter HistoryFilter) ([]HistoryRow, error)
}

type service struct {
	repo        Repository
	productRepo product.Repository
}

func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

// Checkout validates stock before writing, then runs the insert+decrement
// pair transactionally. The pre-check gives callers a precise error; the
// conditional decrement inside the transaction is what actually prevents
// oversell under concurrency.
func (s *service) Checkout(ctx context.Context, params CheckoutParams) (Transaction, error) {
	log := logger.FromCtx(ctx).With(
		zap.Int("buyer_id", params.BuyerID),
		zap.Int("product_id", params.ProductID),
	)

	if params.BuyerID == 0 || params.SellerID == 0 || params.ProductID == 0 || params.TotalPrice <= 0 {
		return Transaction{}, ErrMissingFields
	}
	if params.Quantity <= 0 {
		return Transaction{}, ErrInvalidQuantity
	}

	p, err := s.productRepo.GetByID(ctx, params.ProductID)
	if err != nil {
		return Transaction{}, err
	}

	if p.Status == product.StatusSold {
		return Transaction{}, ErrProductSold
	}
	if params.Quantity > p.Quantity {
		return Transaction{}, ErrInsufficientStock
	}

	t, err := s.repo.CreateCheckoutTx(ctx, params)
	if err != nil {
		log.Error("checkout failed", zap.Error(err))
		return Transaction{}, err
	}

	log.Info("transaction created",
		zap.Int("transaction_id", t.ID),
		zap.Float64("total_price", t.TotalPrice),
	)

	return t, nil
}

func (s *service) History(ctx context.Context, filter HistoryFilter) ([]HistoryRow, error) {
	return s.repo.ListByUser(ctx, filter)
}
