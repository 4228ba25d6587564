package cart

import (
	"context"
	"database/sql"

	"rewear-be/internal/logger"
	"rewear-be/internal/product"

	"go.uber.org/zap"
)

type Service interface {
	GetCart(ctx context.Context, userID int) (View, error)
	AddItem(ctx context.Context, params AddItemParams) (Item, error)
	UpdateItemQuantity(ctx context.Context, itemID, quantity int) (*Item, error)
	RemoveItem(ctx context.Context, itemID int) error
	Clear(ctx context.Context, userID int) error
}

type service struct {
	repo        Repository
	productRepo product.Repository
}

func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

// GetCart returns the user's cart, creating an empty one on first read.
func (s *service) GetCart(ctx context.Context, userID int) (View, error) {
	c, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return View{}, err
	}

	items, err := s.repo.ListItems(ctx, c.ID)
	if err != nil {
		return View{}, err
	}

	return View{Cart: c, Items: items}, nil
}

// AddItem puts a product in the cart, merging with an existing line. The
// combined quantity must stay within the product's remaining stock.
func (s *service) AddItem(ctx context.Context, params AddItemParams) (Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.Int("user_id", params.UserID),
		zap.Int("product_id", params.ProductID),
	)

	if params.UserID == 0 || params.ProductID == 0 {
		return Item{}, ErrMissingFields
	}
	if params.Quantity <= 0 {
		return Item{}, ErrInvalidQuantity
	}

	p, err := s.productRepo.GetByID(ctx, params.ProductID)
	if err != nil {
		if err == product.ErrProductNotFound {
			return Item{}, ErrProductNotFound
		}
		return Item{}, err
	}
	if p.Status == product.StatusSold {
		return Item{}, ErrProductSold
	}

	c, err := s.getOrCreateCart(ctx, params.UserID)
	if err != nil {
		return Item{}, err
	}

	existing, err := s.repo.GetItemByCartAndProduct(ctx, c.ID, params.ProductID)
	if err != nil {
		return Item{}, err
	}

	finalQty := params.Quantity
	if existing != nil {
		finalQty += existing.Quantity
	}
	if finalQty > p.Quantity {
		return Item{}, ErrInsufficientStock
	}

	var item Item
	if existing == nil {
		item, err = s.repo.CreateItem(ctx, c.ID, params.ProductID, params.Quantity)
	} else {
		item, err = s.repo.UpdateItemQuantity(ctx, existing.ID, finalQty)
	}
	if err != nil {
		return Item{}, err
	}

	log.Info("cart item saved",
		zap.Int("cart_item_id", item.ID),
		zap.Int("quantity", item.Quantity),
	)
	return item, nil
}

// UpdateItemQuantity sets a line's quantity. Zero or negative removes the
// line; the returned item is nil in that case.
func (s *service) UpdateItemQuantity(ctx context.Context, itemID, quantity int) (*Item, error) {
	if quantity <= 0 {
		if err := s.repo.DeleteItem(ctx, itemID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	existing, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	p, err := s.productRepo.GetByID(ctx, existing.ProductID)
	if err != nil {
		return nil, err
	}
	if quantity > p.Quantity {
		return nil, ErrInsufficientStock
	}

	item, err := s.repo.UpdateItemQuantity(ctx, itemID, quantity)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *service) RemoveItem(ctx context.Context, itemID int) error {
	return s.repo.DeleteItem(ctx, itemID)
}

func (s *service) Clear(ctx context.Context, userID int) error {
	if userID == 0 {
		return ErrMissingFields
	}
	return s.repo.ClearByUser(ctx, userID)
}

func (s *service) getOrCreateCart(ctx context.Context, userID int) (Cart, error) {
	c, err := s.repo.GetCartByUser(ctx, userID)
	if err == sql.ErrNoRows {
		return s.repo.CreateCart(ctx, userID)
	}
	return c, err
}
