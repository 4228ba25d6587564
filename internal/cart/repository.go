package cart

import (
	"context"
	"database/sql"

	"rewear-be/internal/logger"
	"rewear-be/internal/photo"

	"go.uber.org/zap"
)

const itemColumns = `cart_item_id, cart_id, product_id, quantity, created_at, updated_at`

type Repository interface {
	GetCartByUser(ctx context.Context, userID int) (Cart, error)
	CreateCart(ctx context.Context, userID int) (Cart, error)
	GetItem(ctx context.Context, itemID int) (Item, error)
	GetItemByCartAndProduct(ctx context.Context, cartID, productID int) (*Item, error)
	CreateItem(ctx context.Context, cartID, productID, quantity int) (Item, error)
	UpdateItemQuantity(ctx context.Context, itemID, quantity int) (Item, error)
	DeleteItem(ctx context.Context, itemID int) error
	ClearByUser(ctx context.Context, userID int) error
	ListItems(ctx context.Context, cartID int) ([]ItemDetail, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetCartByUser(ctx context.Context, userID int) (Cart, error) {
	var c Cart
	err := r.db.QueryRowContext(ctx,
		`SELECT cart_id, user_id, created_at FROM carts WHERE user_id = $1`,
		userID,
	).Scan(&c.ID, &c.UserID, &c.CreatedAt)
	return c, err
}

func (r *repository) CreateCart(ctx context.Context, userID int) (Cart, error) {
	log := logger.FromCtx(ctx)

	var c Cart
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO carts (user_id) VALUES ($1) RETURNING cart_id, user_id, created_at`,
		userID,
	).Scan(&c.ID, &c.UserID, &c.CreatedAt)

	if err != nil {
		log.Error("db: failed to create cart", zap.Int("user_id", userID), zap.Error(err))
	}
	return c, err
}

func (r *repository) GetItem(ctx context.Context, itemID int) (Item, error) {
	var it Item
	err := r.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM cart_items WHERE cart_item_id = $1`,
		itemID,
	).Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt)

	if err == sql.ErrNoRows {
		return it, ErrItemNotFound
	}
	return it, err
}

// GetItemByCartAndProduct returns nil without error when the product is
// not yet in the cart.
func (r *repository) GetItemByCartAndProduct(ctx context.Context, cartID, productID int) (*Item, error) {
	var it Item
	err := r.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM cart_items WHERE cart_id = $1 AND product_id = $2`,
		cartID, productID,
	).Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *repository) CreateItem(ctx context.Context, cartID, productID, quantity int) (Item, error) {
	var it Item
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO cart_items (cart_id, product_id, quantity)
		 VALUES ($1, $2, $3)
		 RETURNING `+itemColumns,
		cartID, productID, quantity,
	).Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt)
	return it, err
}

func (r *repository) UpdateItemQuantity(ctx context.Context, itemID, quantity int) (Item, error) {
	var it Item
	err := r.db.QueryRowContext(ctx,
		`UPDATE cart_items
		 SET quantity = $1, updated_at = NOW()
		 WHERE cart_item_id = $2
		 RETURNING `+itemColumns,
		quantity, itemID,
	).Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt)

	if err == sql.ErrNoRows {
		return it, ErrItemNotFound
	}
	return it, err
}

func (r *repository) DeleteItem(ctx context.Context, itemID int) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_item_id = $1`, itemID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// ClearByUser empties the user's cart but keeps the cart row itself.
func (r *repository) ClearByUser(ctx context.Context, userID int) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE cart_id IN (SELECT cart_id FROM carts WHERE user_id = $1)
	`, userID)
	return err
}

func (r *repository) ListItems(ctx context.Context, cartID int) ([]ItemDetail, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ci.cart_item_id, ci.cart_id, ci.product_id, ci.quantity,
		       ci.created_at, ci.updated_at,
		       p.product_name, p.price, p.status, p.quantity, p.photo
		FROM cart_items ci
		JOIN products p ON p.product_id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at DESC
	`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []ItemDetail{}
	for rows.Next() {
		var d ItemDetail
		var rawPhoto sql.NullString
		if err := rows.Scan(
			&d.ID, &d.CartID, &d.ProductID, &d.Quantity,
			&d.CreatedAt, &d.UpdatedAt,
			&d.ProductName, &d.Price, &d.Status, &d.Stock, &rawPhoto,
		); err != nil {
			return nil, err
		}
		d.Photos = photo.Decode(rawPhoto.String)
		items = append(items, d)
	}

	return items, rows.Err()
}
