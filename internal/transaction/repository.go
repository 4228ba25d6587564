package transaction

import (
	"context"
	"database/sql"

	"rewear-be/internal/logger"
	"rewear-be/internal/photo"

	"go.uber.org/zap"
)

type Repository interface {
	CreateCheckoutTx(ctx context.Context, params CheckoutParams) (Transaction, error)
	ListByUser(ctx context.Context, filter HistoryFilter) ([]HistoryRow, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// CreateCheckoutTx inserts the transaction row and decrements stock in
// one database transaction. The decrement is conditional on remaining
// stock, so two concurrent checkouts cannot oversell: the loser's
// update matches zero rows and the whole transaction rolls back,
// transaction row included.
func (r *repository) CreateCheckoutTx(ctx context.Context, params CheckoutParams) (Transaction, error) {
	log := logger.FromCtx(ctx).With(
		zap.Int("buyer_id", params.BuyerID),
		zap.Int("product_id", params.ProductID),
		zap.Int("quantity", params.Quantity),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Transaction{}, err
	}
	defer tx.Rollback()

	// 1. Insert transaction (payment_status starts pending)
	var t Transaction
	err = tx.QueryRowContext(ctx, `
		INSERT INTO transactions (
			buyer_id, seller_id, product_id,
			quantity, total_price, payment_status
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING transaction_id, buyer_id, seller_id, product_id,
		          quantity, total_price, payment_status, transaction_date
	`,
		params.BuyerID,
		params.SellerID,
		params.ProductID,
		params.Quantity,
		params.TotalPrice,
		PaymentStatusPending,
	).Scan(
		&t.ID, &t.BuyerID, &t.SellerID, &t.ProductID,
		&t.Quantity, &t.TotalPrice, &t.PaymentStatus, &t.TransactionDate,
	)
	if err != nil {
		log.Error("failed to insert transaction", zap.Error(err))
		return Transaction{}, err
	}

	// 2. Decrement stock, flipping status once it hits zero
	res, err := tx.ExecContext(ctx, `
		UPDATE products
		SET quantity = quantity - $1,
		    status = CASE WHEN quantity - $1 <= 0 THEN 'sold' ELSE status END
		WHERE product_id = $2 AND quantity >= $1
	`, params.Quantity, params.ProductID)
	if err != nil {
		log.Error("failed to update product stock", zap.Error(err))
		return Transaction{}, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return Transaction{}, err
	}
	if affected == 0 {
		log.Warn("stock check failed inside transaction")
		return Transaction{}, ErrInsufficientStock
	}

	if err := tx.Commit(); err != nil {
		return Transaction{}, err
	}

	return t, nil
}

func (r *repository) ListByUser(ctx context.Context, filter HistoryFilter) ([]HistoryRow, error) {
	query := `
		SELECT t.transaction_id, t.buyer_id, t.seller_id, t.product_id,
		       t.quantity, t.total_price, t.payment_status, t.transaction_date,
		       p.product_id, p.product_name, p.price, p.category, p.photo,
		       b.user_id, b.user_name, b.email,
		       s.user_id, s.user_name, s.email
		FROM transactions t
		JOIN products p ON p.product_id = t.product_id
		JOIN users b ON b.user_id = t.buyer_id
		JOIN users s ON s.user_id = t.seller_id
	`

	args := []interface{}{filter.UserID}
	switch filter.Role {
	case "buyer":
		query += ` WHERE t.buyer_id = $1`
	case "seller":
		query += ` WHERE t.seller_id = $1`
	default:
		query += ` WHERE t.buyer_id = $1 OR t.seller_id = $1`
	}
	query += ` ORDER BY t.transaction_date DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := []HistoryRow{}
	for rows.Next() {
		var h HistoryRow
		var rawPhoto string

		err := rows.Scan(
			&h.ID, &h.BuyerID, &h.SellerID, &h.ProductID,
			&h.Quantity, &h.TotalPrice, &h.PaymentStatus, &h.TransactionDate,
			&h.Product.ID, &h.Product.Name, &h.Product.Price, &h.Product.Category, &rawPhoto,
			&h.Buyer.ID, &h.Buyer.UserName, &h.Buyer.Email,
			&h.Seller.ID, &h.Seller.UserName, &h.Seller.Email,
		)
		if err != nil {
			return nil, err
		}

		h.Product.Photos = photo.Decode(rawPhoto)
		history = append(history, h)
	}

	return history, rows.Err()
}
