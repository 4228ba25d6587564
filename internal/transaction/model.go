package transaction

import "time"

const PaymentStatusPending = "pending"

type Transaction struct {
	ID              int       `json:"transaction_id"`
	BuyerID         int       `json:"buyer_id"`
	SellerID        int       `json:"seller_id"`
	ProductID       int       `json:"product_id"`
	Quantity        int       `json:"quantity"`
	TotalPrice      float64   `json:"total_price"`
	PaymentStatus   string    `json:"payment_status"`
	TransactionDate time.Time `json:"transaction_date"`
}

type CheckoutParams struct {
	BuyerID    int
	SellerID   int
	ProductID  int
	Quantity   int
	TotalPrice float64
}

// Party is the joined buyer/seller payload on history reads.
type Party struct {
	ID       int    `json:"user_id"`
	UserName string `json:"user_name"`
	Email    string `json:"email"`
}

type HistoryProduct struct {
	ID       int               `json:"product_id"`
	Name     string            `json:"product_name"`
	Price    float64           `json:"price"`
	Category *string           `json:"category"`
	Photos   map[string]string `json:"photos"`
}

type HistoryRow struct {
	Transaction
	Product HistoryProduct `json:"product"`
	Buyer   Party          `json:"buyer"`
	Seller  Party          `json:"seller"`
}

// HistoryFilter selects which side of the trade the user is on;
// empty role returns both.
type HistoryFilter struct {
	UserID int
	Role   string // "buyer", "seller" or ""
}
