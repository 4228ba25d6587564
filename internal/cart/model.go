package cart

import "time"

type Cart struct {
	ID        int       `json:"cart_id"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Item struct {
	ID        int       `json:"cart_item_id"`
	CartID    int       `json:"cart_id"`
	ProductID int       `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ItemDetail is an item joined with its product for cart reads.
type ItemDetail struct {
	Item
	ProductName string            `json:"product_name"`
	Price       float64           `json:"price"`
	Status      string            `json:"status"`
	Stock       int               `json:"stock"`
	Photos      map[string]string `json:"photos"`
}

// View is the full cart payload: the cart row plus its joined items.
type View struct {
	Cart
	Items []ItemDetail `json:"items"`
}

type AddItemParams struct {
	UserID    int
	ProductID int
	Quantity  int
}
