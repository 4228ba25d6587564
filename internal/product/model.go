package product

import "time"

const (
	StatusUnsold = "unsold"
	StatusSold   = "sold"
)

// ValidGrades are the condition classes the AI grader may assign.
var ValidGrades = map[string]bool{"A": true, "B": true, "C": true, "D": true}

type Product struct {
	ID          int       `json:"product_id"`
	UserID      int       `json:"user_id"`
	ProductName string    `json:"product_name"`
	Price       float64   `json:"price"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Size        *string   `json:"size"`
	Material    *string   `json:"material"`
	Photo       string    `json:"-"`
	Grade       *string   `json:"grade"`
	Status      string    `json:"status"`
	Quantity    int       `json:"quantity"`
	UploadDate  time.Time `json:"upload_date"`

	// Photos is the decoded photo column, set on read paths.
	Photos map[string]string `json:"photos,omitempty"`
}

// Seller is the joined owner payload returned with detail and search reads.
type Seller struct {
	ID       int     `json:"user_id"`
	UserName string  `json:"user_name"`
	Email    string  `json:"email,omitempty"`
	Address  string  `json:"address,omitempty"`
	Location string  `json:"location"`
	Rating   float64 `json:"rating,omitempty"`
}

type Detail struct {
	Product
	Seller Seller `json:"seller"`
}

type InsertParams struct {
	UserID      int
	ProductName string
	Price       float64
	Description *string
	Category    *string
	Size        *string
	Material    *string
	Photo       string
	Quantity    int
}

type ListFilter struct {
	UserID *int
	Status *string
}

type SearchFilter struct {
	Query    string
	Grade    *string
	MinPrice *float64
	MaxPrice *float64
}
