package models

import "time"

// ProductImageSlots is the number of optional image slots per product.
const ProductImageSlots = 4

// Product is a marketplace listing owned by a user.
type Product struct {
	ID        int64           `db:"id"`
	UserID    int64           `db:"user_id"`
	Category  ProductCategory `db:"category"`
	Title     string          `db:"title"`
	Features  [4]string       // feature1..feature4
	Warranty  string          `db:"warranty"`
	Price     float64         `db:"price"`
	Images    [ProductImageSlots]*string
	IsSold    bool      `db:"is_sold"`
	CreatedAt time.Time `db:"created_at"`

	Username string
}
