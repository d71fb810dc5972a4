package dto

import "time"

// CreateProductRequest is the multipart form of a new listing. Images travel
// as the "image1".."image4" parts, each optional.
type CreateProductRequest struct {
	UserID   *int64  `form:"user_id" binding:"omitempty,min=1"`
	Category string  `form:"category" binding:"required,product_category" example:"electronics"`
	Title    string  `form:"title" binding:"required,max=255"`
	Feature1 string  `form:"feature1" binding:"max=255"`
	Feature2 string  `form:"feature2" binding:"max=255"`
	Feature3 string  `form:"feature3" binding:"max=255"`
	Feature4 string  `form:"feature4" binding:"max=255"`
	Warranty string  `form:"warranty" binding:"max=255"`
	Price    float64 `form:"price" binding:"gte=0"`
}

// UpdateProductRequest is a partial update; nil fields are left untouched
type UpdateProductRequest struct {
	UserID   *int64   `form:"user_id" binding:"omitempty,min=1"`
	Category *string  `form:"category" binding:"omitempty,product_category"`
	Title    *string  `form:"title" binding:"omitempty,max=255"`
	Feature1 *string  `form:"feature1" binding:"omitempty,max=255"`
	Feature2 *string  `form:"feature2" binding:"omitempty,max=255"`
	Feature3 *string  `form:"feature3" binding:"omitempty,max=255"`
	Feature4 *string  `form:"feature4" binding:"omitempty,max=255"`
	Warranty *string  `form:"warranty" binding:"omitempty,max=255"`
	Price    *float64 `form:"price" binding:"omitempty,gte=0"`
}

// ProductOwnerRequest names the acting owner for mark-as-sold and delete
type ProductOwnerRequest struct {
	UserID *int64 `json:"user_id" form:"user_id" binding:"omitempty,min=1"`
}

// ProductResponse represents a marketplace listing
type ProductResponse struct {
	ID        int64     `json:"id"`
	User      int64     `json:"user"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Feature1  string    `json:"feature1"`
	Feature2  string    `json:"feature2"`
	Feature3  string    `json:"feature3"`
	Feature4  string    `json:"feature4"`
	Warranty  string    `json:"warranty"`
	Price     float64   `json:"price"`
	Image1    *string   `json:"image1"`
	Image2    *string   `json:"image2"`
	Image3    *string   `json:"image3"`
	Image4    *string   `json:"image4"`
	IsSold    bool      `json:"is_sold"`
	CreatedAt time.Time `json:"created_at"`
}
