package domain

import "time"

// Category groups menu products. Categories are never hard-deleted: rows are
// kept with is_active=false so products can keep referencing them.
type Category struct {
	ID          int64     `json:"id,string" form:"id"`
	Name        string    `gorm:"index" json:"name" form:"name"`
	Description string    `json:"description" form:"description"`
	ImageURL    string    `gorm:"size:1024" json:"image_url" form:"image_url"`
	IsActive    bool      `gorm:"default:true" json:"is_active" form:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}

// Product is a single menu item. Dietary tags are independent booleans, no
// mutual exclusion is enforced (a vegan item may also be gluten free).
type Product struct {
	ID           int64     `json:"id,string" form:"id"`
	Name         string    `gorm:"index" json:"name" form:"name"`
	Price        float64   `json:"price" form:"price"`
	CategoryID   *int64    `gorm:"index" json:"category_id,string" form:"category_id"`
	Description  string    `json:"description" form:"description"`
	ImageURL     string    `gorm:"size:1024" json:"image_url" form:"image_url"`
	IsAvailable  bool      `gorm:"default:true" json:"is_available" form:"is_available"`
	IsVegetarian bool      `json:"is_vegetarian" form:"is_vegetarian"`
	IsVegan      bool      `json:"is_vegan" form:"is_vegan"`
	IsGlutenFree bool      `json:"is_gluten_free" form:"is_gluten_free"`
	IsDairyFree  bool      `json:"is_dairy_free" form:"is_dairy_free"`
	IsSpicy      bool      `json:"is_spicy" form:"is_spicy"`
	IsNew        bool      `json:"is_new" form:"is_new"`
	IsPopular    bool      `json:"is_popular" form:"is_popular"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}
