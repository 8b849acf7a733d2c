package domain

import "time"

// HomeSection is one block on the public landing page. DisplayOrder is kept
// a contiguous 0..N-1 ranking; reorder operations rewrite the whole list.
// CategoryID deep-links the section button into the menu filtered by that
// category; LinkURL/LinkText is the generic alternative.
type HomeSection struct {
	ID           int64     `json:"id,string" form:"id"`
	Title        string    `json:"title" form:"title"`
	Description  string    `json:"description" form:"description"`
	ImageURL     string    `gorm:"size:1024" json:"image_url" form:"image_url"`
	LinkURL      string    `gorm:"size:1024" json:"link_url" form:"link_url"`
	LinkText     string    `json:"link_text" form:"link_text"`
	CategoryID   *int64    `gorm:"index" json:"category_id,string" form:"category_id"`
	IsActive     bool      `gorm:"default:true" json:"is_active" form:"is_active"`
	DisplayOrder int       `gorm:"index" json:"display_order" form:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (HomeSection) TableName() string {
	return "home_sections"
}
