package domain

import "time"

// Event is a public happening (concert, tasting, workshop).
// Date is stored normalized as YYYY-MM-DD and Time as HH:MM.
type Event struct {
	ID           int64     `json:"id,string" form:"id"`
	Title        string    `gorm:"index" json:"title" form:"title"`
	Description  string    `json:"description" form:"description"`
	Date         string    `gorm:"size:10;index" json:"date" form:"date"`
	Time         string    `gorm:"size:5" json:"time" form:"time"`
	Location     string    `json:"location" form:"location"`
	ImageURL     string    `gorm:"size:1024" json:"image_url" form:"image_url"`
	Capacity     *int      `json:"capacity,omitempty" form:"capacity"`
	ContactPhone string    `json:"contact_phone" form:"contact_phone"`
	ContactEmail string    `json:"contact_email" form:"contact_email"`
	IsFeatured   bool      `json:"is_featured" form:"is_featured"`
	IsActive     bool      `gorm:"default:true" json:"is_active" form:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}
