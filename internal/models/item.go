package models

import "time"

// Item represents a catalog entry.
type Item struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;type:varchar(255)" validate:"required,min=1,max=255"`
	Price       float64   `json:"price" validate:"gte=0"`
	Image       string    `json:"image" validate:"omitempty,max=500"`
	Stock       int       `json:"stock" validate:"gte=0"`
	Type        string    `json:"type" validate:"omitempty,max=100"`
	Description string    `json:"description" validate:"omitempty,max=2000"`
	Orders      []Order   `json:"orders,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
