package models

import "time"

// Order links a user to an item they purchased. At most one order may
// exist per (user, item) pair; the composite unique index is the source
// of truth for that invariant.
type Order struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	UserID    uint      `json:"userId" gorm:"uniqueIndex:idx_user_item;not null"`
	ItemID    uint      `json:"itemId" gorm:"uniqueIndex:idx_user_item;not null"`
	User      *User     `json:"user,omitempty"`
	Item      *Item     `json:"item,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
