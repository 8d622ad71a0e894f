package models

import "time"

type Comment struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Message   string    `gorm:"type:text" json:"message"`
	UserID    uint64    `gorm:"not null" json:"user_id"`
	CardID    uint64    `gorm:"not null" json:"card_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Card Card `gorm:"foreignKey:CardID" json:"card,omitempty"`
}
