package models

import "time"

type CardStatus string

const (
	StatusToDo     CardStatus = "To Do"
	StatusDone     CardStatus = "Done"
	StatusOngoing  CardStatus = "Ongoing"
	StatusTesting  CardStatus = "Testing"
	StatusDeployed CardStatus = "Deployed"
)

// Valid reports whether s is one of the fixed card statuses.
func (s CardStatus) Valid() bool {
	switch s {
	case StatusToDo, StatusDone, StatusOngoing, StatusTesting, StatusDeployed:
		return true
	}
	return false
}

type CardPriority string

const (
	PriorityLow    CardPriority = "Low"
	PriorityMedium CardPriority = "Medium"
	PriorityHigh   CardPriority = "High"
	PriorityUrgent CardPriority = "Urgent"
)

// Valid reports whether p is one of the fixed card priorities.
func (p CardPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Card struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Title       string       `gorm:"type:varchar(100);not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Date        time.Time    `gorm:"not null" json:"date"` // set once at creation
	Status      CardStatus   `gorm:"type:varchar(20);not null;default:'To Do'" json:"status"`
	Priority    CardPriority `gorm:"type:varchar(20);not null;default:'Medium'" json:"priority"`
	UserID      uint64       `gorm:"not null" json:"user_id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Relations
	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Comments []Comment `gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}
