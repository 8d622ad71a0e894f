package repository

import (
	"github.com/cardtrack-dev/cardtrack/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Delete removes a user together with their cards, the comments on those
	// cards, and every comment the user authored elsewhere
	Delete(id uint64) error
}

// CardRepository defines the interface for card data access
type CardRepository interface {
	// Create persists a new card, holding the single-Ongoing invariant
	Create(card *models.Card) error

	// FindByID finds a card by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Card, error)

	// List returns all cards ordered by creation date, most recent first
	List() ([]models.Card, error)

	// Update saves a card, holding the single-Ongoing invariant; the card's
	// own row is excluded from the Ongoing count
	Update(card *models.Card) error

	// Delete removes a card and all comments attached to it
	Delete(id uint64) error

	// CountOngoing counts cards with status Ongoing, excluding excludeID
	// (pass 0 to count all)
	CountOngoing(excludeID uint64) (int64, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(comment *models.Comment) error

	// FindByID finds a comment by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Comment, error)

	// Update updates a comment
	Update(comment *models.Comment) error

	// Delete removes a comment
	Delete(id uint64) error
}
