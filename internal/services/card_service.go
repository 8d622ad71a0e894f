package services

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/cardtrack-dev/cardtrack/internal/models"
	"github.com/cardtrack-dev/cardtrack/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCardNotFound        = errors.New("card not found")
	ErrNotCardOwner        = errors.New("only the owner can edit this card")
	ErrCardDeleteForbidden = errors.New("only an admin can delete cards")
	ErrOngoingCardExists   = errors.New("an ongoing card already exists")
)

// FieldError reports a field that failed validation and why.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

var titlePattern = regexp.MustCompile(`^[a-zA-Z0-9 ]+$`)

func validateTitle(title string) error {
	if title == "" {
		return &FieldError{Field: "title", Reason: "title is required"}
	}
	if len(title) < 2 {
		return &FieldError{Field: "title", Reason: "title must be at least 2 characters long"}
	}
	if !titlePattern.MatchString(title) {
		return &FieldError{Field: "title", Reason: "title must contain only letters, numbers and spaces"}
	}
	return nil
}

// CardService handles card business logic
type CardService struct {
	cardRepo repository.CardRepository
	authz    *AuthzService
}

// NewCardService creates a new CardService
func NewCardService(cardRepo repository.CardRepository, authz *AuthzService) *CardService {
	return &CardService{
		cardRepo: cardRepo,
		authz:    authz,
	}
}

// CreateCardInput represents input for creating a card
type CreateCardInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
}

// UpdateCardInput represents a partial card update. Empty fields keep the
// stored value (falsy-fallback merge, matching the documented quirk).
type UpdateCardInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
}

// Create validates the input and persists a new card owned by ownerID. The
// creation date is set server-side; caller-supplied dates are ignored.
func (s *CardService) Create(ownerID uint64, input CreateCardInput) (*models.Card, error) {
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}

	status := models.StatusToDo
	if input.Status != "" {
		status = models.CardStatus(input.Status)
		if !status.Valid() {
			return nil, &FieldError{Field: "status", Reason: fmt.Sprintf("%q is not a valid status", input.Status)}
		}
	}

	priority := models.PriorityMedium
	if input.Priority != "" {
		priority = models.CardPriority(input.Priority)
		if !priority.Valid() {
			return nil, &FieldError{Field: "priority", Reason: fmt.Sprintf("%q is not a valid priority", input.Priority)}
		}
	}

	card := &models.Card{
		Title:       input.Title,
		Description: input.Description,
		Date:        time.Now(),
		Status:      status,
		Priority:    priority,
		UserID:      ownerID,
	}

	if err := s.cardRepo.Create(card); err != nil {
		if errors.Is(err, repository.ErrOngoingConflict) {
			return nil, ErrOngoingCardExists
		}
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	return s.cardRepo.FindByID(card.ID, "User")
}

// Update applies a partial update to a card owned by the actor. Supplied
// fields are re-validated; the card's creation date is never touched.
func (s *CardService) Update(actorID, cardID uint64, input UpdateCardInput) (*models.Card, error) {
	card, err := s.cardRepo.FindByID(cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to find card: %w", err)
	}

	if !s.authz.CanEditCard(actorID, card) {
		return nil, ErrNotCardOwner
	}

	if input.Title != "" {
		if err := validateTitle(input.Title); err != nil {
			return nil, err
		}
		card.Title = input.Title
	}
	if input.Description != "" {
		card.Description = input.Description
	}
	if input.Status != "" {
		status := models.CardStatus(input.Status)
		if !status.Valid() {
			return nil, &FieldError{Field: "status", Reason: fmt.Sprintf("%q is not a valid status", input.Status)}
		}
		card.Status = status
	}
	if input.Priority != "" {
		priority := models.CardPriority(input.Priority)
		if !priority.Valid() {
			return nil, &FieldError{Field: "priority", Reason: fmt.Sprintf("%q is not a valid priority", input.Priority)}
		}
		card.Priority = priority
	}

	if err := s.cardRepo.Update(card); err != nil {
		if errors.Is(err, repository.ErrOngoingConflict) {
			return nil, ErrOngoingCardExists
		}
		return nil, fmt.Errorf("failed to update card: %w", err)
	}

	return s.cardRepo.FindByID(card.ID, "User")
}

// Delete removes a card if the actor is an admin, cascading to its comments.
func (s *CardService) Delete(actorID, cardID uint64) (*models.Card, error) {
	card, err := s.cardRepo.FindByID(cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to find card: %w", err)
	}

	if !s.authz.CanDeleteCard(actorID) {
		return nil, ErrCardDeleteForbidden
	}

	if err := s.cardRepo.Delete(cardID); err != nil {
		return nil, fmt.Errorf("failed to delete card: %w", err)
	}

	return card, nil
}

// List returns all cards with their authors, most recent first.
func (s *CardService) List() ([]models.Card, error) {
	cards, err := s.cardRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

// Get returns a card with its author and full comment list.
func (s *CardService) Get(cardID uint64) (*models.Card, error) {
	card, err := s.cardRepo.FindByID(cardID, "User", "Comments", "Comments.User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to find card: %w", err)
	}
	return card, nil
}
