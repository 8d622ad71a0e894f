package services

import (
	"errors"
	"fmt"

	"github.com/cardtrack-dev/cardtrack/internal/models"
	"github.com/cardtrack-dev/cardtrack/internal/repository"
	"gorm.io/gorm"
)

// ErrActorNotFound is returned when an actor id from a token no longer
// resolves to a user.
var ErrActorNotFound = errors.New("actor not found")

// AuthzService answers "may this actor perform this mutation". All checks
// fail closed: an actor that cannot be resolved is denied.
type AuthzService struct {
	userRepo repository.UserRepository
}

// NewAuthzService creates a new AuthzService.
func NewAuthzService(userRepo repository.UserRepository) *AuthzService {
	return &AuthzService{
		userRepo: userRepo,
	}
}

// IsAdmin loads the actor and returns its admin flag. A stale actor id
// resolves to ErrActorNotFound, which callers treat as not-admin.
func (s *AuthzService) IsAdmin(actorID uint64) (bool, error) {
	user, err := s.userRepo.FindByID(actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrActorNotFound
		}
		return false, fmt.Errorf("failed to load actor: %w", err)
	}
	return user.IsAdmin, nil
}

// CanEditCard permits card edits for the owner only. Admin status does not
// grant edit rights.
func (s *AuthzService) CanEditCard(actorID uint64, card *models.Card) bool {
	return actorID != 0 && actorID == card.UserID
}

// CanDeleteCard permits card deletion for admins only. Owning the card
// grants nothing here.
func (s *AuthzService) CanDeleteCard(actorID uint64) bool {
	isAdmin, err := s.IsAdmin(actorID)
	return err == nil && isAdmin
}

// CanModifyComment permits comment edits and deletes for any actor that
// still resolves to a user. The asymmetry with cards is intentional.
func (s *AuthzService) CanModifyComment(actorID uint64) bool {
	if actorID == 0 {
		return false
	}
	_, err := s.userRepo.FindByID(actorID)
	return err == nil
}
