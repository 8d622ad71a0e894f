package services

import (
	"errors"
	"fmt"

	"github.com/cardtrack-dev/cardtrack/internal/models"
	"github.com/cardtrack-dev/cardtrack/internal/repository"
	"gorm.io/gorm"
)

var ErrCommentNotFound = errors.New("comment not found")

// CommentService handles comment business logic
type CommentService struct {
	commentRepo repository.CommentRepository
	cardRepo    repository.CardRepository
	authz       *AuthzService
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repository.CommentRepository, cardRepo repository.CardRepository, authz *AuthzService) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		cardRepo:    cardRepo,
		authz:       authz,
	}
}

// Create attaches a comment to a card. The parent card must exist at
// creation time; the comment is not re-validated against it afterwards.
func (s *CommentService) Create(authorID, cardID uint64, message string) (*models.Comment, error) {
	if _, err := s.cardRepo.FindByID(cardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to find card: %w", err)
	}

	comment := &models.Comment{
		Message: message,
		UserID:  authorID,
		CardID:  cardID,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return s.commentRepo.FindByID(comment.ID, "User", "Card")
}

// Update replaces the message when a non-empty one is supplied; an empty
// message keeps the stored value. Any authenticated actor may edit any
// comment.
func (s *CommentService) Update(actorID, commentID uint64, message string) (*models.Comment, error) {
	if !s.authz.CanModifyComment(actorID) {
		return nil, ErrActorNotFound
	}

	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}

	if message != "" {
		comment.Message = message
	}

	if err := s.commentRepo.Update(comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return s.commentRepo.FindByID(comment.ID, "User", "Card")
}

// Delete removes a comment. Any authenticated actor may delete any comment.
func (s *CommentService) Delete(actorID, commentID uint64) (*models.Comment, error) {
	if !s.authz.CanModifyComment(actorID) {
		return nil, ErrActorNotFound
	}

	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}

	if err := s.commentRepo.Delete(commentID); err != nil {
		return nil, fmt.Errorf("failed to delete comment: %w", err)
	}

	return comment, nil
}
