package dto

import "github.com/cardtrack-dev/cardtrack/internal/models"

// CommentDTO represents a comment with its author and parent card summaries.
type CommentDTO struct {
	ID      uint64          `json:"id"`
	Message string          `json:"message"`
	User    *UserSummaryDTO `json:"user,omitempty"`
	Card    *CardSummaryDTO `json:"card,omitempty"`
}

// ToCommentDTO converts a Comment model to CommentDTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	dto := CommentDTO{
		ID:      comment.ID,
		Message: comment.Message,
	}

	if comment.User.ID != 0 {
		user := ToUserSummaryDTO(comment.User)
		dto.User = &user
	}

	if comment.Card.ID != 0 {
		card := ToCardSummaryDTO(comment.Card)
		dto.Card = &card
	}

	return dto
}
