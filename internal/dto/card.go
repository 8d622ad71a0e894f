package dto

import (
	"time"

	"github.com/cardtrack-dev/cardtrack/internal/models"
)

// CardDTO represents a card with its author summary.
type CardDTO struct {
	ID          uint64              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Date        time.Time           `json:"date"`
	Status      models.CardStatus   `json:"status"`
	Priority    models.CardPriority `json:"priority"`
	User        *UserSummaryDTO     `json:"user,omitempty"`
}

// CardSummaryDTO is the short card shape nested inside comments.
type CardSummaryDTO struct {
	ID    uint64 `json:"id"`
	Title string `json:"title"`
}

// CardDetailDTO represents a card together with its full comment list.
type CardDetailDTO struct {
	CardDTO
	Comments []CardCommentDTO `json:"comments"`
}

// CardCommentDTO is a comment as it appears inside a card detail response.
type CardCommentDTO struct {
	ID      uint64          `json:"id"`
	Message string          `json:"message"`
	User    *UserSummaryDTO `json:"user,omitempty"`
}

// ToCardDTO converts a Card model to CardDTO
func ToCardDTO(card models.Card) CardDTO {
	dto := CardDTO{
		ID:          card.ID,
		Title:       card.Title,
		Description: card.Description,
		Date:        card.Date,
		Status:      card.Status,
		Priority:    card.Priority,
	}

	// Include author if preloaded
	if card.User.ID != 0 {
		user := ToUserSummaryDTO(card.User)
		dto.User = &user
	}

	return dto
}

// ToCardSummaryDTO converts a Card model to CardSummaryDTO
func ToCardSummaryDTO(card models.Card) CardSummaryDTO {
	return CardSummaryDTO{
		ID:    card.ID,
		Title: card.Title,
	}
}

// ToCardDetailDTO converts a card with preloaded comments to a detail DTO
func ToCardDetailDTO(card models.Card) CardDetailDTO {
	comments := make([]CardCommentDTO, len(card.Comments))
	for i, comment := range card.Comments {
		comments[i] = CardCommentDTO{
			ID:      comment.ID,
			Message: comment.Message,
		}
		if comment.User.ID != 0 {
			user := ToUserSummaryDTO(comment.User)
			comments[i].User = &user
		}
	}

	return CardDetailDTO{
		CardDTO:  ToCardDTO(card),
		Comments: comments,
	}
}

// ToCardDTOs converts a slice of cards preserving order
func ToCardDTOs(cards []models.Card) []CardDTO {
	dtos := make([]CardDTO, len(cards))
	for i, card := range cards {
		dtos[i] = ToCardDTO(card)
	}
	return dtos
}
