package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cardtrack-dev/cardtrack/internal/dto"
	apierrors "github.com/cardtrack-dev/cardtrack/internal/errors"
	"github.com/cardtrack-dev/cardtrack/internal/middleware"
	"github.com/cardtrack-dev/cardtrack/internal/services"
	"github.com/gin-gonic/gin"
)

// CardHandler coordinates card-related HTTP handlers.
type CardHandler struct {
	cardService *services.CardService
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardService *services.CardService) *CardHandler {
	return &CardHandler{
		cardService: cardService,
	}
}

// CardRequest is the body for card create and update. On update, empty
// fields keep their stored values.
type CardRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
}

// ListCards returns every card ordered by creation date, most recent first.
func (h *CardHandler) ListCards(c *gin.Context) {
	cards, err := h.cardService.List()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch cards")
		return
	}

	c.JSON(http.StatusOK, dto.ToCardDTOs(cards))
}

// GetCard returns a single card with its author and comments.
func (h *CardHandler) GetCard(c *gin.Context) {
	cardID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.NotFound(c, fmt.Sprintf("Card not found with id %s", c.Param("id")))
		return
	}

	card, err := h.cardService.Get(cardID)
	if err != nil {
		if errors.Is(err, services.ErrCardNotFound) {
			apierrors.NotFound(c, fmt.Sprintf("Card not found with id %d", cardID))
			return
		}
		apierrors.InternalError(c, "Failed to fetch card")
		return
	}

	c.JSON(http.StatusOK, dto.ToCardDetailDTO(*card))
}

// CreateCard creates a new card owned by the authenticated user.
func (h *CardHandler) CreateCard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req CardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	card, err := h.cardService.Create(userID, services.CreateCardInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		respondCardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCardDTO(*card))
}

// UpdateCard applies a partial update to a card. Owner only.
func (h *CardHandler) UpdateCard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	cardID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.NotFound(c, fmt.Sprintf("Card not found with id %s", c.Param("id")))
		return
	}

	var req CardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	card, err := h.cardService.Update(userID, cardID, services.UpdateCardInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		respondCardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCardDTO(*card))
}

// DeleteCard removes a card and its comments. Admin only.
func (h *CardHandler) DeleteCard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	cardID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.NotFound(c, fmt.Sprintf("Card not found with id %s", c.Param("id")))
		return
	}

	card, err := h.cardService.Delete(userID, cardID)
	if err != nil {
		respondCardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Card %s was deleted successfully", card.Title),
	})
}

func respondCardError(c *gin.Context, err error) {
	var fieldErr *services.FieldError

	switch {
	case errors.As(err, &fieldErr):
		apierrors.RespondWithError(c, http.StatusBadRequest,
			apierrors.NewAPIError(apierrors.ErrCodeInvalidField, fieldErr.Reason))
	case errors.Is(err, services.ErrOngoingCardExists):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrCardNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotCardOwner),
		errors.Is(err, services.ErrCardDeleteForbidden):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
