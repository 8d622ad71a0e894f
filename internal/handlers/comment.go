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

// CommentHandler coordinates comment-related HTTP handlers.
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// CommentRequest is the body for comment create and update. On update, an
// empty message keeps the stored one.
type CommentRequest struct {
	Message string `json:"message"`
}

// CreateComment attaches a comment to a card.
func (h *CommentHandler) CreateComment(c *gin.Context) {
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

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.Create(userID, cardID, req.Message)
	if err != nil {
		if errors.Is(err, services.ErrCardNotFound) {
			apierrors.NotFound(c, fmt.Sprintf("Card not found with id %d", cardID))
			return
		}
		apierrors.InternalError(c, "Failed to create comment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// UpdateComment replaces a comment's message. Any authenticated user may
// edit any comment.
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil {
		apierrors.NotFound(c, fmt.Sprintf("Comment with id %s not found", c.Param("comment_id")))
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.Update(userID, commentID, req.Message)
	if err != nil {
		respondCommentError(c, commentID, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTO(*comment))
}

// DeleteComment removes a comment. Any authenticated user may delete any
// comment.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil {
		apierrors.NotFound(c, fmt.Sprintf("Comment with id %s not found", c.Param("comment_id")))
		return
	}

	comment, err := h.commentService.Delete(userID, commentID)
	if err != nil {
		respondCommentError(c, commentID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Comment %s deleted successfully", comment.Message),
	})
}

func respondCommentError(c *gin.Context, commentID uint64, err error) {
	switch {
	case errors.Is(err, services.ErrCommentNotFound):
		apierrors.NotFound(c, fmt.Sprintf("Comment with id %d not found", commentID))
	case errors.Is(err, services.ErrActorNotFound):
		apierrors.Forbidden(c, "")
	default:
		apierrors.InternalError(c, "")
	}
}
