package dto

import "github.com/cardtrack-dev/cardtrack/internal/models"

// UserDTO represents a user in API responses. The password hash is never
// part of any outward shape.
type UserDTO struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// UserSummaryDTO is the short author shape nested inside cards and comments.
type UserSummaryDTO struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}
}

// ToUserSummaryDTO converts a User model to UserSummaryDTO
func ToUserSummaryDTO(user models.User) UserSummaryDTO {
	return UserSummaryDTO{
		Name:  user.Name,
		Email: user.Email,
	}
}
