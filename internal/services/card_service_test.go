package services

import (
	"testing"

	"github.com/cardtrack-dev/cardtrack/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr string
	}{
		{"valid", "Deploy the api", ""},
		{"valid with digits", "Sprint 42", ""},
		{"minimum length", "ok", ""},
		{"empty", "", "title is required"},
		{"one character", "a", "title must be at least 2 characters long"},
		{"punctuation", "hello!", "title must contain only letters, numbers and spaces"},
		{"unicode", "tâche", "title must contain only letters, numbers and spaces"},
		{"underscore", "do_it", "title must contain only letters, numbers and spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTitle(tt.title)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			var fieldErr *FieldError
			assert.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, "title", fieldErr.Field)
			assert.Equal(t, tt.wantErr, fieldErr.Reason)
		})
	}
}

func TestCardStatusValid(t *testing.T) {
	for _, status := range []models.CardStatus{
		models.StatusToDo,
		models.StatusDone,
		models.StatusOngoing,
		models.StatusTesting,
		models.StatusDeployed,
	} {
		assert.True(t, status.Valid(), string(status))
	}

	assert.False(t, models.CardStatus("Blocked").Valid())
	// Case matters
	assert.False(t, models.CardStatus("ongoing").Valid())
	assert.False(t, models.CardStatus("").Valid())
}

func TestCardPriorityValid(t *testing.T) {
	for _, priority := range []models.CardPriority{
		models.PriorityLow,
		models.PriorityMedium,
		models.PriorityHigh,
		models.PriorityUrgent,
	} {
		assert.True(t, priority.Valid(), string(priority))
	}

	assert.False(t, models.CardPriority("Critical").Valid())
	assert.False(t, models.CardPriority("").Valid())
}
