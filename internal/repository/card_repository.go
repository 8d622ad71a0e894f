package repository

import (
	"errors"

	"github.com/cardtrack-dev/cardtrack/internal/models"
	"gorm.io/gorm"
)

// ErrOngoingConflict is returned when a write would produce a second card
// with status Ongoing.
var ErrOngoingConflict = errors.New("card repository: an ongoing card already exists")

// GormCardRepository is a GORM implementation of CardRepository
type GormCardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a new CardRepository
func NewCardRepository(db *gorm.DB) CardRepository {
	return &GormCardRepository{db: db}
}

// Create persists a new card. The Ongoing count and the insert run in one
// transaction; the partial unique index on status backstops the race, so a
// concurrent second Ongoing card surfaces here as ErrOngoingConflict instead
// of ever being observable.
func (r *GormCardRepository) Create(card *models.Card) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if card.Status == models.StatusOngoing {
			count, err := ongoingCount(tx, 0)
			if err != nil {
				return err
			}
			if count > 0 {
				return ErrOngoingConflict
			}
		}
		return tx.Create(card).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrOngoingConflict
	}
	return err
}

// FindByID finds a card by ID with optional preloading
func (r *GormCardRepository) FindByID(id uint64, preload ...string) (*models.Card, error) {
	var card models.Card
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&card, id).Error; err != nil {
		return nil, err
	}

	return &card, nil
}

// List returns all cards with their authors, newest creation date first.
// Ties on the creation timestamp break by id so the order is deterministic.
func (r *GormCardRepository) List() ([]models.Card, error) {
	var cards []models.Card
	err := r.db.
		Preload("User").
		Order("date DESC, id DESC").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// Update saves a card under the same Ongoing guard as Create, excluding the
// card's own row from the count so a card already Ongoing can be edited.
func (r *GormCardRepository) Update(card *models.Card) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if card.Status == models.StatusOngoing {
			count, err := ongoingCount(tx, card.ID)
			if err != nil {
				return err
			}
			if count > 0 {
				return ErrOngoingConflict
			}
		}
		return tx.Save(card).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrOngoingConflict
	}
	return err
}

// Delete removes a card and cascades to its comments in a transaction
func (r *GormCardRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Card{}, id).Error
	})
}

// CountOngoing counts cards with status Ongoing, excluding excludeID
func (r *GormCardRepository) CountOngoing(excludeID uint64) (int64, error) {
	return ongoingCount(r.db, excludeID)
}

func ongoingCount(tx *gorm.DB, excludeID uint64) (int64, error) {
	var count int64
	query := tx.Model(&models.Card{}).Where("status = ?", models.StatusOngoing)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
