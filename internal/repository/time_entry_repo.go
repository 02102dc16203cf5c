package repository

import (
	"pmupro/internal/models"

	"gorm.io/gorm"
)

type TimeEntryRepository struct {
	db *gorm.DB
}

func NewTimeEntryRepository(db *gorm.DB) *TimeEntryRepository {
	return &TimeEntryRepository{db: db}
}

func (r *TimeEntryRepository) Create(e *models.TimeEntry) error {
	return r.db.Create(e).Error
}

// GetOpen returns the user's entry with no clock-out, if any.
func (r *TimeEntryRepository) GetOpen(userID uint) (*models.TimeEntry, error) {
	var e models.TimeEntry
	err := r.db.Where("user_id = ? AND clock_out_at IS NULL", userID).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *TimeEntryRepository) Update(e *models.TimeEntry) error {
	return r.db.Save(e).Error
}

func (r *TimeEntryRepository) ListByUserID(userID uint, limit, offset int) ([]models.TimeEntry, error) {
	var list []models.TimeEntry
	err := r.db.Where("user_id = ?", userID).Order("clock_in_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}
