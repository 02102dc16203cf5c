package repository

import (
	"pmupro/internal/models"

	"gorm.io/gorm"
)

type CalendarRepository struct {
	db *gorm.DB
}

func NewCalendarRepository(db *gorm.DB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

func (r *CalendarRepository) GetByUserID(userID uint) (*models.CalendarAccount, error) {
	var a models.CalendarAccount
	err := r.db.Where("user_id = ?", userID).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Upsert stores or replaces the user's connected calendar account.
func (r *CalendarRepository) Upsert(a *models.CalendarAccount) error {
	existing, err := r.GetByUserID(a.UserID)
	if err != nil {
		return r.db.Create(a).Error
	}
	a.ID = existing.ID
	return r.db.Save(a).Error
}

func (r *CalendarRepository) Delete(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.CalendarAccount{}).Error
}
