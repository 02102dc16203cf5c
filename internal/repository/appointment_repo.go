package repository

import (
	"time"

	"pmupro/internal/models"

	"gorm.io/gorm"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) Create(a *models.Appointment) error {
	return r.db.Create(a).Error
}

func (r *AppointmentRepository) GetByID(id uint) (*models.Appointment, error) {
	var a models.Appointment
	err := r.db.Preload("Client").Preload("Service").First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepository) GetOwned(id, userID uint) (*models.Appointment, error) {
	var a models.Appointment
	err := r.db.Preload("Client").Preload("Service").Where("id = ? AND user_id = ?", id, userID).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepository) Update(a *models.Appointment) error {
	return r.db.Save(a).Error
}

func (r *AppointmentRepository) ListByUserID(userID uint, from, to time.Time) ([]models.Appointment, error) {
	var list []models.Appointment
	q := r.db.Preload("Client").Preload("Service").Where("user_id = ?", userID)
	if !from.IsZero() {
		q = q.Where("starts_at >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("starts_at < ?", to)
	}
	err := q.Order("starts_at ASC").Find(&list).Error
	return list, err
}

// HasOverlap reports whether the artist already has a non-cancelled appointment
// overlapping [startsAt, endsAt).
func (r *AppointmentRepository) HasOverlap(userID uint, startsAt, endsAt time.Time, excludeID uint) (bool, error) {
	var count int64
	q := r.db.Model(&models.Appointment{}).
		Where("user_id = ? AND status = 'SCHEDULED' AND starts_at < ? AND ends_at > ?", userID, endsAt, startsAt)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}
