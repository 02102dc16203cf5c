package repository

import (
	"pmupro/internal/models"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(m *models.Message) error {
	return r.db.Create(m).Error
}

// ListRecent returns the latest messages in the staff room, newest first.
func (r *MessageRepository) ListRecent(limit, offset int) ([]models.Message, error) {
	var list []models.Message
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}
