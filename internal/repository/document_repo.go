package repository

import (
	"pmupro/internal/models"

	"gorm.io/gorm"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(d *models.Document) error {
	return r.db.Create(d).Error
}

func (r *DocumentRepository) GetByID(id uint) (*models.Document, error) {
	var d models.Document
	err := r.db.First(&d, id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DocumentRepository) GetOwned(id, userID uint) (*models.Document, error) {
	var d models.Document
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DocumentRepository) ListByClientID(clientID uint) ([]models.Document, error) {
	var list []models.Document
	err := r.db.Where("client_id = ?", clientID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *DocumentRepository) Update(d *models.Document) error {
	return r.db.Save(d).Error
}
