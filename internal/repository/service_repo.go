package repository

import (
	"pmupro/internal/models"

	"gorm.io/gorm"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) Create(s *models.StudioService) error {
	return r.db.Create(s).Error
}

func (r *ServiceRepository) GetByID(id uint) (*models.StudioService, error) {
	var s models.StudioService
	err := r.db.First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ServiceRepository) ListActive() ([]models.StudioService, error) {
	var list []models.StudioService
	err := r.db.Where("active = ?", true).Order("name ASC").Find(&list).Error
	return list, err
}

func (r *ServiceRepository) Update(s *models.StudioService) error {
	return r.db.Save(s).Error
}

func (r *ServiceRepository) Deactivate(id uint) error {
	return r.db.Model(&models.StudioService{}).Where("id = ?", id).Update("active", false).Error
}
