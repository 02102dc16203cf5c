package repository

import (
	"pmupro/internal/models"

	"gorm.io/gorm"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(c *models.Client) error {
	return r.db.Create(c).Error
}

func (r *ClientRepository) GetByID(id uint) (*models.Client, error) {
	var c models.Client
	err := r.db.First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetOwned returns the client only if it belongs to the given staff user.
func (r *ClientRepository) GetOwned(id, userID uint) (*models.Client, error) {
	var c models.Client
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) ListByUserID(userID uint, limit, offset int) ([]models.Client, error) {
	var list []models.Client
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *ClientRepository) Update(c *models.Client) error {
	return r.db.Save(c).Error
}

func (r *ClientRepository) SaveAnalysis(id uint, result string) error {
	return r.db.Model(&models.Client{}).Where("id = ?", id).Update("analysis_result", result).Error
}
