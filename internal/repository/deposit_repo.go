package repository

import (
	"time"

	"pmupro/internal/domain"
	"pmupro/internal/models"

	"gorm.io/gorm"
)

type DepositRepository struct {
	db *gorm.DB
}

func NewDepositRepository(db *gorm.DB) *DepositRepository {
	return &DepositRepository{db: db}
}

func (r *DepositRepository) Create(d *models.DepositPayment) error {
	return r.db.Create(d).Error
}

func (r *DepositRepository) GetByID(id uint) (*models.DepositPayment, error) {
	var d models.DepositPayment
	err := r.db.First(&d, id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetByLink resolves a deposit by its link token. Expiry is not checked here;
// expired records resolve as-is and the caller decides what to do.
func (r *DepositRepository) GetByLink(link string) (*models.DepositPayment, error) {
	var d models.DepositPayment
	err := r.db.Where("deposit_link = ?", link).First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DepositRepository) Update(d *models.DepositPayment) error {
	return r.db.Save(d).Error
}

func (r *DepositRepository) ListByUserID(userID uint) ([]models.DepositPayment, error) {
	var list []models.DepositPayment
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *DepositRepository) ListByClientID(clientID uint) ([]models.DepositPayment, error) {
	var list []models.DepositPayment
	err := r.db.Where("client_id = ?", clientID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *DepositRepository) ListAll(limit, offset int) ([]models.DepositPayment, error) {
	var list []models.DepositPayment
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

// ExpirePending bulk-transitions PENDING deposits whose link deadline passed.
// Single conditional UPDATE; safe to run repeatedly or concurrently.
func (r *DepositRepository) ExpirePending(now time.Time) (int64, error) {
	res := r.db.Model(&models.DepositPayment{}).
		Where("status = ? AND deposit_link_expires_at < ?", domain.DepositPending, now).
		Updates(map[string]interface{}{"status": domain.DepositExpired, "updated_at": now})
	return res.RowsAffected, res.Error
}
