package repository

import (
	"errors"

	"github.com/wheat-next/internal/models"

	"gorm.io/gorm"
)

// CarrierRepository 承运商数据访问接口
type CarrierRepository interface {
	Create(carrier *models.DeliveryCarrier) error
	GetByID(id uint) (*models.DeliveryCarrier, error)
	List() ([]models.DeliveryCarrier, error)
}

// GormCarrierRepository GORM 实现
type GormCarrierRepository struct {
	db *gorm.DB
}

// NewCarrierRepository 创建承运商仓库
func NewCarrierRepository(db *gorm.DB) *GormCarrierRepository {
	return &GormCarrierRepository{db: db}
}

// Create 创建承运商
func (r *GormCarrierRepository) Create(carrier *models.DeliveryCarrier) error {
	return r.db.Create(carrier).Error
}

// GetByID 根据 ID 获取承运商
func (r *GormCarrierRepository) GetByID(id uint) (*models.DeliveryCarrier, error) {
	var carrier models.DeliveryCarrier
	if err := r.db.First(&carrier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &carrier, nil
}

// List 承运商列表
func (r *GormCarrierRepository) List() ([]models.DeliveryCarrier, error) {
	var carriers []models.DeliveryCarrier
	if err := r.db.Order("id asc").Find(&carriers).Error; err != nil {
		return nil, err
	}
	return carriers, nil
}
