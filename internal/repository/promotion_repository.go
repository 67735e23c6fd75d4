package repository

import (
	"errors"

	"github.com/wheat-next/internal/models"

	"gorm.io/gorm"
)

// PromotionRepository 优惠口令数据访问接口
type PromotionRepository interface {
	Create(promotion *models.Promotion) error
	GetEnabledByCode(code string) (*models.Promotion, error)
}

// GormPromotionRepository GORM 实现
type GormPromotionRepository struct {
	db *gorm.DB
}

// NewPromotionRepository 创建优惠口令仓库
func NewPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

// Create 创建优惠口令
func (r *GormPromotionRepository) Create(promotion *models.Promotion) error {
	return r.db.Create(promotion).Error
}

// GetEnabledByCode 按口令获取启用中的优惠
func (r *GormPromotionRepository) GetEnabledByCode(code string) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.Where("code = ? AND enabled = ?", code, true).First(&promotion).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promotion, nil
}
