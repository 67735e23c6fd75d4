package repository

import (
	"errors"

	"github.com/wheat-next/internal/models"

	"gorm.io/gorm"
)

// InvoiceRepository 发票抬头数据访问接口
type InvoiceRepository interface {
	Create(invoice *models.Invoice) error
	GetByIDAndUser(id uint, userID string) (*models.Invoice, error)
	ListByUser(userID string) ([]models.Invoice, error)
	Update(invoice *models.Invoice) error
	SoftDelete(id uint, userID string) (bool, error)
	ClearDefault(userID string, exceptID uint) error
	WithTx(tx *gorm.DB) *GormInvoiceRepository
}

// GormInvoiceRepository GORM 实现
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository 创建发票仓库
func NewInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// WithTx 绑定事务
func (r *GormInvoiceRepository) WithTx(tx *gorm.DB) *GormInvoiceRepository {
	if tx == nil {
		return r
	}
	return &GormInvoiceRepository{db: tx}
}

// Create 创建发票抬头
func (r *GormInvoiceRepository) Create(invoice *models.Invoice) error {
	return r.db.Create(invoice).Error
}

// GetByIDAndUser 获取用户发票抬头
func (r *GormInvoiceRepository) GetByIDAndUser(id uint, userID string) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

// ListByUser 用户发票抬头列表
func (r *GormInvoiceRepository) ListByUser(userID string) ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := r.db.Where("user_id = ?", userID).
		Order("is_default desc, id desc").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Update 保存发票抬头
func (r *GormInvoiceRepository) Update(invoice *models.Invoice) error {
	return r.db.Save(invoice).Error
}

// SoftDelete 软删除用户发票抬头，返回是否命中
func (r *GormInvoiceRepository) SoftDelete(id uint, userID string) (bool, error) {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Invoice{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ClearDefault 清除用户其它默认抬头
func (r *GormInvoiceRepository) ClearDefault(userID string, exceptID uint) error {
	query := r.db.Model(&models.Invoice{}).Where("user_id = ? AND is_default = ?", userID, true)
	if exceptID > 0 {
		query = query.Where("id <> ?", exceptID)
	}
	return query.Update("is_default", false).Error
}
