package repository

import (
	"errors"
	"time"

	"github.com/wheat-next/internal/constants"
	"github.com/wheat-next/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(order *models.Order) error
	GetByOrderNo(orderNo string) (*models.Order, error)
	UpdateFields(orderNo string, updates map[string]interface{}) (bool, error)
	SoftDelete(orderNo string) (bool, error)
	MarkPaid(orderNo, transactionID string, paidAt time.Time) (bool, error)
	ListByBuyer(filter OrderListFilter) ([]models.Order, int64, error)
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Create 创建订单
func (r *GormOrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// GetByOrderNo 根据订单号获取订单
func (r *GormOrderRepository) GetByOrderNo(orderNo string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Where("order_no = ?", orderNo).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// UpdateFields 更新订单的收货信息字段，返回是否命中
func (r *GormOrderRepository) UpdateFields(orderNo string, updates map[string]interface{}) (bool, error) {
	if len(updates) == 0 {
		return r.exists(orderNo)
	}
	result := r.db.Model(&models.Order{}).Where("order_no = ?", orderNo).Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}
	// Updates 未命中也可能是字段值相同，回查确认订单存在
	return r.exists(orderNo)
}

// SoftDelete 软删除订单，返回是否命中
func (r *GormOrderRepository) SoftDelete(orderNo string) (bool, error) {
	result := r.db.Where("order_no = ?", orderNo).Delete(&models.Order{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// MarkPaid 将订单从待支付置为已支付。
// 条件更新（order_no 且 status=pending），并发重复通知下至多一次生效。
func (r *GormOrderRepository) MarkPaid(orderNo, transactionID string, paidAt time.Time) (bool, error) {
	result := r.db.Model(&models.Order{}).
		Where("order_no = ? AND status = ?", orderNo, constants.OrderStatusPending).
		Updates(map[string]interface{}{
			"status":         constants.OrderStatusPaid,
			"transaction_id": transactionID,
			"paid_at":        paidAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListByBuyer 获取买家订单列表
func (r *GormOrderRepository) ListByBuyer(filter OrderListFilter) ([]models.Order, int64, error) {
	var orders []models.Order
	query := r.db.Model(&models.Order{}).Where("buyer_id = ?", filter.BuyerID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *GormOrderRepository) exists(orderNo string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Order{}).Where("order_no = ?", orderNo).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
