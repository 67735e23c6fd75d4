package models

import (
	"time"

	"gorm.io/gorm"
)

// DeliveryCarrier 承运商表（参考数据，被订单引用后不再变更）
type DeliveryCarrier struct {
	ID        uint           `gorm:"primarykey" json:"id"`                   // 主键
	Name      string         `gorm:"not null;type:varchar(64)" json:"name"`  // 承运商名称
	Price     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 运费
	CreatedAt time.Time      `json:"created_at"` // 创建时间
	UpdatedAt time.Time      `json:"updated_at"` // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (DeliveryCarrier) TableName() string {
	return "delivery_carriers"
}
