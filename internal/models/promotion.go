package models

import (
	"time"

	"gorm.io/gorm"
)

// Promotion 优惠口令（code -> 折扣系数）
type Promotion struct {
	ID        uint           `gorm:"primarykey" json:"id"`                              // 主键
	Code      string         `gorm:"uniqueIndex;not null;type:varchar(64)" json:"code"` // 活动口令
	Discount  float64        `gorm:"not null;default:1" json:"discount"`                // 折扣系数 (0,1]
	Enabled   bool           `gorm:"index;not null;default:true" json:"enabled"`        // 是否启用
	CreatedAt time.Time      `json:"created_at"` // 创建时间
	UpdatedAt time.Time      `json:"updated_at"` // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Promotion) TableName() string {
	return "promotions"
}
