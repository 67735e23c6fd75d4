package models

import (
	"time"

	"gorm.io/gorm"
)

// Invoice 发票抬头表
type Invoice struct {
	ID        uint           `gorm:"primarykey" json:"id"`                           // 主键
	UserID    string         `gorm:"index;not null;type:varchar(64)" json:"user_id"` // 所属用户
	Title     string         `gorm:"not null;type:varchar(128)" json:"title"`        // 发票抬头
	TaxNo     string         `gorm:"type:varchar(64)" json:"tax_no"`                 // 税号
	IsDefault bool           `gorm:"index;not null;default:false" json:"is_default"` // 默认抬头，同一用户互斥
	CreatedAt time.Time      `json:"created_at"` // 创建时间
	UpdatedAt time.Time      `json:"updated_at"` // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Invoice) TableName() string {
	return "invoices"
}
