package models

import (
	"time"

	"gorm.io/gorm"
)

// Address 收货地址表
type Address struct {
	ID        uint           `gorm:"primarykey" json:"id"`                            // 主键
	UserID    string         `gorm:"index;not null;type:varchar(64)" json:"user_id"`  // 所属用户
	Consignee string         `gorm:"not null;type:varchar(64)" json:"consignee"`      // 收货人
	Phone     string         `gorm:"type:varchar(32)" json:"phone"`                   // 联系电话
	Detail    string         `gorm:"not null;type:varchar(255)" json:"detail"`        // 详细地址
	IsDefault bool           `gorm:"index;not null;default:false" json:"is_default"`  // 默认地址，同一用户互斥
	CreatedAt time.Time      `json:"created_at"` // 创建时间
	UpdatedAt time.Time      `json:"updated_at"` // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Address) TableName() string {
	return "addresses"
}
