package models

import (
	"time"

	"gorm.io/gorm"
)

// Book 书籍表
type Book struct {
	ID             uint           `gorm:"primarykey" json:"id"`                      // 主键
	Title          string         `gorm:"not null;type:varchar(128)" json:"title"`   // 书名
	Author         string         `gorm:"type:varchar(64)" json:"author"`            // 作者
	PriceLiterary  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_literary"`  // 文艺版单价
	PriceEconomic  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_economic"`  // 经济版单价
	PriceHardcover Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_hardcover"` // 精装版单价
	CreatedAt      time.Time      `json:"created_at"` // 创建时间
	UpdatedAt      time.Time      `json:"updated_at"` // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Book) TableName() string {
	return "books"
}
