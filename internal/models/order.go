package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID            uint           `gorm:"primarykey" json:"id"`                             // 主键
	OrderNo       string         `gorm:"uniqueIndex;not null" json:"order_no"`             // 订单编号，创建时生成且不复用
	BuyerID       string         `gorm:"index;not null;type:varchar(64)" json:"buyer_id"`  // 买家ID
	BookID        uint           `gorm:"index;not null" json:"book_id"`                    // 书籍ID
	Binding       string         `gorm:"not null;type:varchar(20)" json:"binding"`         // 装帧类型
	Count         int            `gorm:"not null" json:"count"`                            // 购买数量
	Amount        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"amount"` // 应付总额（含运费）
	Address       string         `gorm:"type:varchar(255)" json:"address"`                 // 收货地址
	Consignee     string         `gorm:"type:varchar(64)" json:"consignee"`                // 收货人
	Phone         string         `gorm:"type:varchar(32)" json:"phone"`                    // 联系电话
	InvoiceTitle  string         `gorm:"type:varchar(128)" json:"invoice"`                 // 发票抬头
	Note          string         `gorm:"type:varchar(255)" json:"note"`                    // 备注
	PaidType      string         `gorm:"not null;type:varchar(20)" json:"paid_type"`       // 支付方式 alipay/wechat
	TransactionID string         `gorm:"index;type:varchar(64)" json:"transaction_id"`     // 支付渠道流水号
	DeliveryID    *uint          `gorm:"index" json:"delivery_id,omitempty"`               // 承运商ID
	DeliveryPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"delivery_price"` // 运费
	Status        string         `gorm:"index;not null" json:"status"`                     // 订单状态 pending/paid
	PaidAt        *time.Time     `gorm:"index" json:"paid_at"`                             // 支付时间
	DispatchedAt  *time.Time     `json:"dispatched_at,omitempty"`                          // 发货调度时间
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                          // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                       // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                   // 软删除时间
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
