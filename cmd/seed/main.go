package main

import (
	"fmt"

	"github.com/wheat-next/internal/config"
	"github.com/wheat-next/internal/logger"
	"github.com/wheat-next/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加书籍
	books := []models.Book{
		{
			Title:          "麦田里的守望者",
			Author:         "J.D. 塞林格",
			PriceLiterary:  models.NewMoneyFromDecimal(decimal.NewFromFloat(20.00)),
			PriceEconomic:  models.NewMoneyFromDecimal(decimal.NewFromFloat(12.00)),
			PriceHardcover: models.NewMoneyFromDecimal(decimal.NewFromFloat(58.00)),
		},
		{
			Title:          "百年孤独",
			Author:         "加西亚·马尔克斯",
			PriceLiterary:  models.NewMoneyFromDecimal(decimal.NewFromFloat(32.50)),
			PriceEconomic:  models.NewMoneyFromDecimal(decimal.NewFromFloat(18.00)),
			PriceHardcover: models.NewMoneyFromDecimal(decimal.NewFromFloat(79.00)),
		},
		{
			Title:          "小王子",
			Author:         "圣埃克苏佩里",
			PriceLiterary:  models.NewMoneyFromDecimal(decimal.NewFromFloat(15.00)),
			PriceEconomic:  models.NewMoneyFromDecimal(decimal.NewFromFloat(9.90)),
			PriceHardcover: models.NewMoneyFromDecimal(decimal.NewFromFloat(45.00)),
		},
	}

	for _, book := range books {
		var existing models.Book
		if err := models.DB.Where("title = ?", book.Title).First(&existing).Error; err != nil {
			// 不存在则创建
			if err := models.DB.Create(&book).Error; err != nil {
				stdLog.Printf("Failed to create book %s: %v", book.Title, err)
			} else {
				stdLog.Printf("Created book: %s", book.Title)
			}
		} else {
			existing.Author = book.Author
			existing.PriceLiterary = book.PriceLiterary
			existing.PriceEconomic = book.PriceEconomic
			existing.PriceHardcover = book.PriceHardcover
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update book %s: %v", book.Title, err)
			} else {
				stdLog.Printf("Updated book: %s", book.Title)
			}
		}
	}

	// 添加承运商
	carriers := []models.DeliveryCarrier{
		{Name: "顺丰速运", Price: models.NewMoneyFromDecimal(decimal.NewFromFloat(18.00))},
		{Name: "中通快递", Price: models.NewMoneyFromDecimal(decimal.NewFromFloat(8.00))},
		{Name: "EMS", Price: models.NewMoneyFromDecimal(decimal.NewFromFloat(12.00))},
	}

	for _, carrier := range carriers {
		var existing models.DeliveryCarrier
		if err := models.DB.Where("name = ?", carrier.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&carrier).Error; err != nil {
				stdLog.Printf("Failed to create carrier %s: %v", carrier.Name, err)
			} else {
				stdLog.Printf("Created carrier: %s", carrier.Name)
			}
		} else {
			stdLog.Printf("Carrier already exists: %s", carrier.Name)
		}
	}

	// 添加优惠口令
	promotions := []models.Promotion{
		{Code: "spring-sale", Discount: 0.85, Enabled: true},
		{Code: "reader-club", Discount: 0.90, Enabled: true},
		{Code: "expired-2025", Discount: 0.50, Enabled: false},
	}

	for _, promo := range promotions {
		var existing models.Promotion
		if err := models.DB.Where("code = ?", promo.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&promo).Error; err != nil {
				stdLog.Printf("Failed to create promotion %s: %v", promo.Code, err)
			} else {
				stdLog.Printf("Created promotion: %s", promo.Code)
			}
		} else {
			if err := models.DB.Model(&existing).
				Updates(map[string]interface{}{"discount": promo.Discount, "enabled": promo.Enabled}).Error; err != nil {
				stdLog.Printf("Failed to update promotion %s: %v", promo.Code, err)
			} else {
				stdLog.Printf("Updated promotion: %s", promo.Code)
			}
		}
	}

	fmt.Println("\n✅ Test data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 3 Books (三种装帧定价)")
	fmt.Println("- 3 Delivery carriers")
	fmt.Println("- 3 Promotions (2 enabled + 1 disabled)")
}
