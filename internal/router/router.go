package router

import (
	"fmt"
	"strings"

	"github.com/wheat-next/internal/cache"
	"github.com/wheat-next/internal/config"
	publichandlers "github.com/wheat-next/internal/http/handlers/public"
	"github.com/wheat-next/internal/http/response"
	"github.com/wheat-next/internal/logger"
	"github.com/wheat-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "wh"
	}
	redisClient := cache.Client()
	// 支付回调限流，挡住网关重试风暴和扫描流量
	notifyRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:notify", redisPrefix),
		WindowSeconds: 60,
		MaxRequests:   120,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// 认证
		auth := apiV1.Group("/auth")
		{
			auth.POST("/token", publicHandler.CreateToken)
		}

		// 公开接口
		apiV1.GET("/price/count", publicHandler.GetPrice)
		apiV1.GET("/books", publicHandler.ListBooks)
		apiV1.GET("/books/:id", publicHandler.GetBook)
		apiV1.GET("/delivery/carriers", publicHandler.ListCarriers)
		apiV1.POST("/orders", publicHandler.CreateOrder)
		apiV1.GET("/orders", publicHandler.ListOrders)
		apiV1.GET("/orders/:order_no", publicHandler.GetOrder)

		// 支付网关回调
		apiV1.POST("/orders/notify", RateLimitMiddleware(redisClient, notifyRule, KeyByIP), publicHandler.NotifyAlipay)
		apiV1.POST("/orders/wxnotify", RateLimitMiddleware(redisClient, notifyRule, KeyByIP), publicHandler.NotifyWechat)

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(JWTAuthMiddleware(cfg.JWT.SecretKey))
		{
			user.PUT("/orders/:order_no", publicHandler.UpdateOrder)
			user.DELETE("/orders/:order_no", publicHandler.DeleteOrder)
			user.POST("/delivery/carriers", publicHandler.CreateCarrier)
			user.GET("/addresses", publicHandler.ListAddresses)
			user.POST("/addresses", publicHandler.CreateAddress)
			user.PUT("/addresses/:id", publicHandler.UpdateAddress)
			user.DELETE("/addresses/:id", publicHandler.DeleteAddress)
			user.GET("/invoices", publicHandler.ListInvoices)
			user.POST("/invoices", publicHandler.CreateInvoice)
			user.PUT("/invoices/:id", publicHandler.UpdateInvoice)
			user.DELETE("/invoices/:id", publicHandler.DeleteInvoice)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "ok"})
	})

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "接口不存在")
	})

	return r
}
