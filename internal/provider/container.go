package provider

import (
	"github.com/wheat-next/internal/cache"
	"github.com/wheat-next/internal/config"
	"github.com/wheat-next/internal/logger"
	"github.com/wheat-next/internal/models"
	"github.com/wheat-next/internal/payment"
	"github.com/wheat-next/internal/payment/alipay"
	"github.com/wheat-next/internal/payment/wechatpay"
	"github.com/wheat-next/internal/queue"
	"github.com/wheat-next/internal/repository"
	"github.com/wheat-next/internal/service"

	"github.com/bwmarrin/snowflake"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	OrderRepo     repository.OrderRepository
	BookRepo      repository.BookRepository
	CarrierRepo   repository.CarrierRepository
	AddressRepo   repository.AddressRepository
	InvoiceRepo   repository.InvoiceRepository
	PromotionRepo repository.PromotionRepository

	// Payment
	PaymentRegistry *payment.Registry

	// Services
	AuthService         *service.AuthService
	PricingService      *service.PricingService
	OrderService        *service.OrderService
	NotificationService *service.NotificationService
	BookService         *service.BookService
	CarrierService      *service.CarrierService
	AddressService      *service.AddressService
	InvoiceService      *service.InvoiceService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化支付网关
	c.initPaymentRegistry()

	// 3. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.OrderRepo = repository.NewOrderRepository(db)
	c.BookRepo = repository.NewBookRepository(db)
	c.CarrierRepo = repository.NewCarrierRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
	c.InvoiceRepo = repository.NewInvoiceRepository(db)
	c.PromotionRepo = repository.NewPromotionRepository(db)
}

func (c *Container) initPaymentRegistry() {
	alipayCfg := &alipay.Config{
		AppID:           c.Config.Payment.Alipay.AppID,
		PartnerID:       c.Config.Payment.Alipay.PartnerID,
		SellerEmail:     c.Config.Payment.Alipay.SellerEmail,
		PrivateKey:      c.Config.Payment.Alipay.PrivateKey,
		AlipayPublicKey: c.Config.Payment.Alipay.AlipayPublicKey,
		SignType:        c.Config.Payment.Alipay.SignType,
		NotifyURL:       c.Config.Payment.Alipay.NotifyURL,
	}
	wechatCfg := &wechatpay.Config{
		AppID:      c.Config.Payment.Wechat.AppID,
		MchID:      c.Config.Payment.Wechat.MchID,
		APIKey:     c.Config.Payment.Wechat.APIKey,
		NotifyURL:  c.Config.Payment.Wechat.NotifyURL,
		GatewayURL: c.Config.Payment.Wechat.GatewayURL,
		TimeoutMS:  c.Config.Payment.Wechat.TimeoutMS,
	}
	c.PaymentRegistry = payment.NewRegistry(
		payment.NewAlipayProvider(alipayCfg),
		payment.NewWechatProvider(wechatCfg),
	)
	logger.Infow("provider_payment_registry_ready", "providers", c.PaymentRegistry.Names())
}

func (c *Container) initServices() {
	node, err := snowflake.NewNode(c.Config.Order.NodeID)
	if err != nil {
		logger.Errorw("provider_init_snowflake_failed", "node_id", c.Config.Order.NodeID, "error", err)
		panic(err)
	}

	c.AuthService = service.NewAuthService(c.Config)
	c.PricingService = service.NewPricingService(c.BookRepo, c.PromotionRepo, c.Config.Pricing)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CarrierRepo, c.PricingService, c.PaymentRegistry, c.QueueClient, node)
	c.NotificationService = service.NewNotificationService(c.OrderService, c.PaymentRegistry)
	c.BookService = service.NewBookService(c.BookRepo)
	c.CarrierService = service.NewCarrierService(c.CarrierRepo)
	c.AddressService = service.NewAddressService(c.AddressRepo)
	c.InvoiceService = service.NewInvoiceService(c.InvoiceRepo)
}
