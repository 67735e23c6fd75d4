package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wheat-next/internal/cache"
	"github.com/wheat-next/internal/config"
	"github.com/wheat-next/internal/constants"
	"github.com/wheat-next/internal/logger"
	"github.com/wheat-next/internal/models"
	"github.com/wheat-next/internal/repository"

	"github.com/shopspring/decimal"
)

// PricingService 计价服务
type PricingService struct {
	bookRepo      repository.BookRepository
	promotionRepo repository.PromotionRepository
	cfg           config.PricingConfig
}

// NewPricingService 创建计价服务
func NewPricingService(bookRepo repository.BookRepository, promotionRepo repository.PromotionRepository, cfg config.PricingConfig) *PricingService {
	return &PricingService{
		bookRepo:      bookRepo,
		promotionRepo: promotionRepo,
		cfg:           cfg,
	}
}

// ComputePrice 计算应付金额：单价 * 数量 * 优惠系数。
// 结果只依赖当前价格数据，不落库。
func (s *PricingService) ComputePrice(ctx context.Context, bookID uint, binding string, count int, promotionInfo string) (models.Money, error) {
	if !isKnownBinding(binding) {
		return models.Money{}, fmt.Errorf("%w: %q", ErrUnknownBinding, binding)
	}
	if count < 1 {
		return models.Money{}, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}

	book, err := s.getBook(ctx, bookID)
	if err != nil {
		return models.Money{}, err
	}
	if book == nil {
		return models.Money{}, ErrBookNotFound
	}

	unit := bindingPrice(book, binding)
	if unit.Decimal.LessThanOrEqual(decimal.Zero) {
		// 装帧未定价视同书籍不可售
		return models.Money{}, fmt.Errorf("%w: binding %s has no price", ErrBookNotFound, binding)
	}

	amount := unit.MulInt(count)

	factor, err := s.resolveDiscount(promotionInfo)
	if err != nil {
		return models.Money{}, err
	}
	if !factor.Equal(decimal.NewFromInt(1)) {
		amount = models.NewMoneyFromDecimal(amount.Decimal.Mul(factor))
	}
	return amount, nil
}

// resolveDiscount 解析优惠口令为折扣系数。
// 测试口令只在配置开启时生效；未知口令按无优惠处理。
func (s *PricingService) resolveDiscount(promotionInfo string) (decimal.Decimal, error) {
	one := decimal.NewFromInt(1)
	code := strings.TrimSpace(promotionInfo)
	if code == "" {
		return one, nil
	}
	if s.cfg.TestMode && s.cfg.TestToken != "" && code == s.cfg.TestToken {
		return decimal.NewFromFloat(s.cfg.TestDiscount), nil
	}
	promotion, err := s.promotionRepo.GetEnabledByCode(code)
	if err != nil {
		return one, err
	}
	if promotion == nil {
		logger.Debugw("pricing_promotion_unknown", "code", code)
		return one, nil
	}
	factor := decimal.NewFromFloat(promotion.Discount)
	if factor.LessThanOrEqual(decimal.Zero) || factor.GreaterThan(one) {
		logger.Warnw("pricing_promotion_factor_invalid", "code", code, "factor", promotion.Discount)
		return one, nil
	}
	return factor, nil
}

// getBook 读取书籍，优先命中 Redis 缓存
func (s *PricingService) getBook(ctx context.Context, bookID uint) (*models.Book, error) {
	key := fmt.Sprintf("book:%d", bookID)
	var cached models.Book
	hit, err := cache.GetJSON(ctx, key, &cached)
	if err != nil {
		logger.Warnw("pricing_book_cache_read_failed", "book_id", bookID, "error", err)
	}
	if hit && cached.ID == bookID {
		return &cached, nil
	}

	book, err := s.bookRepo.GetByID(bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, nil
	}
	ttl := time.Duration(s.cfg.CacheTTLSeconds) * time.Second
	if ttl > 0 {
		if err := cache.SetJSON(ctx, key, book, ttl); err != nil {
			logger.Warnw("pricing_book_cache_write_failed", "book_id", bookID, "error", err)
		}
	}
	return book, nil
}

func isKnownBinding(binding string) bool {
	switch binding {
	case constants.BindingLiterary, constants.BindingEconomic, constants.BindingHardcover:
		return true
	default:
		return false
	}
}

func bindingPrice(book *models.Book, binding string) models.Money {
	switch binding {
	case constants.BindingLiterary:
		return book.PriceLiterary
	case constants.BindingEconomic:
		return book.PriceEconomic
	case constants.BindingHardcover:
		return book.PriceHardcover
	default:
		return models.Money{}
	}
}
