package service

import (
	"fmt"
	"strings"

	"github.com/wheat-next/internal/logger"
	"github.com/wheat-next/internal/models"
	"github.com/wheat-next/internal/repository"

	"github.com/shopspring/decimal"
)

// CarrierService 承运商服务
type CarrierService struct {
	carrierRepo repository.CarrierRepository
}

// NewCarrierService 创建承运商服务
func NewCarrierService(carrierRepo repository.CarrierRepository) *CarrierService {
	return &CarrierService{carrierRepo: carrierRepo}
}

// ListCarriers 承运商列表
func (s *CarrierService) ListCarriers() ([]models.DeliveryCarrier, error) {
	return s.carrierRepo.List()
}

// CreateCarrier 创建承运商
func (s *CarrierService) CreateCarrier(name string, price models.Money) (*models.DeliveryCarrier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrValidation)
	}
	if price.Decimal.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: negative price", ErrValidation)
	}
	carrier := &models.DeliveryCarrier{
		Name:  name,
		Price: price,
	}
	if err := s.carrierRepo.Create(carrier); err != nil {
		return nil, err
	}
	logger.Infow("carrier_created", "carrier_id", carrier.ID, "name", carrier.Name)
	return carrier, nil
}
