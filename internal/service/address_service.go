package service

import (
	"fmt"
	"strings"

	"github.com/wheat-next/internal/models"
	"github.com/wheat-next/internal/repository"

	"gorm.io/gorm"
)

// AddressService 收货地址服务
type AddressService struct {
	addressRepo repository.AddressRepository
}

// NewAddressService 创建地址服务
func NewAddressService(addressRepo repository.AddressRepository) *AddressService {
	return &AddressService{addressRepo: addressRepo}
}

// AddressInput 地址写入输入
type AddressInput struct {
	Consignee string
	Phone     string
	Detail    string
	IsDefault bool
}

// CreateAddress 创建地址，设为默认时同事务清掉其它默认
func (s *AddressService) CreateAddress(userID string, input AddressInput) (*models.Address, error) {
	if err := validateAddressInput(userID, input); err != nil {
		return nil, err
	}
	address := &models.Address{
		UserID:    userID,
		Consignee: strings.TrimSpace(input.Consignee),
		Phone:     strings.TrimSpace(input.Phone),
		Detail:    strings.TrimSpace(input.Detail),
		IsDefault: input.IsDefault,
	}
	if err := models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.addressRepo.WithTx(tx)
		if err := repo.Create(address); err != nil {
			return err
		}
		if address.IsDefault {
			return repo.ClearDefault(userID, address.ID)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return address, nil
}

// ListAddresses 用户地址列表
func (s *AddressService) ListAddresses(userID string) ([]models.Address, error) {
	return s.addressRepo.ListByUser(userID)
}

// UpdateAddress 更新用户地址
func (s *AddressService) UpdateAddress(userID string, id uint, input AddressInput) (*models.Address, error) {
	if err := validateAddressInput(userID, input); err != nil {
		return nil, err
	}
	address, err := s.addressRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}
	address.Consignee = strings.TrimSpace(input.Consignee)
	address.Phone = strings.TrimSpace(input.Phone)
	address.Detail = strings.TrimSpace(input.Detail)
	address.IsDefault = input.IsDefault
	if err := models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.addressRepo.WithTx(tx)
		if err := repo.Update(address); err != nil {
			return err
		}
		if address.IsDefault {
			return repo.ClearDefault(userID, address.ID)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return address, nil
}

// DeleteAddress 删除用户地址
func (s *AddressService) DeleteAddress(userID string, id uint) error {
	ok, err := s.addressRepo.SoftDelete(id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAddressNotFound
	}
	return nil
}

func validateAddressInput(userID string, input AddressInput) error {
	var missing []string
	if strings.TrimSpace(userID) == "" {
		missing = append(missing, "user_id")
	}
	if strings.TrimSpace(input.Consignee) == "" {
		missing = append(missing, "consignee")
	}
	if strings.TrimSpace(input.Detail) == "" {
		missing = append(missing, "detail")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}
