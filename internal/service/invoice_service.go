package service

import (
	"fmt"
	"strings"

	"github.com/wheat-next/internal/models"
	"github.com/wheat-next/internal/repository"

	"gorm.io/gorm"
)

// InvoiceService 发票抬头服务
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
}

// NewInvoiceService 创建发票服务
func NewInvoiceService(invoiceRepo repository.InvoiceRepository) *InvoiceService {
	return &InvoiceService{invoiceRepo: invoiceRepo}
}

// InvoiceInput 发票抬头写入输入
type InvoiceInput struct {
	Title     string
	TaxNo     string
	IsDefault bool
}

// CreateInvoice 创建发票抬头，默认抬头同用户互斥
func (s *InvoiceService) CreateInvoice(userID string, input InvoiceInput) (*models.Invoice, error) {
	if err := validateInvoiceInput(userID, input); err != nil {
		return nil, err
	}
	invoice := &models.Invoice{
		UserID:    userID,
		Title:     strings.TrimSpace(input.Title),
		TaxNo:     strings.TrimSpace(input.TaxNo),
		IsDefault: input.IsDefault,
	}
	if err := models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.invoiceRepo.WithTx(tx)
		if err := repo.Create(invoice); err != nil {
			return err
		}
		if invoice.IsDefault {
			return repo.ClearDefault(userID, invoice.ID)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return invoice, nil
}

// ListInvoices 用户发票抬头列表
func (s *InvoiceService) ListInvoices(userID string) ([]models.Invoice, error) {
	return s.invoiceRepo.ListByUser(userID)
}

// UpdateInvoice 更新用户发票抬头
func (s *InvoiceService) UpdateInvoice(userID string, id uint, input InvoiceInput) (*models.Invoice, error) {
	if err := validateInvoiceInput(userID, input); err != nil {
		return nil, err
	}
	invoice, err := s.invoiceRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}
	invoice.Title = strings.TrimSpace(input.Title)
	invoice.TaxNo = strings.TrimSpace(input.TaxNo)
	invoice.IsDefault = input.IsDefault
	if err := models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.invoiceRepo.WithTx(tx)
		if err := repo.Update(invoice); err != nil {
			return err
		}
		if invoice.IsDefault {
			return repo.ClearDefault(userID, invoice.ID)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return invoice, nil
}

// DeleteInvoice 删除用户发票抬头
func (s *InvoiceService) DeleteInvoice(userID string, id uint) error {
	ok, err := s.invoiceRepo.SoftDelete(id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvoiceNotFound
	}
	return nil
}

func validateInvoiceInput(userID string, input InvoiceInput) error {
	var missing []string
	if strings.TrimSpace(userID) == "" {
		missing = append(missing, "user_id")
	}
	if strings.TrimSpace(input.Title) == "" {
		missing = append(missing, "title")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}
