package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/wheat-next/internal/models"
	"github.com/wheat-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newInvoiceService(t *testing.T, name string) *InvoiceService {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Invoice{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	models.DB = db
	return NewInvoiceService(repository.NewInvoiceRepository(db))
}

func TestCreateInvoiceDefaultExclusive(t *testing.T) {
	svc := newInvoiceService(t, "invoice_default")

	if _, err := svc.CreateInvoice("user-1", InvoiceInput{Title: "个人", IsDefault: true}); err != nil {
		t.Fatalf("create invoice failed: %v", err)
	}
	second, err := svc.CreateInvoice("user-1", InvoiceInput{
		Title:     "上海某科技有限公司",
		TaxNo:     "91310000MA1FL0000X",
		IsDefault: true,
	})
	if err != nil {
		t.Fatalf("create invoice failed: %v", err)
	}

	invoices, err := svc.ListInvoices("user-1")
	if err != nil {
		t.Fatalf("list invoices failed: %v", err)
	}
	defaults := 0
	for _, invoice := range invoices {
		if invoice.IsDefault {
			defaults++
			if invoice.ID != second.ID {
				t.Fatalf("default should move to the newest invoice")
			}
		}
	}
	if defaults != 1 {
		t.Fatalf("expected exactly one default invoice, got %d", defaults)
	}
}

func TestInvoiceValidation(t *testing.T) {
	svc := newInvoiceService(t, "invoice_validate")

	if _, err := svc.CreateInvoice("", InvoiceInput{Title: "个人"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for missing user, got %v", err)
	}
	if _, err := svc.CreateInvoice("user-1", InvoiceInput{}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for missing title, got %v", err)
	}
}

func TestUpdateInvoiceNotFound(t *testing.T) {
	svc := newInvoiceService(t, "invoice_update_missing")

	if _, err := svc.UpdateInvoice("user-1", 404, InvoiceInput{Title: "个人"}); !errors.Is(err, ErrInvoiceNotFound) {
		t.Fatalf("expected invoice not found, got %v", err)
	}
}

func TestDeleteInvoiceScopedToUser(t *testing.T) {
	svc := newInvoiceService(t, "invoice_delete")

	invoice, err := svc.CreateInvoice("user-1", InvoiceInput{Title: "个人"})
	if err != nil {
		t.Fatalf("create invoice failed: %v", err)
	}
	if err := svc.DeleteInvoice("user-2", invoice.ID); !errors.Is(err, ErrInvoiceNotFound) {
		t.Fatalf("other user must not delete the invoice, got %v", err)
	}
	if err := svc.DeleteInvoice("user-1", invoice.ID); err != nil {
		t.Fatalf("delete invoice failed: %v", err)
	}
}
