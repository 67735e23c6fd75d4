package service

import (
	"github.com/wheat-next/internal/models"
	"github.com/wheat-next/internal/repository"
)

// BookService 书籍服务
type BookService struct {
	bookRepo repository.BookRepository
}

// NewBookService 创建书籍服务
func NewBookService(bookRepo repository.BookRepository) *BookService {
	return &BookService{bookRepo: bookRepo}
}

// GetBook 按 ID 查询书籍
func (s *BookService) GetBook(id uint) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	return book, nil
}

// ListBooks 书籍列表
func (s *BookService) ListBooks(keyword string, page, pageSize int) ([]models.Book, int64, error) {
	return s.bookRepo.List(keyword, page, pageSize)
}
