package repository

import (
	"errors"
	"strings"

	"github.com/wheat-next/internal/models"

	"gorm.io/gorm"
)

// BookRepository 书籍数据访问接口
type BookRepository interface {
	Create(book *models.Book) error
	GetByID(id uint) (*models.Book, error)
	List(keyword string, page, pageSize int) ([]models.Book, int64, error)
}

// GormBookRepository GORM 实现
type GormBookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建书籍仓库
func NewBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

// Create 创建书籍
func (r *GormBookRepository) Create(book *models.Book) error {
	return r.db.Create(book).Error
}

// GetByID 根据 ID 获取书籍
func (r *GormBookRepository) GetByID(id uint) (*models.Book, error) {
	var book models.Book
	if err := r.db.First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &book, nil
}

// List 书籍列表，支持按书名/作者关键字模糊检索
func (r *GormBookRepository) List(keyword string, page, pageSize int) ([]models.Book, int64, error) {
	var books []models.Book
	query := r.db.Model(&models.Book{})
	if trimmed := strings.TrimSpace(keyword); trimmed != "" {
		condition, argCount := buildKeywordCondition(r.db, []string{"title", "author"})
		if argCount > 0 {
			query = query.Where(condition, keywordLikeArgs(trimmed, argCount)...)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, page, pageSize)
	if err := query.Order("id asc").Find(&books).Error; err != nil {
		return nil, 0, err
	}
	return books, total, nil
}
