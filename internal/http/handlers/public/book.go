package public

import (
	"errors"
	"strconv"

	"github.com/wheat-next/internal/http/response"
	"github.com/wheat-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetBook 书籍详情
func (h *Handler) GetBook(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "书籍 ID 无效", nil)
		return
	}

	book, err := h.BookService.GetBook(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			respondError(c, response.CodeNotFound, "书籍不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "书籍查询失败", err)
		return
	}
	response.Success(c, book)
}

// ListBooks 书籍列表
func (h *Handler) ListBooks(c *gin.Context) {
	keyword := c.Query("keyword")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	books, total, err := h.BookService.ListBooks(keyword, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "书籍查询失败", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, books, pagination)
}
