package repository

import "gorm.io/gorm"

// applyPagination 按页码追加 LIMIT/OFFSET，pageSize 非正时不分页。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}
