package shared

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// NormalizePagination 约束分页参数到合法区间。
func NormalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	} else if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
