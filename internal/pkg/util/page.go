package util

import "Parlor/internal/pkg/consts"

// NormalizePage 统一分页参数：页码从 1 开始，非法页码按第 1 页处理；
// limit 非法或缺省时取默认值，并限制上限
func NormalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = consts.DefaultPageSize
	}
	if limit > consts.MaxPageSize {
		limit = consts.MaxPageSize
	}
	return page, limit
}

// PageWindow 将分页参数换算为 skip/limit 查询窗口
func PageWindow(page, limit int) (int64, int64) {
	page, limit = NormalizePage(page, limit)
	return int64(page-1) * int64(limit), int64(limit)
}
