package service

import (
	"math"
	"strconv"
)

// Pagination 分页参数，均由查询字符串转换而来
type Pagination struct {
	Page  int
	Limit int
}

// PageInfo 分页结果
type PageInfo struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

// Pager 分页规则：默认每页条数与上限
type Pager struct {
	DefaultLimit int
	MaxLimit     int
}

// DefaultPager 未配置时的分页规则
var DefaultPager = Pager{DefaultLimit: 10, MaxLimit: 100}

// Parse 将原始字符串转换为分页参数，无法解析或小于 1 时取默认值
func (p Pager) Parse(page, limit string) Pagination {
	return p.normalize(Pagination{Page: atoiOr(page, 1), Limit: atoiOr(limit, 0)})
}

func (p Pager) normalize(in Pagination) Pagination {
	def := p.DefaultLimit
	if def < 1 {
		def = DefaultPager.DefaultLimit
	}
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 {
		in.Limit = def
	}
	if p.MaxLimit > 0 && in.Limit > p.MaxLimit {
		in.Limit = p.MaxLimit
	}
	// 保证 (page-1)*limit 不溢出
	if maxPage := math.MaxInt / in.Limit; in.Page > maxPage {
		in.Page = maxPage
	}
	return in
}

// Offset 跳过的记录数 (page-1)*limit
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Info 根据总数计算分页结果，pages = ceil(total/limit)
func (p Pagination) Info(total int64) PageInfo {
	pages := 0
	if p.Limit > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return PageInfo{Total: total, Page: p.Page, Pages: pages}
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
