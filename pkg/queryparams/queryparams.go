package queryparams

import "strings"

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// ListParams liste endpoint'lerinin query parametrelerini taşır.
type ListParams struct {
	Page    int    `query:"page"`
	PerPage int    `query:"per_page"`
	SortBy  string `query:"sort_by"`
	OrderBy string `query:"order_by"` // asc | desc
}

// DefaultListParams verilen sıralama sütunu ile varsayılan parametreleri döndürür.
func DefaultListParams(sortBy string) ListParams {
	return ListParams{
		Page:    DefaultPage,
		PerPage: DefaultPerPage,
		SortBy:  sortBy,
		OrderBy: "desc",
	}
}

// Validate limitleri uygular; geçersiz değerleri varsayılana çeker.
func (p *ListParams) Validate() {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	order := strings.ToLower(p.OrderBy)
	if order != "asc" && order != "desc" {
		order = "desc"
	}
	p.OrderBy = order
}

// Offset SQL offset değerini hesaplar.
func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// PaginationMeta sayfalama üst verisini taşır.
type PaginationMeta struct {
	CurrentPage int   `json:"currentPage"`
	PerPage     int   `json:"perPage"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
}

// PaginatedResult sayfalanmış liste cevabıdır.
type PaginatedResult struct {
	Data interface{}    `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// CalculateMeta toplam kayıt sayısından meta üretir.
func (p *ListParams) CalculateMeta(totalItems int64) PaginationMeta {
	totalPages := int((totalItems + int64(p.PerPage) - 1) / int64(p.PerPage))
	if totalPages == 0 {
		totalPages = 1
	}
	return PaginationMeta{
		CurrentPage: p.Page,
		PerPage:     p.PerPage,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
	}
}
