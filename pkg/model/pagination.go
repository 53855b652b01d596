package model

// MaxPerPage caps any requested page size
const MaxPerPage = 200

// Pagination describes the page returned by a list endpoint
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
}

// NormalizePage clamps page and perPage into a usable range
func NormalizePage(page, perPage, defaultPerPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return page, perPage
}

// NewPagination computes the page metadata for a total row count
func NewPagination(total, page, perPage int) Pagination {
	return Pagination{
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: (total + perPage - 1) / perPage,
	}
}
