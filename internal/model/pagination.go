package model

// Pagination is the shared envelope returned by every list endpoint.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// NewPagination computes the envelope for a 1-based page.
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// ListParams carries the query parameters shared by all list endpoints.
// Entity-specific filters ride alongside in each repository call.
type ListParams struct {
	Page   int
	Limit  int
	Search string
}

// Offset converts the 1-based page into a SQL offset.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
