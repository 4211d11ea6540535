package dto

import "lead_backend/internal/feature/lead/domain/entity"

// PaginationRes is the pagination block of a lead listing.
type PaginationRes struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// ListRes is the body of GET /api/leads.
type ListRes struct {
	Success    bool          `json:"success"`
	Data       []entity.Lead `json:"data"`
	Pagination PaginationRes `json:"pagination"`
}

// NewListRes converts a usecase result into the response body.
func NewListRes(r entity.Result) ListRes {
	return ListRes{
		Success: true,
		Data:    r.Leads,
		Pagination: PaginationRes{
			Page:       r.Page,
			Limit:      r.Limit,
			Total:      r.Total,
			TotalPages: r.TotalPages,
		},
	}
}
