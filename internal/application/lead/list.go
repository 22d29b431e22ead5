package lead

import (
	"context"

	"github.com/leadcapture/lead-service/internal/domain"
)

// ListResult pairs a page of leads with its pagination summary.
type ListResult struct {
	Items      []domain.Lead
	Pagination Pagination
}

// List returns a page of leads. Page defaults to 1, limit is clamped to
// 1..100, sort column falls back to created_at, order defaults to desc.
func (s *Service) List(ctx context.Context, page PageRequest, f Filters) (ListResult, error) {
	page = normalizePage(page)

	leads, total, err := s.leads.List(ctx, page, f)
	if err != nil {
		return ListResult{}, err
	}

	return ListResult{
		Items: leads,
		Pagination: Pagination{
			CurrentPage:  page.Page,
			TotalPages:   totalPages(total, page.Limit),
			TotalItems:   total,
			ItemsPerPage: page.Limit,
		},
	}, nil
}

func normalizePage(p PageRequest) PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if !sortable[p.SortBy] {
		p.SortBy = "created_at"
	}
	if p.SortOrder != SortAsc {
		p.SortOrder = SortDesc
	}
	return p
}

// totalPages = ceil(total/limit); zero rows mean zero pages.
func totalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
