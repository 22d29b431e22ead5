package lead

import (
	"context"
	"strings"

	"github.com/leadcapture/lead-service/internal/domain"
)

func (s *Service) GetByID(ctx context.Context, id string) (domain.Lead, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Lead{}, domain.ErrMissingField("id")
	}
	return s.leads.GetByID(ctx, id)
}
