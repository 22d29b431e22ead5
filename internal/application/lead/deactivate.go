package lead

import (
	"context"
	"strings"

	"github.com/leadcapture/lead-service/internal/domain"
)

// Deactivate soft-deletes a lead. Idempotent: deactivating an inactive
// lead succeeds and leaves it inactive.
func (s *Service) Deactivate(ctx context.Context, id string) (domain.Lead, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Lead{}, domain.ErrMissingField("id")
	}
	return s.leads.SetActive(ctx, id, false)
}
