package lead

import (
	"context"
	"strings"

	"github.com/leadcapture/lead-service/internal/domain"
)

// Delete permanently removes a lead. There is no recovery path.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrMissingField("id")
	}
	return s.leads.Delete(ctx, id)
}
