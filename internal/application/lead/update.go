package lead

import (
	"context"
	"strings"

	"github.com/leadcapture/lead-service/internal/domain"
)

// Update merges the supplied fields into an existing lead. A changed email
// is re-checked for uniqueness excluding the lead itself.
func (s *Service) Update(ctx context.Context, id string, u domain.LeadUpdate) (domain.Lead, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Lead{}, domain.ErrMissingField("id")
	}
	if u.Empty() {
		return domain.Lead{}, domain.ErrEmptyUpdate()
	}

	if u.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*u.Email))
		if email == "" {
			return domain.Lead{}, domain.ErrInvalidField("email", "empty")
		}
		u.Email = &email

		exists, err := s.leads.EmailExists(ctx, email, id)
		if err != nil {
			return domain.Lead{}, err
		}
		if exists {
			return domain.Lead{}, domain.ErrEmailAlreadyExists()
		}
	}

	return s.leads.Update(ctx, id, u)
}
