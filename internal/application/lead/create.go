package lead

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/leadcapture/lead-service/internal/domain"
)

// CreateInput is everything a submission (public form or admin panel)
// provides for a new lead.
type CreateInput struct {
	Name      string
	Email     string
	Phone     string
	Position  string
	BirthDate time.Time
	Message   string

	Tracking       domain.Tracking
	SubmissionInfo domain.SubmissionInfo
}

// Create persists a new lead after the business checks: fresh email and
// minimum age at submission time.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Lead, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return domain.Lead{}, domain.ErrMissingField("email")
	}
	if strings.TrimSpace(in.SubmissionInfo.IPAddress) == "" {
		return domain.Lead{}, domain.ErrMissingField("submissionInfo.ipAddress")
	}

	// Courtesy pre-check; the store's unique index is the real guard.
	exists, err := s.leads.EmailExists(ctx, email, "")
	if err != nil {
		return domain.Lead{}, err
	}
	if exists {
		return domain.Lead{}, domain.ErrEmailAlreadyExists()
	}

	if domain.Age(in.BirthDate, s.now()) < minAge {
		return domain.Lead{}, domain.ErrUnderage()
	}

	sub := in.SubmissionInfo
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = s.now()
	}

	created, err := s.leads.Create(ctx, domain.Lead{
		ID:             uuid.NewString(),
		Name:           strings.TrimSpace(in.Name),
		Email:          email,
		Phone:          strings.TrimSpace(in.Phone),
		Position:       strings.TrimSpace(in.Position),
		BirthDate:      in.BirthDate,
		Message:        strings.TrimSpace(in.Message),
		Tracking:       in.Tracking,
		SubmissionInfo: sub,
		IsActive:       true,
	})
	if err != nil {
		return domain.Lead{}, err
	}

	evt := CreatedEvent{
		LeadID:    created.ID,
		Name:      created.Name,
		Email:     created.Email,
		CreatedAt: created.CreatedAt,
	}
	if created.Tracking.UTMSource != nil {
		evt.UTMSource = *created.Tracking.UTMSource
	}
	s.publishCreated(evt)

	return created, nil
}

func newPublishContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}
