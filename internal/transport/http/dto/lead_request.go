package dto

import (
	"strings"
	"time"

	"github.com/leadcapture/lead-service/internal/application/lead"
	"github.com/leadcapture/lead-service/internal/domain"
)

const birthDateLayout = "2006-01-02"

// TrackingPayload carries the optional UTM/ad-click identifiers.
type TrackingPayload struct {
	UTMSource   *string `json:"utmSource,omitempty" validate:"omitempty,max=255"`
	UTMMedium   *string `json:"utmMedium,omitempty" validate:"omitempty,max=255"`
	UTMCampaign *string `json:"utmCampaign,omitempty" validate:"omitempty,max=255"`
	UTMTerm     *string `json:"utmTerm,omitempty" validate:"omitempty,max=255"`
	UTMContent  *string `json:"utmContent,omitempty" validate:"omitempty,max=255"`
	GCLID       *string `json:"gclid,omitempty" validate:"omitempty,max=255"`
	FBCLID      *string `json:"fbclid,omitempty" validate:"omitempty,max=255"`
}

func (t TrackingPayload) toDomain() domain.Tracking {
	return domain.Tracking{
		UTMSource:   t.UTMSource,
		UTMMedium:   t.UTMMedium,
		UTMCampaign: t.UTMCampaign,
		UTMTerm:     t.UTMTerm,
		UTMContent:  t.UTMContent,
		GCLID:       t.GCLID,
		FBCLID:      t.FBCLID,
	}
}

// CreateLeadRequest is the submission payload (public form and admin panel).
// Submission metadata (IP, user agent, referrer) comes from the request
// itself, never from the body.
type CreateLeadRequest struct {
	Name      string          `json:"name" validate:"required,min=2,max=100"`
	Email     string          `json:"email" validate:"required,email"`
	Phone     string          `json:"phone" validate:"required,min=10,max=20"`
	Position  string          `json:"position" validate:"required,min=2,max=100"`
	BirthDate string          `json:"birthDate" validate:"required"`
	Message   string          `json:"message,omitempty" validate:"omitempty,max=1000"`
	Tracking  TrackingPayload `json:"tracking,omitempty"`
}

// ToInput converts the request into a service input. Birth date must be
// an ISO date (YYYY-MM-DD) and may not lie in the future.
func (r *CreateLeadRequest) ToInput(now time.Time) (lead.CreateInput, error) {
	birth, err := time.Parse(birthDateLayout, strings.TrimSpace(r.BirthDate))
	if err != nil {
		return lead.CreateInput{}, domain.ErrInvalidField("birthDate", "must be a date in YYYY-MM-DD format")
	}
	if birth.After(now) {
		return lead.CreateInput{}, domain.ErrInvalidField("birthDate", "must not be in the future")
	}

	return lead.CreateInput{
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Position:  r.Position,
		BirthDate: birth,
		Message:   r.Message,
		Tracking:  r.Tracking.toDomain(),
	}, nil
}

// UpdateLeadRequest carries a partial update; only supplied fields change.
type UpdateLeadRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,min=10,max=20"`
	Position  *string `json:"position,omitempty" validate:"omitempty,min=2,max=100"`
	BirthDate *string `json:"birthDate,omitempty"`
	Message   *string `json:"message,omitempty" validate:"omitempty,max=1000"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

func (r *UpdateLeadRequest) ToUpdate(now time.Time) (domain.LeadUpdate, error) {
	u := domain.LeadUpdate{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Position: r.Position,
		Message:  r.Message,
		IsActive: r.IsActive,
	}

	if r.BirthDate != nil {
		birth, err := time.Parse(birthDateLayout, strings.TrimSpace(*r.BirthDate))
		if err != nil {
			return domain.LeadUpdate{}, domain.ErrInvalidField("birthDate", "must be a date in YYYY-MM-DD format")
		}
		if birth.After(now) {
			return domain.LeadUpdate{}, domain.ErrInvalidField("birthDate", "must not be in the future")
		}
		u.BirthDate = &birth
	}

	if u.Empty() {
		return domain.LeadUpdate{}, domain.ErrEmptyUpdate()
	}
	return u, nil
}

// ListLeadsQuery is parsed from the listing query string.
type ListLeadsQuery struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
	IsActive  *bool
	Search    string
}

func (q ListLeadsQuery) ToPage() lead.PageRequest {
	return lead.PageRequest{
		Page:      q.Page,
		Limit:     q.Limit,
		SortBy:    q.SortBy,
		SortOrder: lead.SortOrder(q.SortOrder),
	}
}

func (q ListLeadsQuery) ToFilters() lead.Filters {
	return lead.Filters{IsActive: q.IsActive, Search: q.Search}
}
