package lead

import (
	"context"
	"time"

	"github.com/leadcapture/lead-service/internal/domain"
)

// SortOrder is asc or desc; desc is the default.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// PageRequest carries pagination and sorting for lead listings.
type PageRequest struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder SortOrder
}

// Filters narrows lead listings.
type Filters struct {
	IsActive *bool
	Search   string // case-insensitive substring over name OR email
}

// Pagination summarizes a listing result.
type Pagination struct {
	CurrentPage  int
	TotalPages   int
	TotalItems   int
	ItemsPerPage int
}

// Stats are the aggregate lead counters for the back-office dashboard.
type Stats struct {
	Total     int
	Active    int
	Inactive  int
	ThisMonth int
}

/*
LeadRepo
--------
Persistence port for leads. The store enforces email uniqueness with its
own unique index; EmailExists is a fast-path courtesy check only.
*/
type LeadRepo interface {
	Create(ctx context.Context, l domain.Lead) (domain.Lead, error)
	GetByID(ctx context.Context, id string) (domain.Lead, error)
	List(ctx context.Context, page PageRequest, f Filters) (leads []domain.Lead, total int, err error)
	Update(ctx context.Context, id string, u domain.LeadUpdate) (domain.Lead, error)
	SetActive(ctx context.Context, id string, active bool) (domain.Lead, error)
	Delete(ctx context.Context, id string) error
	EmailExists(ctx context.Context, email, excludeID string) (bool, error)
	Count(ctx context.Context, f Filters) (int, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
}

/*
EventPublisher
--------------
Downstream notification of new leads (CRM, email digests). Publishing is
best-effort: a broker outage must never fail a submission.
*/
type EventPublisher interface {
	PublishLeadCreated(ctx context.Context, evt CreatedEvent) error
}

type CreatedEvent struct {
	LeadID    string    `json:"lead_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	UTMSource string    `json:"utm_source,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
