package lead

import (
	"time"

	"github.com/leadcapture/lead-service/internal/logger"
)

const (
	minAge       = 18
	defaultLimit = 10
	maxLimit     = 100
)

// sortable whitelists columns a listing may order by; anything else falls
// back to creation time.
var sortable = map[string]bool{
	"created_at": true,
	"name":       true,
	"email":      true,
	"position":   true,
}

type Service struct {
	leads LeadRepo
	pub   EventPublisher

	statsLoc *time.Location
	now      func() time.Time
}

func NewService(leads LeadRepo, pub EventPublisher, statsLoc *time.Location) *Service {
	if statsLoc == nil {
		statsLoc = time.UTC
	}
	return &Service{
		leads:    leads,
		pub:      pub,
		statsLoc: statsLoc,
		now:      time.Now,
	}
}

// WithClock overrides the service clock. Tests use it to pin "today" for
// the age boundary and stats month windows.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *Service) publishCreated(evt CreatedEvent) {
	if s.pub == nil {
		return
	}
	// Fire-and-forget: the submission already succeeded.
	go func() {
		ctx, cancel := newPublishContext()
		defer cancel()
		if err := s.pub.PublishLeadCreated(ctx, evt); err != nil {
			logger.Logger.Warn().Err(err).Str("lead_id", evt.LeadID).Msg("lead.created publish failed")
		}
	}()
}
