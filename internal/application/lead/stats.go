package lead

import (
	"context"
	"time"
)

// Stats returns the dashboard counters. "This month" starts at the first
// calendar day of the current month in the configured timezone.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	total, err := s.leads.Count(ctx, Filters{})
	if err != nil {
		return Stats{}, err
	}

	active := true
	activeCount, err := s.leads.Count(ctx, Filters{IsActive: &active})
	if err != nil {
		return Stats{}, err
	}

	now := s.now().In(s.statsLoc)
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.statsLoc)

	thisMonth, err := s.leads.CountCreatedSince(ctx, startOfMonth)
	if err != nil {
		return Stats{}, err
	}

	return Stats{
		Total:     total,
		Active:    activeCount,
		Inactive:  total - activeCount,
		ThisMonth: thisMonth,
	}, nil
}
