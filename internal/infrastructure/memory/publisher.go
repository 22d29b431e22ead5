package memory

import (
	"context"
	"sync"

	"github.com/leadcapture/lead-service/internal/application/lead"
)

// NoopPublisher is used when RabbitMQ is unavailable (dev) and by tests
// that want to assert on published events.
type NoopPublisher struct {
	mu     sync.Mutex
	events []lead.CreatedEvent
}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (p *NoopPublisher) PublishLeadCreated(ctx context.Context, evt lead.CreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

// Events returns a snapshot of everything published so far.
func (p *NoopPublisher) Events() []lead.CreatedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]lead.CreatedEvent, len(p.events))
	copy(out, p.events)
	return out
}
