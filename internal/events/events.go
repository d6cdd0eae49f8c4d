package events

import (
	"sync"
	"time"

	"github.com/taeyeong15/marketing-backend/internal/metrics"
)

// Event types published on the workflow queue so downstream notifiers can
// alert requesters and approvers.
const (
	TypeApprovalRequested = "approval.requested"
	TypeApprovalResolved  = "approval.resolved"
	TypeCampaignDeleted   = "campaign.deleted"
)

type Event struct {
	Type       string    `json:"type"`
	CampaignID int       `json:"campaign_id"`
	ApprovalID int       `json:"approval_id,omitempty"`
	Actor      string    `json:"actor"`
	Status     string    `json:"status,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ev Event) error
	Close() error
}

// InMemoryPublisher buffers events in memory. Used when no broker is
// configured and in tests.
type InMemoryPublisher struct {
	mu     sync.Mutex
	events []Event
}

func NewInMemoryPublisher() *InMemoryPublisher {
	return &InMemoryPublisher{}
}

func (p *InMemoryPublisher) Publish(ev Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	metrics.EventsPublishedTotal.Inc()
	return nil
}

func (p *InMemoryPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}

func (p *InMemoryPublisher) Close() error { return nil }
