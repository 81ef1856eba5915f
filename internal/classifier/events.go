package classifier

import "sync"

// Event represents a load lifecycle event.
type Event struct {
	Name   string
	Path   string
	Fields map[string]any
}

// Event names published by Load.
const (
	EventArtifactResolved = "artifact_resolved"
	EventLoadRetry        = "load_retry"
	EventLoadFailed       = "load_failed"
	EventModelLoaded      = "model_loaded"
	EventLabelsLoaded     = "labels_loaded"
	EventLabelsDefault    = "labels_default"
)

// EventPublisher receives events from Load. Publish must not block or panic.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}

// MemoryPublisher stores events in-memory for tests.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryPublisher() *MemoryPublisher { return &MemoryPublisher{} }

func (p *MemoryPublisher) Publish(e Event) {
	p.mu.Lock()
	p.events = append(p.events, e)
	p.mu.Unlock()
}

func (p *MemoryPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}

// Names returns the event names in publish order.
func (p *MemoryPublisher) Names() []string {
	evs := p.Events()
	out := make([]string, len(evs))
	for i, e := range evs {
		out[i] = e.Name
	}
	return out
}
