// Package observe provides structured observability for plan execution.
package observe

import "time"

// Observer receives structured events during planning and apply.
type Observer interface {
	// Printf emits a free-form progress line.
	Printf(format string, v ...any)

	// Event emits a structured event.
	Event(event Event)

	// WithFields returns an Observer that attaches the given context
	// fields to every subsequent event.
	WithFields(fields map[string]string) Observer
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType
	Node      string // plan node name, if applicable
	Message   string
	Resource  string // resource name/ID if applicable
	Timestamp time.Time
	Fields    map[string]string
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventNodeStarted indicates a plan node has started executing.
	EventNodeStarted EventType = "node.started"
	// EventNodeCompleted indicates a plan node completed successfully.
	EventNodeCompleted EventType = "node.completed"
	// EventNodeFailed indicates a plan node failed.
	EventNodeFailed EventType = "node.failed"
	// EventNodeSkipped indicates a plan node was skipped because an
	// upstream dependency failed or was skipped.
	EventNodeSkipped EventType = "node.skipped"

	// EventResourceCreated indicates a resource was created.
	EventResourceCreated EventType = "resource.created"
	// EventResourceExists indicates a resource already existed.
	EventResourceExists EventType = "resource.exists"
	// EventResourceRemoved indicates a resource was removed.
	EventResourceRemoved EventType = "resource.removed"

	// EventValidationFailed indicates the compatibility gate refused
	// the fleet branch.
	EventValidationFailed EventType = "validation.failed"
	// EventSlotIgnored indicates a populated address slot was ignored
	// because the size class does not consume it.
	EventSlotIgnored EventType = "registration.slot_ignored"
)

// Nop is an Observer that discards everything. Useful in tests.
type Nop struct{}

func (Nop) Printf(string, ...any) {}

func (Nop) Event(Event) {}

func (n Nop) WithFields(map[string]string) Observer { return n }
