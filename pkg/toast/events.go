package toast

// EventType names a store mutation.
type EventType string

const (
	EventCreated          EventType = "created"
	EventUpdated          EventType = "updated"
	EventDismissed        EventType = "dismissed"
	EventCleared          EventType = "cleared"
	EventReset            EventType = "reset"
	EventPromiseResolved  EventType = "promise_resolved"
	EventPromiseRejected  EventType = "promise_rejected"
	EventPromiseHTTPError EventType = "promise_http_error"
)

// Event describes one mutation of a Store.
type Event struct {
	Type EventType

	// ID is the affected notification, empty for cleared and reset.
	ID ID

	// Kind is the notification kind after the mutation, when known.
	Kind Kind

	// Active is the number of notifications after the mutation.
	Active int
}

// Observer receives store events. Observers are called synchronously on
// the mutating goroutine and must not block.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// Observe calls f.
func (f ObserverFunc) Observe(e Event) {
	f(e)
}
