package toast

import (
	"log/slog"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/sonner/pkg/observable"
)

// tracerName is the instrumentation scope used for promise spans.
const tracerName = "github.com/vango-dev/sonner/pkg/toast"

// Store is the notification registry and the height registry.
// A Store is safe for concurrent use.
type Store struct {
	toasts  *observable.Store[[]Notification]
	heights *observable.Store[[]HeightRecord]

	ids             IDGenerator
	defaultDuration time.Duration
	logger          *slog.Logger
	observers       []Observer
	tracer          trace.Tracer
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator sets the generator used for notifications created
// without an id. Default: a fresh Counter.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) {
		if g != nil {
			s.ids = g
		}
	}
}

// WithDefaultDuration sets the duration given to new notifications that do
// not specify one.
func WithDefaultDuration(d time.Duration) Option {
	return func(s *Store) {
		s.defaultDuration = d
	}
}

// WithLogger sets the logger. Mutations are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver adds an observer that receives every store event.
func WithObserver(o Observer) Option {
	return func(s *Store) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

// WithTracer sets the tracer used for promise spans.
// Default: the global OpenTelemetry tracer provider.
func WithTracer(t trace.Tracer) Option {
	return func(s *Store) {
		if t != nil {
			s.tracer = t
		}
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		toasts:  observable.New[[]Notification](nil),
		heights: observable.New[[]HeightRecord](nil),
		ids:     NewCounter(),
		logger:  slog.Default().With("component", "toast"),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create adds a notification, or merges data into the notification that
// already has data.ID. Returns the notification's id.
func (s *Store) Create(data Data) ID {
	id := data.ID
	if id == "" {
		id = s.ids.NextID()
	}

	var (
		result  Notification
		updated bool
		active  int
	)
	s.toasts.Update(func(prev []Notification) []Notification {
		idx := indexOf(prev, id)
		if idx < 0 {
			result = newNotification(id, data, s.defaultDuration)
			next := make([]Notification, 0, len(prev)+1)
			next = append(next, result)
			next = append(next, prev...)
			active = len(next)
			return next
		}

		updated = true
		next := make([]Notification, len(prev))
		for i, n := range prev {
			if i == idx {
				n = n.merge(data)
				n.Updated = true
				result = n
			} else {
				n.Updated = false
			}
			next[i] = n
		}
		active = len(next)
		return next
	})

	typ := EventCreated
	if updated {
		typ = EventUpdated
	}
	s.logger.Debug("toast "+string(typ), "id", id, "kind", result.Kind)
	s.emit(Event{Type: typ, ID: id, Kind: result.Kind, Active: active})
	return id
}

// Dismiss removes the notification with id and returns (id, true).
// An empty id dismisses every notification and returns ("", false).
func (s *Store) Dismiss(id ID) (ID, bool) {
	if id == "" {
		s.DismissAll()
		return "", false
	}

	var (
		removed Notification
		found   bool
		active  int
	)
	s.toasts.Update(func(prev []Notification) []Notification {
		next := make([]Notification, 0, len(prev))
		for _, n := range prev {
			if n.ID == id {
				removed, found = n, true
				continue
			}
			next = append(next, n)
		}
		active = len(next)
		return next
	})

	if found {
		s.logger.Debug("toast dismissed", "id", id)
		s.emit(Event{Type: EventDismissed, ID: id, Kind: removed.Kind, Active: active})
	}
	return id, true
}

// DismissAll removes every notification. Heights are left to the
// renderer, which removes them as toasts unmount.
func (s *Store) DismissAll() {
	s.toasts.Set([]Notification{})
	s.logger.Debug("toasts cleared")
	s.emit(Event{Type: EventCleared})
}

// Message creates a default-kind notification.
func (s *Store) Message(message string, data Data) ID {
	return s.typed(KindDefault, message, data)
}

// Success creates a success notification.
func (s *Store) Success(message string, data Data) ID {
	return s.typed(KindSuccess, message, data)
}

// Error creates an error notification.
func (s *Store) Error(message string, data Data) ID {
	return s.typed(KindError, message, data)
}

// Info creates an info notification.
func (s *Store) Info(message string, data Data) ID {
	return s.typed(KindInfo, message, data)
}

// Warning creates a warning notification.
func (s *Store) Warning(message string, data Data) ID {
	return s.typed(KindWarning, message, data)
}

// Loading creates a loading notification.
func (s *Store) Loading(message string, data Data) ID {
	return s.typed(KindLoading, message, data)
}

func (s *Store) typed(kind Kind, message string, data Data) ID {
	data.Kind = kind
	data.Message = Text(message)
	return s.Create(data)
}

// Custom creates or updates a notification whose title is a component.
func (s *Store) Custom(component Renderable, data Data) ID {
	data.Message = component
	return s.Create(data)
}

// SetHeight records the rendered height of a notification. A new toast id
// is prepended; an existing one is replaced in place.
func (s *Store) SetHeight(record HeightRecord) {
	s.heights.Update(func(prev []HeightRecord) []HeightRecord {
		for i, h := range prev {
			if h.ToastID == record.ToastID {
				next := slices.Clone(prev)
				next[i] = record
				return next
			}
		}
		next := make([]HeightRecord, 0, len(prev)+1)
		next = append(next, record)
		return append(next, prev...)
	})
}

// RemoveHeight forgets the height of the notification with id.
func (s *Store) RemoveHeight(id ID) {
	s.heights.Update(func(prev []HeightRecord) []HeightRecord {
		return slices.DeleteFunc(slices.Clone(prev), func(h HeightRecord) bool {
			return h.ToastID == id
		})
	})
}

// Reset clears both registries. Call it when the view that renders the
// toasts goes away.
func (s *Store) Reset() {
	s.toasts.Set([]Notification{})
	s.heights.Set([]HeightRecord{})
	s.logger.Debug("toast store reset")
	s.emit(Event{Type: EventReset})
}

// Toasts returns a copy of the notification registry, newest first.
// Maps in the copy are not shared with the store.
func (s *Store) Toasts() []Notification {
	list := s.toasts.Get()
	out := make([]Notification, len(list))
	for i, n := range list {
		out[i] = n.clone()
	}
	return out
}

// Heights returns a copy of the height registry, newest first.
func (s *Store) Heights() []HeightRecord {
	return slices.Clone(s.heights.Get())
}

// Get returns the notification with id.
func (s *Store) Get(id ID) (Notification, bool) {
	list := s.toasts.Get()
	if i := indexOf(list, id); i >= 0 {
		return list[i].clone(), true
	}
	return Notification{}, false
}

// Len returns the number of notifications.
func (s *Store) Len() int {
	return len(s.toasts.Get())
}

// SubscribeToasts calls fn with the current notifications and again after
// every change. fn must not modify the slice.
func (s *Store) SubscribeToasts(fn func([]Notification)) (unsubscribe func()) {
	return s.toasts.Subscribe(fn)
}

// SubscribeHeights calls fn with the current heights and again after every
// change. fn must not modify the slice.
func (s *Store) SubscribeHeights(fn func([]HeightRecord)) (unsubscribe func()) {
	return s.heights.Subscribe(fn)
}

func (s *Store) emit(e Event) {
	for _, o := range s.observers {
		o.Observe(e)
	}
}

func indexOf(list []Notification, id ID) int {
	return slices.IndexFunc(list, func(n Notification) bool {
		return n.ID == id
	})
}
