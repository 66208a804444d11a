package toast

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var (
	// ErrRejected is the rejection reported by Future.Reject(nil).
	ErrRejected = errors.New("toast: rejected")

	// ErrNoSource is the rejection reported when there is nothing to await.
	ErrNoSource = errors.New("toast: no source")
)

// Source is the eventual outcome of an operation tracked by Promise.
type Source interface {
	// Await blocks until the outcome is known or ctx is done.
	Await(ctx context.Context) (any, error)
}

// Future is a Source settled once by Resolve or Reject.
type Future struct {
	done  chan struct{}
	once  sync.Once
	value any
	err   error
}

// NewFuture creates an unsettled future.
func NewFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Resolve settles the future with v. Later settlements are ignored.
func (f *Future) Resolve(v any) {
	f.once.Do(func() {
		f.value = v
		close(f.done)
	})
}

// Reject settles the future with err. Later settlements are ignored.
func (f *Future) Reject(err error) {
	if err == nil {
		err = ErrRejected
	}
	f.once.Do(func() {
		f.err = err
		close(f.done)
	})
}

// Await implements Source.
func (f *Future) Await(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Resolved returns a Source already settled with v.
func Resolved(v any) Source {
	f := NewFuture()
	f.Resolve(v)
	return f
}

// Rejected returns a Source already settled with err.
func Rejected(err error) Source {
	f := NewFuture()
	f.Reject(err)
	return f
}

// Go runs fn on a new goroutine and returns its outcome as a Source.
func Go(ctx context.Context, fn func(context.Context) (any, error)) Source {
	f := NewFuture()
	go func() {
		v, err := fn(ctx)
		if err != nil {
			f.Reject(err)
			return
		}
		f.Resolve(v)
	}()
	return f
}

// lazySource defers creating the underlying Source until first awaited.
type lazySource struct {
	once sync.Once
	fn   func() Source
	src  Source
}

// Lazy wraps a function producing a Source. fn is called at most once.
func Lazy(fn func() Source) Source {
	return &lazySource{fn: fn}
}

func (l *lazySource) Await(ctx context.Context) (any, error) {
	l.once.Do(func() {
		if l.fn != nil {
			l.src = l.fn()
		}
	})
	if l.src == nil {
		return nil, ErrNoSource
	}
	return l.src.Await(ctx)
}

// Outcome turns the result of a tracked operation into toast content.
// Text and Renderable are literal outcomes; OutcomeFunc computes one.
type Outcome interface {
	Resolve(v any) Content
}

// Resolve returns t unchanged.
func (t Text) Resolve(any) Content { return t }

// Resolve returns r unchanged.
func (r Renderable) Resolve(any) Content { return r }

// OutcomeFunc computes content from a resolved value, an HTTP error
// message (string) or a rejection (error).
type OutcomeFunc func(v any) Content

// Resolve calls f.
func (f OutcomeFunc) Resolve(v any) Content {
	if f == nil {
		return nil
	}
	return f(v)
}

// PromiseData configures Promise.
type PromiseData struct {
	// ID reuses an existing notification for the loading state.
	ID ID

	// Loading, when set, is shown immediately with the loading kind.
	Loading Content

	// Success is shown when the source resolves with anything but a failed
	// HTTP response.
	Success Outcome

	// Error is shown when the source rejects or resolves with a failed
	// HTTP response.
	Error Outcome

	// Description is resolved with the same value as the title of each
	// state (nil for loading).
	Description Outcome

	// Finally runs once the source has settled, whatever the outcome.
	Finally func()
}

// Tracked is the handle returned by Promise.
type Tracked struct {
	id    ID
	hasID bool
	done  chan struct{}
}

// ID returns the loading notification's id. ok is false when no loading
// notification was created.
func (t *Tracked) ID() (id ID, ok bool) {
	if t == nil {
		return "", false
	}
	return t.id, t.hasID
}

// Done is closed after the source settled and the store was updated.
func (t *Tracked) Done() <-chan struct{} {
	if t == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return t.done
}

// Wait blocks until Done is closed.
func (t *Tracked) Wait() {
	<-t.Done()
}

// Promise follows src with a notification. With data == nil nothing is
// tracked and nil is returned.
//
// A loading notification is created right away when data.Loading is set.
// When src settles, the same notification becomes a success or error
// toast through data.Success or data.Error. If neither applies, the
// loading notification is dismissed. A notification dismissed by the user
// while src is pending comes back when src settles.
func (s *Store) Promise(ctx context.Context, src Source, data *PromiseData) *Tracked {
	if data == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if src == nil {
		src = Rejected(ErrNoSource)
	}

	t := &Tracked{done: make(chan struct{})}
	if data.Loading != nil {
		t.id = s.Create(Data{
			ID:          data.ID,
			Kind:        KindLoading,
			Message:     data.Loading,
			Description: resolve(data.Description, nil),
		})
		t.hasID = true
	}

	go s.track(ctx, src, data, t)
	return t
}

func (s *Store) track(ctx context.Context, src Source, data *PromiseData, t *Tracked) {
	defer close(t.done)

	ctx, span := s.tracer.Start(ctx, "sonner.promise")
	defer span.End()

	id := t.id
	shouldDismiss := t.hasID

	value, err := src.Await(ctx)

	var typ EventType
	switch {
	case err != nil:
		typ = EventPromiseRejected
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if next, ok := s.transition(id, KindError, data.Error, data.Description, err); ok {
			id, shouldDismiss = next, false
		}
	default:
		if msg, failed := failedResponse(value); failed {
			typ = EventPromiseHTTPError
			span.SetStatus(codes.Error, msg)
			if next, ok := s.transition(id, KindError, data.Error, data.Description, msg); ok {
				id, shouldDismiss = next, false
			}
		} else {
			typ = EventPromiseResolved
			if next, ok := s.transition(id, KindSuccess, data.Success, data.Description, value); ok {
				id, shouldDismiss = next, false
			}
		}
	}

	span.SetAttributes(
		attribute.String("sonner.toast_id", string(id)),
		attribute.String("sonner.outcome", string(typ)),
	)
	s.logger.Debug("toast promise settled", "id", id, "outcome", typ)

	var kind Kind
	if n, ok := s.Get(id); ok {
		kind = n.Kind
	}
	s.emit(Event{Type: typ, ID: id, Kind: kind, Active: s.Len()})

	if shouldDismiss {
		s.Dismiss(id)
	}
	if data.Finally != nil {
		data.Finally()
	}
}

// transition moves id (or a new notification when id is empty) to kind.
// It does nothing when the outcome yields no content.
func (s *Store) transition(id ID, kind Kind, outcome, description Outcome, v any) (ID, bool) {
	content := resolve(outcome, v)
	if content == nil {
		return id, false
	}
	return s.Create(Data{
		ID:          id,
		Kind:        kind,
		Message:     content,
		Description: resolve(description, v),
	}), true
}

func resolve(o Outcome, v any) Content {
	if o == nil {
		return nil
	}
	return o.Resolve(v)
}

// failedResponse reports whether v looks like an HTTP response that did
// not succeed, and the message passed to the error outcome.
func failedResponse(v any) (string, bool) {
	switch r := v.(type) {
	case *http.Response:
		if r == nil || (r.StatusCode >= 200 && r.StatusCode < 300) {
			return "", false
		}
		return httpErrorMessage(r.StatusCode), true
	case interface{ OK() bool }:
		if r.OK() {
			return "", false
		}
		if sc, ok := v.(interface{ StatusCode() int }); ok {
			return httpErrorMessage(sc.StatusCode()), true
		}
		return httpErrorMessage(nil), true
	case map[string]any:
		ok, isBool := r["ok"].(bool)
		if !isBool || ok {
			return "", false
		}
		return httpErrorMessage(r["status"]), true
	}
	return "", false
}

func httpErrorMessage(status any) string {
	if status == nil {
		status = "unknown"
	}
	return fmt.Sprintf("HTTP error! status: %v", status)
}
