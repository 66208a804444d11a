package replay

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/vango-dev/sonner/pkg/toast"
)

// Snapshot is the state of the store after a step.
type Snapshot struct {
	Step    int                  `json:"step"`
	Op      Op                   `json:"op"`
	ID      toast.ID             `json:"id,omitempty"`
	Toasts  []toast.Notification `json:"toasts"`
	Heights []toast.HeightRecord `json:"heights"`
}

// errScripted is the rejection of a promise step with outcome reject.
var errScripted = errors.New("scripted rejection")

// Runner replays scripts against a toaster.
type Runner struct {
	toaster *toast.Toaster
	logger  *slog.Logger
	pending []*toast.Tracked
}

// NewRunner returns a Runner driving t. A nil logger uses slog.Default.
func NewRunner(t *toast.Toaster, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{toaster: t, logger: logger.With("component", "replay")}
}

// Run executes every step of s in order and calls observe with a snapshot
// after each one. Promise steps block until they settle unless marked
// background; a wait step blocks on all background promises.
func (r *Runner) Run(ctx context.Context, s *Script, observe func(Snapshot)) error {
	defer r.waitPending(ctx)

	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		id, err := r.apply(ctx, step)
		if err != nil {
			return err
		}
		r.logger.Debug("replayed step", "step", i+1, "op", step.Op, "id", id)
		if observe != nil {
			store := r.toaster.Store()
			observe(Snapshot{
				Step:    i + 1,
				Op:      step.Op,
				ID:      id,
				Toasts:  store.Toasts(),
				Heights: store.Heights(),
			})
		}
	}
	return nil
}

func (r *Runner) apply(ctx context.Context, st Step) (toast.ID, error) {
	t := r.toaster
	data := st.data()

	switch st.Op {
	case OpMessage:
		return t.Message(st.Message, data), nil
	case OpSuccess:
		return t.Success(st.Message, data), nil
	case OpError:
		return t.Error(st.Message, data), nil
	case OpInfo:
		return t.Info(st.Message, data), nil
	case OpWarning:
		return t.Warning(st.Message, data), nil
	case OpLoading:
		return t.Loading(st.Message, data), nil
	case OpCreate:
		if st.Message != "" {
			data.Message = toast.Text(st.Message)
		}
		data.Kind = st.Kind
		return t.Store().Create(data), nil
	case OpCustom:
		return t.Custom(toast.Renderable{Component: st.Component, Props: st.Props}, data), nil
	case OpDismiss:
		id, _ := t.Dismiss(st.ID)
		return id, nil
	case OpHeight:
		t.Store().SetHeight(toast.HeightRecord{ToastID: st.ID, Height: st.Height, Position: st.Position})
		return st.ID, nil
	case OpRemoveHeight:
		t.Store().RemoveHeight(st.ID)
		return st.ID, nil
	case OpReset:
		t.Store().Reset()
		return "", nil
	case OpPromise:
		return r.promise(ctx, st), nil
	case OpWait:
		r.waitPending(ctx)
		return "", ctx.Err()
	case OpSleep:
		return "", sleep(ctx, st.Delay)
	}
	// Validate rejects anything else.
	return "", nil
}

func (r *Runner) promise(ctx context.Context, st Step) toast.ID {
	pd := &toast.PromiseData{ID: st.ID}
	if st.Loading != "" {
		pd.Loading = toast.Text(st.Loading)
	}
	if st.Success != "" {
		pd.Success = toast.Text(st.Success)
	}
	if st.Error != "" {
		pd.Error = toast.Text(st.Error)
	}
	if st.Description != "" {
		pd.Description = toast.Text(st.Description)
	}

	src := toast.Go(ctx, func(ctx context.Context) (any, error) {
		if err := sleep(ctx, st.Delay); err != nil {
			return nil, err
		}
		switch st.Outcome {
		case OutcomeReject:
			return nil, errScripted
		case OutcomeHTTPError:
			return map[string]any{"ok": false, "status": st.Status}, nil
		}
		return st.Value, nil
	})

	tracked := r.toaster.Promise(ctx, src, pd)
	if st.Background {
		r.pending = append(r.pending, tracked)
	} else {
		tracked.Wait()
	}
	id, _ := tracked.ID()
	return id
}

func (r *Runner) waitPending(ctx context.Context) {
	for _, t := range r.pending {
		select {
		case <-t.Done():
		case <-ctx.Done():
			return
		}
	}
	r.pending = nil
}

func (st Step) data() toast.Data {
	d := toast.Data{
		ID:          st.ID,
		Dismissable: st.Dismissable,
		Duration:    st.Duration,
		Fields:      st.Fields,
	}
	if st.Description != "" {
		d.Description = toast.Text(st.Description)
	}
	return d
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
