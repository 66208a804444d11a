package toast

import "context"

// Toaster is the call surface for application code. It forwards to a
// Store so callers never handle the registries directly.
//
//	t := toast.New(store)
//	t.Show("Settings saved", toast.Data{})
//	t.Error("Failed to delete project", toast.Data{})
type Toaster struct {
	store *Store
}

// New returns a Toaster over store. A nil store gets a fresh one.
func New(store *Store) *Toaster {
	if store == nil {
		store = NewStore()
	}
	return &Toaster{store: store}
}

// Store returns the underlying store, for renderers.
func (t *Toaster) Store() *Store {
	return t.store
}

// Show creates a default-kind toast. It is the plain "toast(message)" call.
func (t *Toaster) Show(message string, data Data) ID {
	return t.store.Message(message, data)
}

// Message creates a default-kind toast.
func (t *Toaster) Message(message string, data Data) ID {
	return t.store.Message(message, data)
}

// Success shows a success toast.
//
//	t.Success("Changes saved!", toast.Data{})
func (t *Toaster) Success(message string, data Data) ID {
	return t.store.Success(message, data)
}

// Error shows an error toast.
//
//	t.Error("Failed to delete item", toast.Data{})
func (t *Toaster) Error(message string, data Data) ID {
	return t.store.Error(message, data)
}

// Info shows an info toast.
func (t *Toaster) Info(message string, data Data) ID {
	return t.store.Info(message, data)
}

// Warning shows a warning toast.
//
//	t.Warning("This action cannot be undone", toast.Data{})
func (t *Toaster) Warning(message string, data Data) ID {
	return t.store.Warning(message, data)
}

// Loading shows a loading toast. Update it later by passing its id to
// another call.
func (t *Toaster) Loading(message string, data Data) ID {
	return t.store.Loading(message, data)
}

// Custom shows a toast rendered by a component.
func (t *Toaster) Custom(component Renderable, data Data) ID {
	return t.store.Custom(component, data)
}

// Promise tracks src with a loading/success/error toast.
func (t *Toaster) Promise(ctx context.Context, src Source, data *PromiseData) *Tracked {
	return t.store.Promise(ctx, src, data)
}

// Dismiss closes the toast with id. An empty id closes all of them.
func (t *Toaster) Dismiss(id ID) (ID, bool) {
	return t.store.Dismiss(id)
}

// DismissAll closes every toast.
func (t *Toaster) DismissAll() {
	t.store.DismissAll()
}
