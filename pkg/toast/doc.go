// Package toast keeps the state behind toast notifications.
//
// A Store owns two ordered registries: the notifications currently on
// screen and the rendered height of each one. Renderers subscribe to both
// and redraw whenever they change; application code talks to a Toaster,
// which mirrors the store's operations:
//
//	store := toast.NewStore()
//	t := toast.New(store)
//
//	stop := store.SubscribeToasts(func(list []toast.Notification) {
//	    render(list)
//	})
//	defer stop()
//
//	t.Success("Project deleted", toast.Data{})
//
// # Updating a Toast
//
// Creating with an id that is already present merges the supplied fields
// into the existing notification instead of adding a second one. The
// merged notification is flagged Updated, every other one is not:
//
//	id := t.Loading("Saving...", toast.Data{})
//	t.Success("Saved", toast.Data{ID: id})
//
// # Tracking Work
//
// Promise follows an asynchronous operation with a single toast that moves
// from loading to success or error:
//
//	t.Promise(ctx, toast.Lazy(func() toast.Source {
//	    return toast.Go(ctx, save)
//	}), &toast.PromiseData{
//	    Loading: toast.Text("Saving..."),
//	    Success: toast.Text("Saved"),
//	    Error: toast.OutcomeFunc(func(v any) toast.Content {
//	        return toast.Text(fmt.Sprint("Save failed: ", v))
//	    }),
//	})
//
// The store never returns errors. Failures become error-kind toasts when
// an error handler is given and are dropped otherwise.
package toast
