// Package feed serves a toast store to remote renderers.
//
// Renderers that live outside the Go process (a browser, a native shell)
// read snapshots over HTTP or keep a WebSocket open to receive every change:
//
//	store := toast.NewStore()
//	f := feed.New(store)
//	defer f.Close()
//
//	r := chi.NewRouter()
//	r.Mount("/_sonner", f.Routes())
//
// # WebSocket Frames
//
// The server sends JSON snapshot frames on connect and after every change:
//
//	{"type": "toasts", "toasts": [...]}
//	{"type": "heights", "heights": [...]}
//
// Renderers report layout and user dismissals back on the same socket:
//
//	{"type": "height", "toastId": "3", "height": 52, "position": "bottom-right"}
//	{"type": "removeHeight", "toastId": "3"}
//	{"type": "dismiss", "id": "3"}
package feed
