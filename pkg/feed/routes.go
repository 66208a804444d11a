package feed

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vango-dev/sonner/pkg/toast"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 64 << 10

// Routes returns the HTTP surface of the feed.
//
//	GET    /toasts        list notifications
//	POST   /toasts        create or merge a notification
//	DELETE /toasts        dismiss all
//	DELETE /toasts/{id}   dismiss one
//	GET    /heights       list heights
//	PUT    /heights/{id}  set a height
//	DELETE /heights/{id}  remove a height
//	POST   /reset         clear both registries
//	GET    /ws            WebSocket feed
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/toasts", func(r chi.Router) {
		r.Get("/", s.listToasts)
		r.Post("/", s.createToast)
		r.Delete("/", s.dismissAll)
		r.Delete("/{id}", s.dismissToast)
	})
	r.Route("/heights", func(r chi.Router) {
		r.Get("/", s.listHeights)
		r.Put("/{id}", s.setHeight)
		r.Delete("/{id}", s.removeHeight)
	})
	r.Post("/reset", s.reset)
	r.Get("/ws", s.HandleWebSocket)

	return r
}

func (s *Server) listToasts(w http.ResponseWriter, r *http.Request) {
	list := s.store.Toasts()
	if list == nil {
		list = []toast.Notification{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) createToast(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Kind != "" && !req.Kind.Valid() {
		writeError(w, http.StatusBadRequest, "unknown kind "+string(req.Kind))
		return
	}
	if req.DurationMS < 0 {
		writeError(w, http.StatusBadRequest, "durationMs must not be negative")
		return
	}

	data := toast.Data{
		ID:          req.ID,
		Kind:        req.Kind,
		Dismissable: req.Dismissable,
		Duration:    time.Duration(req.DurationMS) * time.Millisecond,
		Fields:      req.Fields,
	}
	switch {
	case req.Component != "":
		data.Message = toast.Renderable{Component: req.Component, Props: req.Props}
	case req.Message != "":
		data.Message = toast.Text(req.Message)
	}
	if req.Description != "" {
		data.Description = toast.Text(req.Description)
	}

	id := s.store.Create(data)
	writeJSON(w, http.StatusCreated, map[string]toast.ID{"id": id})
}

func (s *Server) dismissAll(w http.ResponseWriter, r *http.Request) {
	s.store.DismissAll()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) dismissToast(w http.ResponseWriter, r *http.Request) {
	s.store.Dismiss(toast.ID(chi.URLParam(r, "id")))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listHeights(w http.ResponseWriter, r *http.Request) {
	list := s.store.Heights()
	if list == nil {
		list = []toast.HeightRecord{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) setHeight(w http.ResponseWriter, r *http.Request) {
	var req heightRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Height < 0 {
		writeError(w, http.StatusBadRequest, "height must not be negative")
		return
	}

	s.store.SetHeight(toast.HeightRecord{
		ToastID:  toast.ID(chi.URLParam(r, "id")),
		Height:   req.Height,
		Position: req.Position,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) removeHeight(w http.ResponseWriter, r *http.Request) {
	s.store.RemoveHeight(toast.ID(chi.URLParam(r, "id")))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) reset(w http.ResponseWriter, r *http.Request) {
	s.store.Reset()
	w.WriteHeader(http.StatusNoContent)
}

// decode reads a JSON body into v, answering 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
