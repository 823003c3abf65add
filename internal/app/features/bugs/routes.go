// internal/app/features/bugs/routes.go
package bugs

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted under /bugs.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/search", h.Search)
	r.Get("/whiteboard/{tag}", h.Whiteboard)
	r.Get("/{bugID}", h.Get)
	r.Put("/{bugID}", h.Update)
	return r
}
