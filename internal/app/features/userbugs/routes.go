// internal/app/features/userbugs/routes.go
package userbugs

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted under /userbugs.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Route("/{email}", func(r chi.Router) {
		r.Get("/assigned", h.Assigned)
		r.Get("/flagged", h.Flagged)
		r.Get("/commented", h.Commented)
		r.Get("/closed", h.Closed)
	})
	return r
}
