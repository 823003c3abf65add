// internal/app/features/sprints/routes.go
package sprints

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted under /teams/{teamID}/sprints. The
// teamID URL param comes from the mount pattern.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)

	r.Route("/{sprintID}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Post("/", h.AddBug)
		r.Delete("/", h.Delete)
		r.Post("/close", h.Close)

		r.Get("/bugs", h.ListBugIDs)
		r.Put("/bugs", h.ReplaceBugs)
		r.Put("/bugs/{bugID}", h.UpdateCategory)

		r.Post("/addbugs", h.AddBugs)
		r.Delete("/removebugs", h.RemoveBugs)
		r.Post("/rollover", h.Rollover)
	})

	return r
}
