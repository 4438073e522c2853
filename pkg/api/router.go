package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"healthcheck/pkg/config"
)

// GetRouter initialises a new http router and applies all routes
func GetRouter(cfg config.Settings) http.Handler {
	r := chi.NewRouter()
	return applyRoutes(r, &handler{cfg: cfg})
}

func applyRoutes(r chi.Router, h *handler) chi.Router {
	r.Route("/", func(r chi.Router) {
		r.Get("/", h.getIndex)
		r.Get("/layout", h.getLayout)
		r.Get("/charts", h.getCharts)
		r.Get("/formulas", h.getFormulas)
	})

	return r
}
