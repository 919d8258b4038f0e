package dashboard

import (
	"net/http"

	"github.com/AgriVista/acreage-backend/internal/middleware"
	"github.com/AgriVista/acreage-backend/internal/session"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	store := session.Store{}

	r.Get("/filters", FiltersHandler)
	r.Get("/geojson", GeoJSONHandler)
	r.Get("/summary", SummaryHandler)
	r.Get("/table", TableHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.EnsureSession(store))
		r.Get("/detail", DetailHandler)
		r.Get("/chart.png", ChartHandler)
		r.Post("/select", SelectHandler)
	})

	return r
}
