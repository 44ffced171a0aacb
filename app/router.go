package app

import (
	"net/http"

	authdomain "github.com/Black-And-White-Club/scrim-bot/app/modules/auth/domain"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler returns the HTTP surface: probes, metrics and the admin API.
func (app *App) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", app.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(app.Registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(api chi.Router) {
		app.Auth.Protect(api, authdomain.RoleViewer)
		app.Scrim.Mount(api, app.Auth)
		app.Results.Mount(api, app.Auth)
	})
	return r
}

func (app *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := app.DB.PingContext(r.Context()); err != nil {
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
