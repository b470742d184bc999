package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/isqad/livelook-webinar/internal/core"
)

// AppOptions is options of the diagnostics application
type AppOptions struct {
	Session *core.WebinarSession
	Address string

	router *chi.Mux
}

// App is a local read-only diagnostics application: current session
// state and prometheus metrics
type App struct {
	AppOptions
}

// NewApp creates a new diagnostics application
func NewApp(options AppOptions) *App {
	options.router = chi.NewRouter()

	app := &App{
		options,
	}
	return app
}

// Router is function for construct http router
func (app *App) Router() http.Handler {
	app.router.Use(middleware.RealIP)
	app.router.Use(middleware.Recoverer)

	app.router.Get("/session", SessionStateHandler(app.Session))
	app.router.Method("GET", "/metrics", promhttp.Handler())

	return app.router
}

func (app *App) Start() error {
	server := &http.Server{
		Addr:              app.Address,
		Handler:           app.Router(),
		ReadHeaderTimeout: 1 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	return server.ListenAndServe()
}
