package ui

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"emvenn/adapters/venn"
	"emvenn/app"
	"emvenn/domain/run"
	"emvenn/internal"
	"emvenn/ports"
)

// App represents the HTTP application serving simulation runs
type App struct {
	router   *chi.Mux
	sim      *app.SimulationService
	reports  *app.ReportService
	runs     ports.RunRepository
	renderer *venn.Renderer
	defaults run.Parameters
	logger   *internal.Logger
}

// Config holds HTTP application configuration
type Config struct {
	Port         string
	Defaults     run.Parameters
	TemplatePath string
}

// Deps wires the application's collaborators
type Deps struct {
	Simulation *app.SimulationService
	Reports    *app.ReportService
	Runs       ports.RunRepository
	Logger     *internal.Logger
}

// NewApp creates the HTTP application
func NewApp(config Config, deps Deps) *App {
	logger := deps.Logger
	if logger == nil {
		logger = internal.DefaultLogger
	}

	a := &App{
		router:   chi.NewRouter(),
		sim:      deps.Simulation,
		reports:  deps.Reports,
		runs:     deps.Runs,
		renderer: venn.NewRenderer(config.TemplatePath),
		defaults: config.Defaults,
		logger:   logger,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Route("/api/runs", func(r chi.Router) {
		r.Post("/", a.handleCreateRun)
		r.Get("/", a.handleListRuns)
		r.Get("/{id}", a.handleGetRun)
		r.Get("/{id}/tallies", a.handleGetTallies)
		r.Get("/{id}/probability/{code}", a.handleGetProbability)
		r.Get("/{id}/report", a.handleGetReport)
		r.Get("/{id}/diagram.svg", a.handleGetDiagram)
	})
}

// Router exposes the configured router, mainly for tests
func (a *App) Router() http.Handler {
	return a.router
}

// Start runs the HTTP server on the given port
func (a *App) Start(port string) error {
	addr := fmt.Sprintf(":%s", port)
	a.logger.Info("serving on %s", addr)
	return http.ListenAndServe(addr, a.router)
}
