package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/lead-intel/internal/auth"
	"github.com/octobees/lead-intel/internal/config"
	"github.com/octobees/lead-intel/internal/handler"
	middlewarepkg "github.com/octobees/lead-intel/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth        *handler.AuthHandler
	Leads       *handler.LeadsHandler
	AdminUpload *handler.AdminUploadHandler
	Enrich      *handler.EnrichHandler
	Fetch       *handler.FetchHandler
	Jobs        *handler.JobsHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	e.POST("/auth/register", handlers.Auth.Register)
	e.POST("/auth/login", handlers.Auth.Login)
	e.GET("/leads", handlers.Leads.List)
	e.GET("/leads/:company_name", handlers.Leads.Get)

	secured := e.Group("")
	secured.Use(middlewarepkg.JWT(jwtManager))

	admin := secured.Group("/admin", middlewarepkg.RequireRole("admin"))
	admin.POST("/upload-csv", handlers.AdminUpload.UploadCSV)

	secured.POST("/enrich", handlers.Enrich.Enrich)
	secured.POST("/signals", handlers.Enrich.Signals)
	secured.POST("/leads/fetch", handlers.Fetch.Fetch, middlewarepkg.FetchRateLimiter(cfg.RateLimitFetch))
	if handlers.Jobs != nil {
		secured.POST("/pipeline/jobs", handlers.Jobs.Enqueue)
	}
}
