package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/resourcehub/resource-api/internal/api/handler"
	"github.com/resourcehub/resource-api/internal/api/middleware"
	"github.com/resourcehub/resource-api/internal/core/authz"
	"github.com/resourcehub/resource-api/internal/core/ports"
)

// Deps carries the constructed services and infrastructure the router needs.
// Mongo and Redis are only used by the readiness probe; tests may leave them
// nil. Registry lets tests isolate Prometheus state; nil means the default
// registry.
type Deps struct {
	AuthService     ports.AuthService
	ResourceService ports.ResourceService
	JWTSecret       string
	Logger          zerolog.Logger
	Mongo           *mongo.Database
	Redis           *redis.Client
	Registry        *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	if deps.Registry != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  "resourceapi",
			Registerer: deps.Registry,
		}))
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Registry}))
	} else {
		e.Use(echoprometheus.NewMiddleware("resourceapi"))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	resourceHandler := handler.NewResourceHandler(deps.ResourceService)
	authMiddleware := middleware.Auth(deps.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.GET("/me", authHandler.Me, authMiddleware)

	// --- Resource routes, each gated by the decision table ---
	resources := e.Group("/v1/resources", authMiddleware)
	resources.GET("", resourceHandler.List, middleware.Authorize(authz.ActionList))
	resources.GET("/:id", resourceHandler.Get, middleware.Authorize(authz.ActionRetrieve))
	resources.POST("", resourceHandler.Create, middleware.Authorize(authz.ActionCreate))
	resources.PUT("/:id", resourceHandler.Update, middleware.Authorize(authz.ActionUpdate))
	resources.PATCH("/:id", resourceHandler.Patch, middleware.Authorize(authz.ActionUpdate))
	resources.DELETE("/:id", resourceHandler.Delete, middleware.Authorize(authz.ActionDelete))

	// --- Health probes (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	if deps.Mongo != nil && deps.Redis != nil {
		healthDeps := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)
		e.GET("/health/ready", healthDeps.Readiness)
	}

	// --- API docs ---
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
