package api

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/trainerdesk/coach-api/docs"
	"github.com/trainerdesk/coach-api/internal/api/handler"
	"github.com/trainerdesk/coach-api/internal/api/middleware"
	"github.com/trainerdesk/coach-api/internal/core/ports"
	"github.com/trainerdesk/coach-api/internal/core/service"
	redisstore "github.com/trainerdesk/coach-api/internal/infrastructure/db/redis"
	"github.com/trainerdesk/coach-api/internal/infrastructure/db/sqlstore"
	"github.com/trainerdesk/coach-api/internal/infrastructure/http/handlers"
	"github.com/trainerdesk/coach-api/pkg/logger"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	DB *sqlx.DB
	// Redis is optional; nil disables assignment idempotency.
	Redis     *redis.Client
	JWTSecret string
	TokenTTL  time.Duration
	Logger    zerolog.Logger
	// Registerer and Gatherer back the HTTP metrics and /metrics. They
	// default to the prometheus globals.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	registerer, gatherer := deps.Registerer, deps.Gatherer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "coach",
		Subsystem:  "http",
		Registerer: registerer,
	}))

	// --- Dependencies ---
	userRepo := sqlstore.NewUserRepository(deps.DB)
	templateRepo := sqlstore.NewTemplateRepository(deps.DB)
	clientRepo := sqlstore.NewClientRepository(deps.DB)
	workoutRepo := sqlstore.NewWorkoutRepository(deps.DB)
	messageRepo := sqlstore.NewMessageRepository(deps.DB)
	metricRepo := sqlstore.NewMetricRepository(deps.DB)

	var dedup ports.AssignmentDeduper
	if deps.Redis != nil {
		dedup = redisstore.NewAssignmentDeduper(deps.Redis)
	}

	guard := service.NewOwnershipGuard(clientRepo)
	authService := service.NewAuthService(userRepo, deps.JWTSecret, deps.TokenTTL, logger.WithComponent(deps.Logger, "auth"))
	templateService := service.NewTemplateService(templateRepo, logger.WithComponent(deps.Logger, "templates"))
	clientService := service.NewClientService(clientRepo, templateRepo, workoutRepo, guard, dedup, logger.WithComponent(deps.Logger, "clients"))
	messageService := service.NewMessageService(messageRepo, guard, logger.WithComponent(deps.Logger, "messages"))
	metricService := service.NewMetricService(metricRepo, guard, logger.WithComponent(deps.Logger, "metrics"))

	authHandler := handler.NewAuthHandler(authService)
	templateHandler := handler.NewTemplateHandler(templateService)
	clientHandler := handler.NewClientHandler(clientService)
	logHandler := handler.NewLogHandler(messageService, metricService)
	requireAuth := middleware.Auth(authService)

	// --- Auth routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.PUT("/users/preferences", authHandler.UpdatePreferences, requireAuth)

	// --- Templates ---
	templates := e.Group("/templates", requireAuth)
	templates.GET("", templateHandler.List)
	templates.POST("", templateHandler.Create)
	templates.GET("/:id", templateHandler.Get)
	templates.DELETE("/:id", templateHandler.Delete)

	// --- Clients and everything scoped to one ---
	clients := e.Group("/clients", requireAuth)
	clients.GET("", clientHandler.List)
	clients.POST("", clientHandler.Create)
	clients.GET("/:id", clientHandler.Get)
	clients.DELETE("/:id", clientHandler.Delete)
	clients.POST("/:id/assign-template", clientHandler.AssignTemplate)
	clients.GET("/:id/messages", logHandler.ListMessages)
	clients.POST("/:id/messages", logHandler.CreateMessage)
	clients.GET("/:id/metrics", logHandler.ListMetrics)
	clients.POST("/:id/metrics", logHandler.CreateMetric)

	e.PUT("/client-workouts/:id", clientHandler.UpdateWorkout, requireAuth)

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger feeds Echo's request logging into zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Error != nil || v.Status >= 500 {
				event = log.Warn().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
