package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pokerface/networking-api/internal/api/handler"
	"github.com/pokerface/networking-api/internal/api/middleware"
	"github.com/pokerface/networking-api/internal/core/domain"
	"github.com/pokerface/networking-api/internal/core/ports"
	"github.com/pokerface/networking-api/internal/core/service"
	mongodb "github.com/pokerface/networking-api/internal/infrastructure/db/mongo"
	redisdb "github.com/pokerface/networking-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// notifier is the async dispatcher the core services emit through;
// notifications is the feed service backing the read side.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	notifier ports.Notifier,
	notifications ports.NotificationService,
	jwtSecret string,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("pokerface"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	cardRepo := mongodb.NewCardRepository(db)
	requestRepo := mongodb.NewRevealRequestRepository(db)
	matchRepo := mongodb.NewMatchRepository(db)
	tableRepo := mongodb.NewTableRepository(db)
	sessions := redisdb.NewTableSessions(rdb)

	authService := service.NewAuthService(userRepo, jwtSecret, 24*time.Hour)
	revealService := service.NewRevealService(userRepo, cardRepo, requestRepo, matchRepo, notifier, log)
	tableService := service.NewTableService(tableRepo, userRepo, sessions, notifier, log)

	authHandler := handler.NewAuthHandler(authService)
	cardHandler := handler.NewCardHandler(revealService)
	tableHandler := handler.NewTableHandler(tableService)
	notificationHandler := handler.NewNotificationHandler(notifications)

	authMiddleware := middleware.Auth(jwtSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Command/query API ---
	v1 := e.Group("/v1", authMiddleware)

	v1.POST("/cards", cardHandler.Create)
	v1.GET("/users/:id/cards", cardHandler.ListForUser)
	v1.POST("/cards/:id/reveal-requests", cardHandler.RequestReveal)
	v1.POST("/cards/:id/retract", cardHandler.Retract)
	v1.POST("/reveal-requests/:id/respond", cardHandler.Respond)

	v1.POST("/tables", tableHandler.Create, middleware.RBAC(domain.RoleOrganizer))
	v1.GET("/tables/:id", tableHandler.Get)
	v1.POST("/tables/:id/join", tableHandler.Join)
	v1.POST("/tables/:id/leave", tableHandler.Leave)
	v1.POST("/tables/:id/end", tableHandler.End)

	v1.GET("/notifications", notificationHandler.List)
	v1.POST("/notifications/:id/read", notificationHandler.MarkRead)
	v1.POST("/notifications/read-all", notificationHandler.MarkAllRead)
	v1.DELETE("/notifications/:id", notificationHandler.Clear)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
