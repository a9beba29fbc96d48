package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	toolsyncUC "podelam/internal/application/toolsync/usecases"
	trainerUC "podelam/internal/application/trainer/usecases"
	"podelam/internal/infrastructure/config"
	"podelam/internal/infrastructure/ratelimit"
	"podelam/internal/infrastructure/repository"
	"podelam/internal/interfaces/http/handlers"
	"podelam/internal/interfaces/http/middleware"
	"podelam/internal/shared/db"
	"podelam/internal/shared/logger"
)

// Router wires the HTTP surface: two action-dispatch endpoints plus health.
type Router struct {
	engine         *gin.Engine
	trainerHandler *handlers.TrainerAccessHandler
	toolHandler    *handlers.ToolSessionHandler
	healthHandler  *handlers.HealthHandler
	rateLimiter    ratelimit.RateLimiter
	cfg            *config.Config
	logger         logger.Interface
}

// NewRouter builds all repositories, use cases and handlers on top of the
// shared gorm handle. Redis is only dialed when rate limiting is enabled.
func NewRouter(gormDB *gorm.DB, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	userRepo := repository.NewUserRepository(gormDB, log)
	subscriptionRepo := repository.NewSubscriptionRepository(gormDB, log)
	lockRepo := repository.NewSessionLockRepository(gormDB, log)
	sessionRepo := repository.NewSessionRepository(gormDB, log)
	toolRepo := repository.NewToolSessionRepository(gormDB, log)

	txManager := db.NewTransactionManager(gormDB)
	heartbeatTimeout := cfg.Trainer.HeartbeatTimeout()

	trainerHandler := handlers.NewTrainerAccessHandler(
		trainerUC.NewResolveUserUseCase(userRepo, log),
		trainerUC.NewGetSubscriptionUseCase(subscriptionRepo, log),
		trainerUC.NewActivatePlanUseCase(subscriptionRepo, log),
		trainerUC.NewGetLimitUseCase(subscriptionRepo, log),
		trainerUC.NewStartSessionUseCase(subscriptionRepo, lockRepo, txManager, heartbeatTimeout, log),
		trainerUC.NewHeartbeatUseCase(lockRepo, txManager, heartbeatTimeout, log),
		trainerUC.NewEndSessionUseCase(lockRepo, log),
		trainerUC.NewCheckDeviceUseCase(lockRepo, heartbeatTimeout, log),
		trainerUC.NewSaveSessionUseCase(sessionRepo, subscriptionRepo, txManager, log),
		trainerUC.NewListSessionsUseCase(sessionRepo, log),
		trainerUC.NewSessionCountUseCase(subscriptionRepo, sessionRepo, log),
		log,
	)

	toolHandler := handlers.NewToolSessionHandler(
		toolsyncUC.NewLoadRecordsUseCase(toolRepo, log),
		toolsyncUC.NewSaveRecordUseCase(toolRepo, &cfg.Sync, log),
		toolsyncUC.NewSyncRecordsUseCase(toolRepo, txManager, &cfg.Sync, log),
		log,
	)

	var limiter ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		limiter = ratelimit.NewRedisRateLimiter(client)
	}

	return &Router{
		engine:         engine,
		trainerHandler: trainerHandler,
		toolHandler:    toolHandler,
		healthHandler:  handlers.NewHealthHandler(gormDB),
		rateLimiter:    limiter,
		cfg:            cfg,
		logger:         log,
	}
}

// SetupRoutes configures all HTTP routes.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	r.engine.GET("/health", r.healthHandler.Check)

	api := r.engine.Group("/api")
	if r.cfg.RateLimit.Enabled && r.rateLimiter != nil {
		api.Use(middleware.RateLimit(r.rateLimiter, &r.cfg.RateLimit, r.logger))
	}
	{
		api.POST("/trainer-access", r.trainerHandler.Handle)
		api.POST("/tool-sessions", r.toolHandler.Handle)
	}
}

// GetEngine returns the Gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server.
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
