package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	leasingapp "github.com/aptos/backend/internal/application/leasing"
	propertyapp "github.com/aptos/backend/internal/application/property"
	reportapp "github.com/aptos/backend/internal/application/report"
	tenancyapp "github.com/aptos/backend/internal/application/tenancy"
	"github.com/aptos/backend/internal/infrastructure/auth"
	"github.com/aptos/backend/internal/infrastructure/cache"
	"github.com/aptos/backend/internal/infrastructure/config"
	"github.com/aptos/backend/internal/infrastructure/logger"
	"github.com/aptos/backend/internal/infrastructure/persistence"
	"github.com/aptos/backend/internal/infrastructure/scheduler"
	"github.com/aptos/backend/internal/interfaces/http/handler"
	"github.com/aptos/backend/internal/interfaces/http/middleware"
	"github.com/aptos/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const appVersion = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting rental backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	buildingRepo := persistence.NewGormBuildingRepository(db.DB)
	apartmentRepo := persistence.NewGormApartmentRepository(db.DB)
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	statusHistoryRepo := persistence.NewGormStatusHistoryRepository(db.DB)
	statusRuleRepo := persistence.NewGormStatusRuleRepository(db.DB)
	leaseRepo := persistence.NewGormLeaseRepository(db.DB)
	leaseHistoryRepo := persistence.NewGormLeaseHistoryRepository(db.DB)
	transitionExecutor := persistence.NewGormTransitionExecutor(db.DB)
	referenceResolver := persistence.NewHistoryReferenceDateResolver(db.DB)

	// Metrics cache, Redis with optional in-memory fallback
	cacheFactory := cache.NewMetricsCacheFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.Cache.AllowInMemoryFallback),
	)
	metricsCache, err := cacheFactory.CreateCache()
	if err != nil {
		log.Fatal("Failed to initialize metrics cache", zap.Error(err))
	}

	// Application services
	buildingService := propertyapp.NewBuildingService(buildingRepo, apartmentRepo)
	apartmentService := propertyapp.NewApartmentService(apartmentRepo, buildingRepo, leaseRepo)
	tenantService := tenancyapp.NewTenantService(tenantRepo, statusHistoryRepo, transitionExecutor)
	statusRuleService := tenancyapp.NewStatusRuleService(statusRuleRepo, tenantRepo, transitionExecutor, referenceResolver, log)
	leaseService := leasingapp.NewLeaseService(leaseRepo, leaseHistoryRepo, tenantRepo, apartmentRepo, log)
	reportService := reportapp.NewReportService(tenantRepo, statusHistoryRepo, apartmentRepo, leaseRepo, metricsCache, cfg.Cache.MetricsTTL, log)

	jwtService := auth.NewJWTService(cfg.JWT)

	// Background maintenance jobs
	maintenance, err := scheduler.NewMaintenanceScheduler(cfg.Scheduler, cfg.Retention, statusRuleService, apartmentService, statusHistoryRepo, log)
	if err != nil {
		log.Fatal("Invalid scheduler configuration", zap.Error(err))
	}
	schedulerCtx, cancelScheduler := context.WithCancel(context.Background())
	defer cancelScheduler()
	maintenance.Start(schedulerCtx)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORS(corsConfig))
	engine.Use(middleware.BodyLimit(1 << 20))

	if cfg.JWT.Secret != "" {
		engine.Use(middleware.JWTAuth(jwtService))
	} else {
		log.Warn("JWT secret not configured, API authentication is disabled")
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewSystemHandler(db, cfg.App.Name, appVersion, log))
	r.Register(handler.NewBuildingHandler(buildingService, log))
	r.Register(handler.NewApartmentHandler(apartmentService, log))
	r.Register(handler.NewTenantHandler(tenantService, log))
	r.Register(handler.NewStatusRuleHandler(statusRuleService, log))
	r.Register(handler.NewLeaseHandler(leaseService, log))
	r.Register(handler.NewReportHandler(reportService, log))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	cancelScheduler()
	if err := maintenance.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping scheduler", zap.Error(err))
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}
