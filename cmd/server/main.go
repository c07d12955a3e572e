package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	identityapp "github.com/carobar/backend/internal/application/identity"
	"github.com/carobar/backend/internal/application/refdata"
	tradeapp "github.com/carobar/backend/internal/application/trade"
	domain "github.com/carobar/backend/internal/domain/refdata"
	"github.com/carobar/backend/internal/domain/shared"
	"github.com/carobar/backend/internal/infrastructure/auth"
	"github.com/carobar/backend/internal/infrastructure/cache"
	"github.com/carobar/backend/internal/infrastructure/config"
	"github.com/carobar/backend/internal/infrastructure/logger"
	"github.com/carobar/backend/internal/infrastructure/persistence"
	"github.com/carobar/backend/internal/infrastructure/persistence/models"
	"github.com/carobar/backend/internal/infrastructure/telemetry"
	"github.com/carobar/backend/internal/interfaces/http/handler"
	"github.com/carobar/backend/internal/interfaces/http/middleware"
	"github.com/carobar/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title		Carobar Backend API
//	@version	1.0
//	@BasePath	/api/v1

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
	defer logger.Sync(log)

	log.Info("Starting Carobar backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	tp, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, version, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	dbTracing := telemetry.DefaultDBTracingConfig()
	dbTracing.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled
	dbTracing.LogFullSQL = cfg.Telemetry.DBLogFullSQL
	dbTracing.DBName = cfg.Database.DBName
	dbTracing.TracerProvider = tp.Provider()
	if err := telemetry.RegisterDBTracing(db.DB, dbTracing, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	listCache, err := cache.NewFactory(cfg.Redis, cfg.Cache, cache.WithLogger(log)).Create()
	if err != nil {
		log.Fatal("Failed to initialize cache", zap.Error(err))
	}
	// revocations need somewhere to live even when list caching is off
	sessionCache := listCache
	if sessionCache == nil {
		sessionCache = cache.NewMemoryCache(time.Minute)
	}
	defer func() {
		if err := sessionCache.Close(); err != nil {
			log.Error("Error closing cache", zap.Error(err))
		}
	}()

	revocations := auth.NewRevocations(sessionCache)
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(persistence.NewGormUserRepository(db.DB), jwtService, revocations, log)

	gin.SetMode(ginMode(cfg))
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	metrics := middleware.NewHTTPMetrics(cfg.App.Name)
	if cfg.Telemetry.MetricsEnabled {
		sqlDB, err := db.DB.DB()
		if err != nil {
			log.Fatal("Failed to access connection pool", zap.Error(err))
		}
		metrics.Registry().MustRegister(collectors.NewDBStatsCollector(sqlDB, cfg.Database.DBName))
	}

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	securityCfg := middleware.DefaultSecurityConfig()
	securityCfg.HSTSEnabled = cfg.IsProduction()

	// RequestID must precede the request logger, which reads the id from the gin context
	engine.Use(
		logger.Recovery(log),
		middleware.RequestID(),
		logger.GinMiddleware(log),
		middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName:    cfg.Telemetry.ServiceName,
			Enabled:        cfg.Telemetry.Enabled,
			TracerProvider: tp.Provider(),
		}),
		middleware.SecureWithConfig(securityCfg),
		middleware.CORSWithConfig(corsCfg),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)
	if cfg.Telemetry.MetricsEnabled {
		engine.Use(metrics.Middleware())
		engine.GET("/metrics", metrics.Handler())
	}

	systemHandler := handler.NewSystemHandler(cfg.App.Name, version, map[string]handler.Pinger{"database": db})
	engine.GET("/health", systemHandler.Health)
	engine.GET("/api/v1/health", systemHandler.Health)

	jwtCfg := middleware.DefaultJWTConfig(jwtService)
	jwtCfg.Revocations = revocations
	jwtCfg.CookieName = cfg.Cookie.Name
	jwtCfg.Logger = log

	r := router.NewRouter(engine, router.WithMiddleware(
		middleware.JWTAuthMiddlewareWithConfig(jwtCfg),
		middleware.SpanEnricher(),
	))

	authHandler := handler.NewAuthHandler(authService, cfg.Cookie)
	authRoutes := router.NewDomainGroup("auth", "/auth")
	loginHandlers := []gin.HandlerFunc{authHandler.Login}
	if cfg.HTTP.AuthRateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		defer limiter.Close()
		loginHandlers = append([]gin.HandlerFunc{middleware.RateLimit(limiter)}, loginHandlers...)
	}
	authRoutes.POST("/login", loginHandlers...)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.Me)

	services := newReferenceServices(db, listCache, cfg.Cache, log)
	referenceRoutes := router.NewDomainGroup("refdata", "").Mount(services.handlers()...)
	tradeRoutes := router.NewDomainGroup("trade", "").Mount(handler.NewTradeHandler(services.trade))

	r.Register(authRoutes).
		Register(referenceRoutes).
		Register(tradeRoutes)
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
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}

func ginMode(cfg *config.Config) string {
	if cfg.IsProduction() {
		return gin.ReleaseMode
	}
	return gin.DebugMode
}

// referenceServices holds one controller per reference entity plus the trade service
// whose ledgers guard counterparty deletion
type referenceServices struct {
	colors         refdata.Service[domain.Color]
	makers         refdata.Service[domain.Maker]
	countries      refdata.Service[domain.Country]
	counterparties refdata.Service[domain.Counterparty]
	accounts       refdata.Service[domain.Account]
	locations      refdata.Service[domain.Location]
	vehicleTypes   refdata.Service[domain.VehicleType]
	trade          *tradeapp.Service
}

func newReferenceServices(db *persistence.Database, listCache shared.Cache, cacheCfg config.CacheConfig, log *zap.Logger) *referenceServices {
	opts := []refdata.Option{refdata.WithLogger(log)}

	counterpartyStore := persistence.NewGormReferenceStore[domain.Counterparty, models.CounterpartyModel](db.DB, "name", persistence.CounterpartySortFields)
	tradeService := tradeapp.NewService(persistence.NewGormTradeRepository(db.DB), counterpartyStore, log)

	var accounts refdata.Service[domain.Account] = refdata.MustNew[domain.Account](refdata.AccountConfig(),
		persistence.NewGormReferenceStore[domain.Account, models.AccountModel](db.DB, "account_code", persistence.AccountSortFields), opts...)
	if listCache != nil {
		accounts = refdata.WithListCache(accounts, listCache, cacheCfg.AccountsTTL, log)
	}

	return &referenceServices{
		colors: refdata.MustNew[domain.Color](refdata.ColorConfig(),
			persistence.NewGormReferenceStore[domain.Color, models.ColorModel](db.DB, "color", persistence.ColorSortFields), opts...),
		makers: refdata.MustNew[domain.Maker](refdata.MakerConfig(),
			persistence.NewGormReferenceStore[domain.Maker, models.MakerModel](db.DB, "maker_name", persistence.MakerSortFields), opts...),
		countries: refdata.MustNew[domain.Country](refdata.CountryConfig(),
			persistence.NewGormReferenceStore[domain.Country, models.CountryModel](db.DB, "country_code", persistence.CountrySortFields), opts...),
		counterparties: refdata.WithDeleteGuard[domain.Counterparty](
			refdata.MustNew[domain.Counterparty](refdata.CounterpartyConfig(), counterpartyStore, opts...),
			tradeService.CounterpartyInUse),
		accounts: accounts,
		locations: refdata.MustNew[domain.Location](refdata.LocationConfig(),
			persistence.NewGormReferenceStore[domain.Location, models.LocationModel](db.DB, "location_name", persistence.LocationSortFields), opts...),
		vehicleTypes: refdata.MustNew[domain.VehicleType](refdata.VehicleTypeConfig(),
			persistence.NewGormReferenceStore[domain.VehicleType, models.VehicleTypeModel](db.DB, "vehicle_type", persistence.VehicleTypeSortFields), opts...),
		trade: tradeService,
	}
}

func (s *referenceServices) handlers() []router.RouteRegistrar {
	return []router.RouteRegistrar{
		handler.NewReferenceHandler("/colors", s.colors),
		handler.NewReferenceHandler("/makers", s.makers),
		handler.NewReferenceHandler("/countries", s.countries),
		handler.NewReferenceHandler("/counterparties", s.counterparties),
		handler.NewReferenceHandler("/accounts", s.accounts),
		handler.NewReferenceHandler("/locations", s.locations),
		handler.NewReferenceHandler("/vehicle-types", s.vehicleTypes),
	}
}
