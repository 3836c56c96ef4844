package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/WebDesk/backend/internal/api/http"
	"github.com/GriffinCanCode/WebDesk/backend/internal/api/middleware"
	"github.com/GriffinCanCode/WebDesk/backend/internal/api/ws"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/catalog"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/notify"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/preferences"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/window"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/kvstore"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/resilience"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	driver     kvstore.Driver
	registry   *window.Registry
	files      *vfs.Store
	logger     *logging.Logger
	config     *config.Config
	metrics    *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	logger := logging.FromConfig(cfg.Logging)
	return newServer(ctx, cfg, logger)
}

func newServer(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Info("Initializing WebDesk Server",
		zap.String("port", cfg.Server.Port),
		zap.String("storage", cfg.Storage.Driver),
	)

	// Initialize metrics first (needed by other components)
	metrics := monitoring.NewMetrics()

	// Open storage
	driver, err := kvstore.Open(ctx, cfg.Storage, logger.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	driver = kvstore.Instrument(guardRemote(driver, cfg.Storage, logger.Logger), metrics)

	filesBackend, err := driver.Open(ctx, kvstore.CollectionFiles)
	if err != nil {
		driver.Close()
		return nil, fmt.Errorf("failed to open %s collection: %w", kvstore.CollectionFiles, err)
	}
	prefsBackend, err := driver.Open(ctx, kvstore.CollectionPreferences)
	if err != nil {
		driver.Close()
		return nil, fmt.Errorf("failed to open %s collection: %w", kvstore.CollectionPreferences, err)
	}

	files := vfs.NewStore(filesBackend, logger.Named("vfs"))
	prefs := preferences.NewService(prefsBackend, logger.Named("preferences"))

	// Window registry and app catalogue
	registry := window.NewRegistry(logger.Named("window")).WithMetrics(metrics)
	registry.SetViewport(cfg.Desktop.ViewportWidth, cfg.Desktop.ViewportHeight)

	seeder := catalog.NewSeeder(registry, cfg.Desktop.AppsManifest, logger.Named("catalog"))
	if _, err := seeder.Seed(); err != nil {
		driver.Close()
		return nil, fmt.Errorf("failed to seed apps: %w", err)
	}

	if cfg.Desktop.SeedDir != "" {
		if err := seedFiles(ctx, files, cfg.Desktop.SeedDir, logger.Logger); err != nil {
			logger.Warn("Failed to seed files", zap.String("dir", cfg.Desktop.SeedDir), zap.Error(err))
		}
	}

	bus := notify.NewBus(logger.Named("notify")).WithMetrics(metrics)

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID(logger.Named("http")))
	router.Use(monitoring.Middleware(metrics))
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.Origins = cfg.Server.AllowedOrigins
	router.Use(middleware.CORS(corsCfg))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))
	}

	// Register routes
	handlers := apihttp.NewHandlers(registry, files, prefs, bus, logger.Named("api"))
	apihttp.RegisterRoutes(router, handlers)

	wsHandler := ws.NewHandler(registry, bus, prefs, logger.Named("ws")).
		WithMetrics(metrics).
		WithOriginCheck(corsCfg.AllowsOrigin)
	router.GET("/stream", wsHandler.HandleConnection)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/metrics/json", func(c *gin.Context) {
		c.JSON(http.StatusOK, metrics.Snapshot())
	})

	httpServer := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server initialized successfully")

	return &Server{
		router:     router,
		httpServer: httpServer,
		driver:     driver,
		registry:   registry,
		files:      files,
		logger:     logger,
		config:     cfg,
		metrics:    metrics,
	}, nil
}

// guardRemote puts a circuit breaker in front of network-backed drivers.
func guardRemote(driver kvstore.Driver, cfg config.StorageConfig, logger *zap.Logger) kvstore.Driver {
	if !cfg.Breaker.Enabled || (cfg.Driver != config.DriverPostgres && cfg.Driver != config.DriverEtcd) {
		return driver
	}

	breaker := resilience.New(cfg.Driver, resilience.Settings{
		Failures: cfg.Breaker.Failures,
		Cooldown: cfg.Breaker.Cooldown,
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("Storage circuit breaker changed state",
				zap.String("driver", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to))
		},
	})
	return kvstore.Guard(driver, breaker)
}

// seedFiles imports dir into an empty path store.
func seedFiles(ctx context.Context, files *vfs.Store, dir string, logger *zap.Logger) error {
	existing, err := files.Readdir(ctx, "/")
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Debug("Path store not empty, skipping seed", zap.Int("entries", len(existing)))
		return nil
	}

	n, err := files.ImportDir(ctx, dir, "/")
	if err != nil {
		return err
	}
	logger.Info("Seeded path store", zap.String("dir", dir), zap.Int("entries", n))
	return nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP server and blocks until it stops. It returns nil
// after a Close.
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close gracefully shuts down the server
func (s *Server) Close(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	var errs []error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Failed to shut down HTTP server", zap.Error(err))
		errs = append(errs, fmt.Errorf("failed to shut down HTTP server: %w", err))
	}
	if err := s.driver.Close(); err != nil {
		s.logger.Error("Failed to close storage", zap.Error(err))
		errs = append(errs, fmt.Errorf("failed to close storage: %w", err))
	}

	// Sync logger before exit
	s.logger.Sync()

	return errors.Join(errs...)
}
