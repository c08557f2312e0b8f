package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/warehouse/backend/internal/application/catalog"
	inventoryapp "github.com/warehouse/backend/internal/application/inventory"
	partnerapp "github.com/warehouse/backend/internal/application/partner"
	"github.com/warehouse/backend/internal/domain/inventory"
	"github.com/warehouse/backend/internal/infrastructure/cache"
	"github.com/warehouse/backend/internal/infrastructure/config"
	"github.com/warehouse/backend/internal/infrastructure/logger"
	"github.com/warehouse/backend/internal/infrastructure/persistence"
	"github.com/warehouse/backend/internal/infrastructure/telemetry"
	"github.com/warehouse/backend/internal/interfaces/http/handler"
	"github.com/warehouse/backend/internal/interfaces/http/middleware"
	"github.com/warehouse/backend/internal/interfaces/http/router"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// observability bundles the telemetry providers so they can be shut down together
type observability struct {
	tracer   *telemetry.TracerProvider
	meter    *telemetry.MeterProvider
	logs     *telemetry.LoggerProvider
	profiler *telemetry.Profiler
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	baseLog, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		Service:    cfg.App.Name,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = logger.Sync(baseLog) }()

	ctx := context.Background()
	obs := setupTelemetry(ctx, cfg, baseLog)
	log := telemetry.BridgeLogger(baseLog, obs.logs, logger.ParseLevel(cfg.Log.Level))

	log.Info("Starting warehouse ledger",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", cfg.App.Version),
		zap.String("db_driver", cfg.Database.Driver),
	)

	meter := obs.meter.Meter("warehouse/server")

	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	if cfg.Database.Driver == config.DriverSQLite {
		// SQLite has no migration runner; the schema comes from the models.
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
		}
	}

	dbSystem := "postgresql"
	if cfg.Database.Driver == config.DriverSQLite {
		dbSystem = "sqlite"
	}
	if err := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        dbSystem,
	}, log).Register(db.DB); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}

	var poolMetrics *telemetry.DBPoolMetrics
	if cfg.Telemetry.MetricsEnabled {
		sqlDB, err := db.DB.DB()
		if err == nil {
			poolMetrics, err = telemetry.NewDBPoolMetrics(meter, sqlDB, cfg.Telemetry.DBPoolMetricsInterval, log)
		}
		if err != nil {
			log.Warn("Failed to set up database pool metrics", zap.Error(err))
		} else {
			poolMetrics.Start(ctx)
			defer poolMetrics.Stop()
		}
	}

	// Repositories and services
	repos := db.NewRepositories()
	scope := persistence.NewGormTransactionScope(db.DB)
	adjuster := inventory.NewBalanceAdjuster(inventory.AdjustPolicy{
		RejectMissingBalance: cfg.Ledger.RejectMissingBalance,
	})

	balanceService := inventoryapp.NewBalanceService(repos.Balances, repos.Receipts, repos.Shipments)
	receiptService := inventoryapp.NewReceiptService(repos.Receipts, scope, adjuster, log)
	shipmentService := inventoryapp.NewShipmentService(repos.Shipments, scope, adjuster, log)
	resourceService := catalogapp.NewResourceService(repos.Resources, balanceService)
	unitService := catalogapp.NewUnitService(repos.Units, balanceService)
	clientService := partnerapp.NewClientService(repos.Clients, balanceService)
	balanceService.SetNameDirectory(repos.Names)
	receiptService.SetNameDirectory(repos.Names)
	shipmentService.SetNameDirectory(repos.Names)

	if cfg.Telemetry.MetricsEnabled {
		ledgerMetrics, err := telemetry.NewLedgerMetrics(telemetry.LedgerMetricsConfig{Meter: meter, Logger: log})
		if err != nil {
			log.Warn("Failed to create ledger metrics", zap.Error(err))
		} else {
			receiptService.SetLedgerMetrics(ledgerMetrics)
			shipmentService.SetLedgerMetrics(ledgerMetrics)
		}
	}

	idempotencyStore, err := cache.NewIdempotencyStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize idempotency store", zap.Error(err))
	}
	defer func() { _ = idempotencyStore.Close() }()

	engine := newEngine(cfg, log, meter)
	router.Mount(engine, router.Handlers{
		Balance:  handler.NewBalanceHandler(balanceService),
		Receipt:  handler.NewReceiptHandler(receiptService),
		Shipment: handler.NewShipmentHandler(shipmentService),
		Resource: handler.NewResourceHandler(resourceService),
		Unit:     handler.NewUnitHandler(unitService),
		Client:   handler.NewClientHandler(clientService),
		Health:   handler.NewHealthHandler(cfg.App.Version, db),
	}, middleware.Idempotency(idempotencyStore, cfg.Ledger.IdempotencyTTL))

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	obs.shutdown(shutdownCtx, baseLog)

	log.Info("Server exited gracefully")
}

// newEngine builds the gin engine with the global middleware chain
func newEngine(cfg *config.Config, log *zap.Logger, meter metric.Meter) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	handler.RegisterValidators()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Warn("Invalid trusted proxies", zap.Error(err))
	}

	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName), middleware.SpanAttributes())
	}
	if cfg.Telemetry.MetricsEnabled {
		httpMetrics, err := middleware.HTTPMetrics(meter)
		if err != nil {
			log.Warn("Failed to create HTTP metrics", zap.Error(err))
		} else {
			engine.Use(httpMetrics)
		}
	}
	engine.Use(middleware.Profiling(cfg.Telemetry.ProfilerEnabled))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS(middleware.CORSConfigFrom(cfg.HTTP)))
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	return engine
}

// setupTelemetry starts every provider; a failing exporter is logged and left disabled
func setupTelemetry(ctx context.Context, cfg *config.Config, log *zap.Logger) *observability {
	t := cfg.Telemetry
	obs := &observability{}

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           t.Enabled,
		CollectorEndpoint: t.CollectorEndpoint,
		SamplingRatio:     t.SamplingRatio,
		ServiceName:       t.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          t.Insecure,
	}, log)
	if err != nil {
		log.Warn("Failed to initialize tracer provider", zap.Error(err))
	}
	obs.tracer = tp

	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           t.MetricsEnabled,
		CollectorEndpoint: t.CollectorEndpoint,
		ExportInterval:    t.MetricsExportInterval,
		ServiceName:       t.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          t.Insecure,
	}, log)
	if err != nil {
		log.Warn("Failed to initialize meter provider", zap.Error(err))
		mp, _ = telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{}, log)
	}
	obs.meter = mp

	lp, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           t.LogsEnabled,
		CollectorEndpoint: t.CollectorEndpoint,
		ServiceName:       t.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          t.Insecure,
	}, log)
	if err != nil {
		log.Warn("Failed to initialize log exporter", zap.Error(err))
	}
	obs.logs = lp

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           t.ProfilerEnabled,
		ServerAddress:     t.ProfilerAddress,
		ApplicationName:   t.ServiceName,
		BasicAuthUser:     t.ProfilerAuthUser,
		BasicAuthPassword: t.ProfilerAuthPassword,
		ProfileAlloc:      true,
		ProfileGoroutines: true,
	}, log)
	if err != nil {
		log.Warn("Failed to start profiler", zap.Error(err))
	}
	obs.profiler = profiler

	if tp != nil && t.Enabled && t.ProfilerEnabled && t.SpanProfilesEnabled {
		if err := tp.EnableSpanProfiles(); err != nil {
			log.Warn("Failed to enable span profiles", zap.Error(err))
		}
	}

	log.Info("Telemetry configured",
		zap.Bool("tracing", tp != nil && tp.IsEnabled()),
		zap.Bool("span_profiles", tp != nil && tp.IsSpanProfilesEnabled()),
		zap.Bool("metrics", mp != nil && mp.IsEnabled()),
		zap.Bool("logs", t.LogsEnabled && lp != nil),
		zap.Bool("profiler", t.ProfilerEnabled && profiler != nil),
	)
	return obs
}

// flush exports what the providers still buffer so the last requests' spans
// and metrics leave before the profiler and exporters stop.
func (o *observability) flush(ctx context.Context, log *zap.Logger) {
	if o.tracer != nil {
		if err := o.tracer.ForceFlush(ctx); err != nil {
			log.Warn("Failed to flush pending spans", zap.Error(err))
		}
	}
	if o.meter != nil {
		if err := o.meter.ForceFlush(ctx); err != nil {
			log.Warn("Failed to flush pending metrics", zap.Error(err))
		}
	}
}

func (o *observability) shutdown(ctx context.Context, log *zap.Logger) {
	o.flush(ctx, log)
	if o.profiler != nil {
		if err := o.profiler.Stop(); err != nil {
			log.Warn("Failed to stop profiler", zap.Error(err))
		}
	}
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			log.Warn("Failed to flush traces", zap.Error(err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			log.Warn("Failed to flush metrics", zap.Error(err))
		}
	}
	if o.logs != nil {
		if err := o.logs.Shutdown(ctx); err != nil {
			log.Warn("Failed to flush logs", zap.Error(err))
		}
	}
}
