package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	creativeapp "github.com/state244/hub/internal/application/creative"
	dashboardapp "github.com/state244/hub/internal/application/dashboard"
	inboxapp "github.com/state244/hub/internal/application/inbox"
	membershipapp "github.com/state244/hub/internal/application/membership"
	recruitmentapp "github.com/state244/hub/internal/application/recruitment"
	stateinfoapp "github.com/state244/hub/internal/application/stateinfo"
	warplanapp "github.com/state244/hub/internal/application/warplan"
	"github.com/state244/hub/internal/domain/creative"
	"github.com/state244/hub/internal/infrastructure/ai"
	"github.com/state244/hub/internal/infrastructure/auth"
	"github.com/state244/hub/internal/infrastructure/cache"
	"github.com/state244/hub/internal/infrastructure/config"
	"github.com/state244/hub/internal/infrastructure/email"
	"github.com/state244/hub/internal/infrastructure/logger"
	"github.com/state244/hub/internal/infrastructure/markdown"
	"github.com/state244/hub/internal/infrastructure/permission"
	"github.com/state244/hub/internal/infrastructure/persistence"
	"github.com/state244/hub/internal/infrastructure/realtime"
	"github.com/state244/hub/internal/infrastructure/scheduler"
	"github.com/state244/hub/internal/infrastructure/storage"
	"github.com/state244/hub/internal/infrastructure/telemetry"
	"github.com/state244/hub/internal/interfaces/http/handler"
	"github.com/state244/hub/internal/interfaces/http/middleware"
	"github.com/state244/hub/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/state244/hub/docs"
)

//	@title			State 244 Hub API
//	@version		1.0
//	@description	Alliance membership, migration applications, war planning and state information for State 244.

//	@contact.name	State 244 Hub maintainers
//	@contact.url	https://github.com/state244/hub

//	@license.name	MIT

//	@host		localhost:8080
//	@BasePath	/

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Access token from the auth provider. Format: "Bearer {token}"

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

// Session revocation entries outlive any access token the provider issues
const revocationTTL = 24 * time.Hour

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
		Service:    cfg.App.Name,
		Env:        cfg.App.Env,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting State 244 Hub",
		zap.String("version", version),
		zap.String("port", cfg.App.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	metrics := telemetry.NewMetrics(cfg.Metrics.Namespace)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.Open(ctx, &cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	if err := metrics.RegisterDB(db.Pool(), cfg.Database.DBName); err != nil {
		log.Warn("Failed to register database pool metrics", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Repositories
	profileRepo := persistence.NewGormProfileRepository(db.DB)
	allianceRepo := persistence.NewGormAllianceRepository(db.DB)
	applicationRepo := persistence.NewGormApplicationRepository(db.DB)
	messageRepo := persistence.NewGormMessageRepository(db.DB)
	sectionRepo := persistence.NewGormSectionRepository(db.DB)
	proposalRepo := persistence.NewGormProposalRepository(db.DB)
	planRepo := persistence.NewGormPlanRepository(db.DB)
	imageRepo := persistence.NewGormImageRepository(db.DB)

	// Redis backs revocations, quotas and the event fan-out when configured;
	// a single instance runs on in-process equivalents.
	var (
		redisClient *redis.Client
		revocations auth.RevocationList     = auth.NewInMemoryRevocationList()
		rateLimits  creative.RateLimitStore = persistence.NewGormRateLimitStore(db.DB)
		broker      realtime.Broker         = realtime.NewMemoryBroker()
	)
	if cfg.Redis.Enabled() {
		redisClient, err = cache.NewRedisClient(cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer func() { _ = redisClient.Close() }()
		revocations = auth.NewRedisRevocationList(redisClient)
		rateLimits = cache.NewRedisRateLimitStore(redisClient)
		broker = realtime.NewRedisBroker(redisClient, cfg.Realtime.Channel, log)
	}
	defer func() { _ = broker.Close() }()

	hub := realtime.NewHub(broker, log,
		realtime.WithHeartbeat(cfg.Realtime.HeartbeatInterval),
		realtime.WithMaxClients(cfg.Realtime.MaxClients),
		realtime.WithConnectionGauge(metrics.RealtimeClients),
	)
	if err := hub.Start(ctx); err != nil {
		log.Fatal("Failed to start realtime hub", zap.Error(err))
	}

	notifier := email.NewAsyncNotifier(newNotifier(cfg, log), log)
	defer notifier.Close()

	text, images := newGenerators(cfg, log)
	objects := newObjectStorage(ctx, cfg, log)

	// Application services
	profileService := membershipapp.NewProfileService(
		profileRepo, allianceRepo, revocations, revocationTTL, cfg.HTTP.ExportMaxRows, log)
	allianceService := membershipapp.NewAllianceService(allianceRepo, profileRepo, log)
	applicationService := recruitmentapp.NewApplicationService(
		applicationRepo, allianceRepo, profileRepo, notifier, broker, cfg.HTTP.ExportMaxRows, log)
	messageService := inboxapp.NewMessageService(
		messageRepo, profileRepo, notifier, broker, cfg.Email.AdminInbox, log)
	stateInfoService := stateinfoapp.NewStateInfoService(
		sectionRepo, proposalRepo, markdown.NewRenderer(), broker, log)
	planService := warplanapp.NewPlanService(planRepo, allianceRepo, broker, log)
	creativeService := creativeapp.NewCreativeService(
		text, images, objects, imageRepo, rateLimits, allianceRepo,
		creativeapp.Quotas{
			Text:  creative.Quota{Action: creative.ActionText, Limit: cfg.AI.TextPerHour, Window: config.TextQuotaWindow},
			Image: creative.Quota{Action: creative.ActionImage, Limit: cfg.AI.ImagesPerDay, Window: config.ImageQuotaWindow},
		},
		log)
	dashboardService := dashboardapp.NewDashboardService(
		allianceRepo, profileRepo, applicationRepo, planRepo, proposalRepo, messageRepo, log)

	business := metrics.Business()
	applicationService.SetBusinessMetrics(business)
	messageService.SetBusinessMetrics(business)
	stateInfoService.SetBusinessMetrics(business)
	creativeService.SetBusinessMetrics(business)

	enforcer, err := permission.NewDefaultEnforcer(log)
	if err != nil {
		log.Fatal("Failed to load permission policies", zap.Error(err))
	}

	checks := []handler.HealthCheck{{
		Name:     "database",
		Required: true,
		Check:    db.Ping,
	}}
	if redisClient != nil {
		checks = append(checks, handler.HealthCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}

	var authRevocations auth.RevocationList
	if cfg.Auth.BlacklistCheck {
		authRevocations = revocations
	}

	publicForms := middleware.NewIPRateLimiter(cfg.HTTP.PublicFormRate, cfg.HTTP.PublicFormBurst)
	go publicForms.Run(ctx, 10*time.Minute)

	var routeMetrics *telemetry.Metrics
	if cfg.Metrics.Enabled {
		routeMetrics = metrics
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	cors.AllowHeaders = append(cors.AllowHeaders, cfg.HTTP.CORSAllowHeaders...)

	engine, err := router.New(router.Config{
		Logger: log,
		Auth: middleware.JWTMiddlewareConfig{
			Validator:   auth.NewJWTService(cfg.Auth),
			Revocations: authRevocations,
			Logger:      log,
		},
		Profiles:       profileService,
		Permissions:    enforcer,
		CORS:           cors,
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		TrustedProxies: cfg.HTTP.TrustedProxies,
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     tp.IsEnabled(),
		},
		Swagger: middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		},
		Metrics:     routeMetrics,
		MetricsPath: cfg.Metrics.Path,
		PublicForms: publicForms,
	}, router.Handlers{
		System:       handler.NewSystemHandler(cfg.App.Name, version, checks...),
		Profiles:     handler.NewProfileHandler(profileService),
		Alliances:    handler.NewAllianceHandler(allianceService),
		Applications: handler.NewApplicationHandler(applicationService),
		Inbox:        handler.NewInboxHandler(messageService),
		StateInfo:    handler.NewStateInfoHandler(stateInfoService),
		WarPlans:     handler.NewWarPlanHandler(planService),
		Creative:     handler.NewCreativeHandler(creativeService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
		Realtime:     handler.NewRealtimeHandler(hub),
	})
	if err != nil {
		log.Fatal("Failed to build router", zap.Error(err))
	}

	jobs := scheduler.NewManager(log, cfg.Scheduler.JobTimeout)
	jobs.SetBusinessMetrics(business)
	if cfg.Scheduler.Enabled {
		if err := jobs.Register(cfg.Scheduler.RateLimitPurgeCron,
			scheduler.NewRateLimitPurgeJob(rateLimits, cfg.Scheduler.RateLimitKeepWindows)); err != nil {
			log.Fatal("Failed to schedule rate limit purge", zap.Error(err))
		}
		if err := jobs.Register(cfg.Scheduler.InboxRetentionCron,
			scheduler.NewInboxRetentionJob(messageRepo, cfg.Scheduler.InboxRetention)); err != nil {
			log.Fatal("Failed to schedule inbox retention", zap.Error(err))
		}
		jobs.Start()
	}

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

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Event streams never finish on their own; close them before draining
	hub.Stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := jobs.Stop(shutdownCtx); err != nil {
		log.Warn("Scheduler did not stop cleanly", zap.Error(err))
	}
	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Warn("Tracer provider shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newNotifier sends mail over SMTP when configured and logs it otherwise
func newNotifier(cfg *config.Config, log *zap.Logger) email.Notifier {
	if cfg.Email.Enabled() {
		return email.NewSMTPNotifier(cfg.Email, cfg.App.BaseURL)
	}
	log.Info("SMTP not configured; notifications are logged only")
	return email.NewLogNotifier(log)
}

// newGenerators returns nil interfaces when no AI provider is configured so
// the creative service reports itself unavailable
func newGenerators(cfg *config.Config, log *zap.Logger) (creative.TextGenerator, creative.ImageGenerator) {
	if !cfg.AI.Enabled() {
		log.Info("AI provider not configured; creative endpoints disabled")
		return nil, nil
	}
	client, err := ai.NewClient(cfg.AI, log)
	if err != nil {
		log.Fatal("Failed to create AI client", zap.Error(err))
	}
	return client, client
}

func newObjectStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) creativeapp.ObjectStorage {
	if !cfg.Storage.Enabled() {
		log.Info("Object storage not configured; image generation disabled")
		return nil
	}
	s3, err := storage.NewS3ObjectStorage(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to create object storage client", zap.Error(err))
	}
	if err := s3.EnsureBucket(ctx); err != nil {
		log.Warn("Object storage bucket check failed", zap.Error(err), zap.String("bucket", s3.Bucket()))
	}
	return s3
}
