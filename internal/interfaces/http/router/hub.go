package router

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/state244/hub/internal/infrastructure/logger"
	"github.com/state244/hub/internal/infrastructure/telemetry"
	"github.com/state244/hub/internal/interfaces/http/handler"
	"github.com/state244/hub/internal/interfaces/http/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Handlers are the HTTP handlers mounted by New
type Handlers struct {
	System       *handler.SystemHandler
	Profiles     *handler.ProfileHandler
	Alliances    *handler.AllianceHandler
	Applications *handler.ApplicationHandler
	Inbox        *handler.InboxHandler
	StateInfo    *handler.StateInfoHandler
	WarPlans     *handler.WarPlanHandler
	Creative     *handler.CreativeHandler
	Dashboard    *handler.DashboardHandler
	Realtime     *handler.RealtimeHandler
}

// Config controls the engine assembled by New
type Config struct {
	Logger         *zap.Logger
	Auth           middleware.JWTMiddlewareConfig
	Profiles       middleware.ProfileLoader
	Permissions    middleware.PermissionChecker
	CORS           middleware.CORSConfig
	MaxBodySize    int64
	TrustedProxies []string
	Tracing        middleware.TracingConfig
	Swagger        middleware.SwaggerConfig

	// Metrics is optional; MetricsPath defaults to /metrics
	Metrics     *telemetry.Metrics
	MetricsPath string

	// PublicForms throttles the anonymous forms per client IP. Nil disables it.
	PublicForms *middleware.IPRateLimiter
}

// guard builds the per-route middleware chains
type guard struct {
	required gin.HandlerFunc
	optional gin.HandlerFunc
	profile  gin.HandlerFunc
	perms    middleware.PermissionConfig
	limit    gin.HandlerFunc
}

// can authenticates the caller and checks (resource, action) before h
func (g guard) can(resource, action string, h gin.HandlerFunc) []gin.HandlerFunc {
	return []gin.HandlerFunc{g.required, g.profile, g.perms.RequirePermission(resource, action), h}
}

// public lets anonymous callers through while still recognising a valid token
func (g guard) public(h gin.HandlerFunc) []gin.HandlerFunc {
	return []gin.HandlerFunc{g.optional, g.profile, h}
}

// form is a public route behind the per-IP limiter
func (g guard) form(h gin.HandlerFunc) []gin.HandlerFunc {
	chain := g.public(h)
	if g.limit != nil {
		chain = append([]gin.HandlerFunc{g.limit}, chain...)
	}
	return chain
}

// New assembles the gin engine: global middleware, infrastructure endpoints
// and the /api/v1 routes with their permission checks
func New(cfg Config, h Handlers) (*gin.Engine, error) {
	if cfg.Logger == nil {
		return nil, errors.New("router: logger is required")
	}
	if cfg.Auth.Validator == nil || cfg.Profiles == nil || cfg.Permissions == nil {
		return nil, errors.New("router: auth validator, profile loader and permission checker are required")
	}
	log := cfg.Logger

	engine := gin.New()
	if len(cfg.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			return nil, err
		}
	}

	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(cfg.CORS))
	if cfg.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodySize))
	}

	metricsPath := cfg.MetricsPath
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	var business *telemetry.BusinessMetrics
	if cfg.Metrics != nil {
		business = cfg.Metrics.Business()
		engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
			Metrics:   cfg.Metrics,
			SkipPaths: []string{metricsPath, "/health"},
		}))
	}
	if cfg.Tracing.Enabled {
		engine.Use(middleware.Tracing(cfg.Tracing), middleware.TracingAttributeInjector())
	}
	engine.Use(middleware.Secure())

	if h.System != nil {
		engine.GET("/health", h.System.Health)
	}
	if cfg.Metrics != nil {
		engine.GET(metricsPath, gin.WrapH(cfg.Metrics.Handler()))
	}

	swagger := engine.Group("/swagger", middleware.SwaggerProtection(cfg.Swagger))
	if cfg.Swagger.RequireAuth {
		swagger.Use(middleware.JWTAuth(cfg.Auth))
	}
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	g := guard{
		required: middleware.JWTAuth(cfg.Auth),
		optional: middleware.OptionalJWTAuth(cfg.Auth),
		profile:  middleware.LoadProfile(cfg.Profiles, log),
		perms:    middleware.PermissionConfig{Checker: cfg.Permissions, Logger: log},
	}
	if cfg.PublicForms != nil {
		g.limit = middleware.RateLimit(middleware.RateLimitConfig{
			Limiter: cfg.PublicForms,
			Action:  "public_form",
			Metrics: business,
			Logger:  log,
		})
	}

	r := NewRouter(engine, WithAPIVersion("v1"))
	r.Register(domainGroups(g, h)...)
	r.Setup()

	return engine, nil
}

func domainGroups(g guard, h Handlers) []RouteRegistrar {
	var groups []RouteRegistrar

	if h.System != nil {
		system := NewDomainGroup("system", "/system")
		system.GET("/info", h.System.GetSystemInfo)
		groups = append(groups, system)
	}

	if p := h.Profiles; p != nil {
		auth := NewDomainGroup("auth", "/auth")
		auth.GET("/me", g.can("profile", "read", p.Me)...)
		auth.PATCH("/me", g.can("profile", "write", p.UpdateMe)...)

		users := NewDomainGroup("users", "/admin/users")
		users.GET("", g.can("user", "read", p.ListUsers)...)
		users.GET("/export", g.can("user", "export", p.ExportUsers)...)
		users.GET("/:id", g.can("user", "read", p.GetUser)...)
		users.PATCH("/:id", g.can("user", "write", p.UpdateUser)...)
		users.DELETE("/:id", g.can("user", "delete", p.DeleteUser)...)
		groups = append(groups, auth, users)
	}

	if a := h.Alliances; a != nil {
		alliances := NewDomainGroup("alliances", "/alliances")
		alliances.GET("", a.List)
		alliances.GET("/:id", a.Get)
		alliances.POST("", g.can("alliance", "create", a.Create)...)
		alliances.PATCH("/:id", g.can("alliance", "write", a.Update)...)
		alliances.DELETE("/:id", g.can("alliance", "delete", a.Delete)...)
		alliances.GET("/:id/members", g.can("alliance", "read_members", a.Members)...)
		groups = append(groups, alliances)
	}

	if a := h.Applications; a != nil {
		apps := NewDomainGroup("applications", "/applications")
		apps.POST("", g.form(a.Submit)...)
		apps.GET("/:id/status", g.form(a.Status)...)
		apps.POST("/:id/withdraw", g.form(a.Withdraw)...)
		apps.GET("", g.can("application", "read", a.List)...)
		apps.GET("/export", g.can("application", "export", a.Export)...)
		apps.GET("/:id", g.can("application", "read", a.Get)...)
		apps.POST("/:id/alliance-review", g.can("application", "review_alliance", a.AllianceReview)...)
		apps.POST("/:id/president-review", g.can("application", "review_president", a.PresidentReview)...)
		groups = append(groups, apps)
	}

	if i := h.Inbox; i != nil {
		contact := NewDomainGroup("contact", "/contact")
		contact.POST("", g.form(i.Contact)...)

		messages := NewDomainGroup("messages", "/admin/messages")
		messages.GET("", g.can("inbox", "read", i.List)...)
		messages.GET("/unread-count", g.can("inbox", "read", i.UnreadCount)...)
		messages.GET("/:id", g.can("inbox", "read", i.Get)...)
		messages.PATCH("/:id", g.can("inbox", "write", i.UpdateStatus)...)
		messages.DELETE("/:id", g.can("inbox", "write", i.Delete)...)
		groups = append(groups, contact, messages)
	}

	if s := h.StateInfo; s != nil {
		info := NewDomainGroup("state-info", "/state-info")
		info.GET("", s.List)
		info.GET("/proposals", g.can("proposal", "read", s.ListProposals)...)
		info.POST("/proposals", g.can("proposal", "create", s.Propose)...)
		info.GET("/proposals/:id", g.can("proposal", "read", s.GetProposal)...)
		info.POST("/proposals/:id/votes", g.can("proposal", "vote", s.Vote)...)
		info.GET("/:key", s.Get)
		info.PUT("/:key", g.can("state_info", "write", s.Upsert)...)
		groups = append(groups, info)
	}

	if w := h.WarPlans; w != nil {
		plans := NewDomainGroup("war-plans", "/war-plans")
		plans.GET("", g.can("war_plan", "read", w.List)...)
		plans.POST("", g.can("war_plan", "write", w.Create)...)
		plans.GET("/:id", g.can("war_plan", "read", w.Get)...)
		plans.PATCH("/:id", g.can("war_plan", "write", w.Update)...)
		plans.DELETE("/:id", g.can("war_plan", "write", w.Delete)...)
		plans.GET("/:id/board", g.can("war_plan", "read", w.Board)...)
		plans.POST("/:id/roster", g.can("war_plan", "write", w.AddRosterPlayer)...)
		plans.PATCH("/:id/roster/:player_id", g.can("war_plan", "write", w.UpdateRosterPlayer)...)
		plans.DELETE("/:id/roster/:player_id", g.can("war_plan", "write", w.RemoveRosterPlayer)...)
		plans.PUT("/:id/assignments", g.can("war_plan", "write", w.Assign)...)
		plans.DELETE("/:id/assignments/:player_id", g.can("war_plan", "write", w.Unassign)...)
		groups = append(groups, plans)
	}

	if c := h.Creative; c != nil {
		ai := NewDomainGroup("ai", "/ai")
		ai.POST("/text", g.can("ai", "use", c.GenerateText)...)
		ai.GET("/images", g.can("ai", "use", c.ListImages)...)
		ai.POST("/images", g.can("ai", "use", c.GenerateImage)...)
		ai.DELETE("/images/:id", g.can("ai", "use", c.DeleteImage)...)
		groups = append(groups, ai)
	}

	if d := h.Dashboard; d != nil {
		dashboard := NewDomainGroup("dashboard", "/dashboard")
		dashboard.GET("", g.can("dashboard", "read", d.Get)...)
		groups = append(groups, dashboard)
	}

	if rt := h.Realtime; rt != nil {
		stream := NewDomainGroup("realtime", "/realtime")
		stream.GET("/stream", g.can("realtime", "subscribe", rt.Stream)...)
		groups = append(groups, stream)
	}

	return groups
}
