package router

import (
	"time"

	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/config"
	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/handler"
	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/infra"
	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/middleware"
	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/repository"
	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/service"
	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Services is the wired service layer shared by the HTTP server and adminctl.
type Services struct {
	Gate  service.AuthGate
	Admin service.UsuarioAdminService
	Auth  service.AuthService

	// Local is nil with the GoTrue provider.
	Local *repository.IdentidadRepository
	// Breaker is nil with the local provider.
	Breaker *infra.CircuitBreaker
}

// NewServices wires the service layer.
// Dependency graph: Service ← Repository ← DB/Redis/identity provider
func NewServices(cfg *config.Config, db *gorm.DB, rdb redis.Cmdable) *Services {
	// ── Identity provider ────────────────────────────────────────────────────
	out := &Services{}
	var identidades service.IdentityStore
	switch cfg.IdentityBackend {
	case config.IdentityBackendGoTrue:
		out.Breaker = infra.NewCircuitBreaker(infra.DefaultCBConfig())
		identidades = infra.NewGoTrueClient(cfg.GoTrueURL, cfg.GoTrueServiceKey, cfg.GoTrueTimeout(), out.Breaker)
	default:
		ttl := time.Duration(cfg.JWTExpirationHours) * time.Hour
		out.Local = repository.NewIdentidadRepository(db, cfg.JWTSecret, ttl)
		identidades = out.Local
	}

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	rolUsuarioRepo := repository.NewRolUsuarioRepository(db)
	var rolRepo repository.RolRepository = repository.NewRolRepository(db)
	if rdb != nil && cfg.RoleCacheTTL() > 0 {
		rolRepo = repository.NewCachedRolRepository(rolRepo, rdb, cfg.RoleCacheTTL())
	}
	perfiles := service.NewPerfiles(
		repository.NewVeterinarioRepository(db),
		repository.NewClienteRepository(db),
	)

	// ── Services ─────────────────────────────────────────────────────────────
	// Worker dispatcher receives the workflow side notifications
	var notificador service.Notificador
	if rdb != nil {
		notificador = worker.NewDispatcher(rdb, cfg.WelcomeEmailEnabled)
	}

	out.Gate = service.NewAuthGate(identidades, rolUsuarioRepo, rolRepo)
	out.Admin = service.NewUsuarioAdminService(identidades, usuarioRepo, rolRepo, rolUsuarioRepo, perfiles, notificador)
	if out.Local != nil {
		out.Auth = service.NewAuthService(out.Local)
	} else {
		out.Auth = service.NewAuthService(nil)
	}
	return out
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb redis.Cmdable) *gin.Engine {
	return NewWithServices(cfg, db, rdb, NewServices(cfg, db, rdb))
}

// NewWithServices builds the engine around an already wired service layer.
func NewWithServices(cfg *config.Config, db *gorm.DB, rdb redis.Cmdable, svcs *Services) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(300, time.Minute)) // 300 req/min per IP

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(svcs.Auth)
	usuariosH := handler.NewUsuariosAdminHandler(svcs.Admin)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, svcs.Breaker))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Admin only: the gate runs before any workflow step
	admin := r.Group("/v1/admin", middleware.RequireAdmin(svcs.Gate))
	{
		admin.POST("/usuarios", usuariosH.Ejecutar)
	}

	// Swagger UI, only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
