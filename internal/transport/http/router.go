package httptransport

import (
	"log/slog"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/domain"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/transport/http/handler"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Password *handler.PasswordHandler
	Template *handler.TemplateHandler
	Resume   *handler.ResumeHandler
	Admin    *handler.AdminHandler
}

type RouterConfig struct {
	JWTKey         []byte
	AllowedOrigins []string
	Users          middleware.UserFinder
	HSTS           bool

	// Limiter guards the unauthenticated OTP and login routes. Nil disables it.
	Limiter *middleware.RateLimiter
}

func NewRouter(logger *slog.Logger, h Handlers, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security(cfg.HSTS))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	api := r.Group("/api")

	public := api.Group("")
	if cfg.Limiter != nil {
		public.Use(cfg.Limiter.Limit())
	}

	auth := public.Group("/auth")
	auth.POST("/register/initiate", h.Auth.InitiateRegistration)
	auth.POST("/register/verify", h.Auth.VerifyRegistration)
	auth.POST("/register/resend-otp", h.Auth.ResendRegistrationOTP)
	auth.POST("/login", h.Auth.Login)

	pw := public.Group("/password")
	pw.POST("/forgot", h.Password.Forgot)
	pw.POST("/verify-otp", h.Password.VerifyOTP)
	pw.PATCH("/reset", h.Password.Reset)
	pw.POST("/resend-otp", h.Password.ResendOTP)

	authMW := middleware.Auth(cfg.JWTKey)
	ensureUser := middleware.EnsureUser(cfg.Users, logger)
	staff := middleware.RequireRole(domain.RoleAdmin, domain.RoleManager)

	// Any signed-in user can read templates; only staff can change them.
	templates := api.Group("/templates", authMW, ensureUser)
	templates.GET("", h.Template.List)
	templates.GET("/:id", h.Template.Get)
	templates.POST("", staff, h.Template.Create)
	templates.PUT("/:id", staff, h.Template.Update)
	templates.DELETE("/:id", staff, h.Template.Delete)

	resumes := api.Group("/resumes", authMW, ensureUser)
	resumes.GET("", h.Resume.List)
	resumes.POST("", h.Resume.Create)
	resumes.GET("/:id", h.Resume.Get)
	resumes.PUT("/:id", h.Resume.Update)
	resumes.DELETE("/:id", h.Resume.Delete)

	admin := api.Group("/admin", authMW, ensureUser, middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/users", h.Admin.ListUsers)
	admin.GET("/users/by-role", h.Admin.ListUsersByRole)
	admin.POST("/users", h.Admin.AddUser)
	admin.DELETE("/users/:id", h.Admin.DeleteUser)
	admin.PATCH("/users/:id/role", h.Admin.ChangeRole)
	admin.GET("/managers", h.Admin.ListManagers)
	admin.POST("/managers", h.Admin.AddManager)
	admin.DELETE("/managers/:id", h.Admin.DeleteUser)
	admin.GET("/templates", h.Admin.ListTemplates)
	admin.POST("/batch-insert", h.Admin.BatchInsert)

	return r
}
