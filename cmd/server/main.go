package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/config"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/domain"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/email"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/health"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/infrastructure/postgres"
	ctxlog "github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/log"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/metrics"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/otp"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/password"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/scheduler"
	httptransport "github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/transport/http"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/transport/http/handler"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/transport/http/middleware"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.ExposeOTP {
		logger.Warn("EXPOSE_OTP is enabled: one-time codes are returned in API responses")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	db, err := postgres.NewGorm(pool, logger)
	if err != nil {
		stop()
		log.Fatalf("gorm: %v", err)
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		stop()
		log.Fatalf("migrate: %v", err)
	}

	userRepo := postgres.NewUserRepository(db)
	templateRepo := postgres.NewTemplateRepository(db)
	resumeRepo := postgres.NewResumeRepository(db)

	sender, err := email.NewSender(email.Config{
		Provider:     cfg.EmailProvider,
		ResendAPIKey: cfg.ResendAPIKey,
		ResendFrom:   cfg.ResendFrom,
		SMTPHost:     cfg.SMTPHost,
		SMTPPort:     cfg.SMTPPort,
		SMTPUsername: cfg.SMTPUsername,
		SMTPPassword: cfg.SMTPPassword,
		SMTPFrom:     cfg.SMTPFrom,
	}, logger)
	if err != nil {
		stop()
		log.Fatalf("email: %v", err)
	}
	notifier := email.NewNotifier(sender, cfg.OTPTTL, cfg.AppBaseURL)

	hasher := password.NewBcryptHasher(cfg.BcryptCost)
	codes := otp.NewGenerator()

	// Pending registrations and reset requests live in memory only.
	pendingUsers := otp.NewStore[domain.PendingUser]()
	resetRequests := otp.NewStore[domain.ResetRequest]()

	registrationUsecase := usecase.NewRegistrationUsecase(userRepo, pendingUsers, codes, hasher, notifier, logger,
		usecase.RegistrationConfig{OrgDomain: cfg.OrgDomain, OTPTTL: cfg.OTPTTL})
	resetUsecase := usecase.NewPasswordResetUsecase(userRepo, resetRequests, codes, hasher, notifier, logger,
		usecase.PasswordResetConfig{OTPTTL: cfg.OTPTTL})
	authUsecase := usecase.NewAuthUsecase(userRepo, hasher, logger, []byte(cfg.JWTSecret), cfg.JWTTTL)
	adminUsecase := usecase.NewAdminUsecase(userRepo, templateRepo, hasher, notifier, logger)
	templateUsecase := usecase.NewTemplateUsecase(templateRepo, logger)
	resumeUsecase := usecase.NewResumeUsecase(resumeRepo, templateRepo, userRepo, logger)

	sweeper, err := scheduler.NewSweeper(cfg.OTPSweepSchedule, map[string]scheduler.ExpiringStore{
		"registration":   pendingUsers,
		"password_reset": resetRequests,
	}, logger)
	if err != nil {
		stop()
		log.Fatalf("sweeper: %v", err)
	}
	go sweeper.Start(ctx)

	metrics.Register()
	checker := health.NewChecker(logger, prometheus.DefaultRegisterer,
		health.Dependency{Name: "postgres", Pinger: pool},
		health.Dependency{Name: "otp_sweeper", Pinger: sweeper},
	)

	router := httptransport.NewRouter(logger, httptransport.Handlers{
		Auth:     handler.NewAuthHandler(registrationUsecase, authUsecase, cfg.ExposeOTP, logger),
		Password: handler.NewPasswordHandler(resetUsecase, cfg.ExposeOTP, logger),
		Template: handler.NewTemplateHandler(templateUsecase, logger),
		Resume:   handler.NewResumeHandler(resumeUsecase, logger),
		Admin:    handler.NewAdminHandler(adminUsecase, logger),
	}, httptransport.RouterConfig{
		JWTKey:         []byte(cfg.JWTSecret),
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Limiter:        middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		Users:          userRepo,
		HSTS:           cfg.Env != "local",
	})

	srv := http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
