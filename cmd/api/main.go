package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "loanhub-backend/internal/adapter/http"
	"loanhub-backend/internal/adapter/middleware"
	"loanhub-backend/internal/adapter/repository/mysql"
	sessions "loanhub-backend/internal/auth"
	"loanhub-backend/internal/config"
	"loanhub-backend/internal/domain/user"
	"loanhub-backend/internal/infrastructure/cache"
	"loanhub-backend/internal/infrastructure/db"
	"loanhub-backend/internal/infrastructure/logger"
	"loanhub-backend/internal/mailer"
	"loanhub-backend/internal/storage"
	appuc "loanhub-backend/internal/usecase/application"
	authuc "loanhub-backend/internal/usecase/auth"
	docuc "loanhub-backend/internal/usecase/document"
	otpuc "loanhub-backend/internal/usecase/otp"
	pkgotp "loanhub-backend/pkg/otp"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		zlog.Fatal("open mysql", zap.Error(err))
	}
	if err := db.Migrate(gdb); err != nil {
		zlog.Fatal("migrate", zap.Error(err))
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		zlog.Fatal("open redis", zap.Error(err))
	}

	store, err := newStore(cfg, zlog)
	if err != nil {
		zlog.Fatal("storage", zap.Error(err))
	}
	mail := newMailer(cfg, zlog)

	// repositories
	users := mysql.NewUserRepository(gdb)
	otps := mysql.NewOtpRepository(gdb)
	apps := mysql.NewApplicationRepository(gdb)
	docs := mysql.NewDocumentRepository(gdb)
	guow := mysql.NewGormUoW(gdb)

	// usecases
	tokens := sessions.NewManager(cfg.JWTSecret, cfg.SessionTTL)
	otpUC := otpuc.NewUsecase(otps, pkgotp.NewGenerator(cfg.OTPSecret))
	authUC := authuc.NewUsecase(users, guow, otpUC, tokens, mail, zlog)
	appUC := appuc.NewUsecase(apps, users, guow, mail, zlog)
	docUC := docuc.NewUsecase(apps, docs, store, zlog)

	// handlers
	h := httpadp.NewHandler()
	authH := httpadp.NewAuthHandler(authUC, cfg.SessionTTL, cfg.Production())
	appH := httpadp.NewApplicationHandler(appUC)
	adminH := httpadp.NewAdminHandler(appUC)
	docH := httpadp.NewDocumentHandler(docUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idemTTL := time.Duration(cfg.IdempTTLSecs) * time.Second
	requireAuth := middleware.Auth(tokens)
	requireAdmin := middleware.RequireRole(user.RoleAdmin)
	idem := middleware.Idempotency(rdb, idemTTL, zlog)

	// routes
	e.GET("/health", h.Health)

	auth := e.Group("/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.POST("/verify-email", authH.VerifyEmail)
	auth.POST("/resend-otp", authH.ResendOTP)
	auth.POST("/reset-password", authH.ResetPassword)
	auth.POST("/reset-password/confirm", authH.ConfirmReset)
	auth.GET("/me", authH.Me, requireAuth)

	apply := e.Group("/loan-applications", requireAuth, idem)
	apply.POST("", appH.Submit)
	apply.GET("", appH.ListMine)
	apply.POST("/:type", appH.SubmitTyped)
	apply.GET("/:id", appH.Get)

	admin := e.Group("/admin", requireAuth, requireAdmin, idem)
	admin.GET("/loan-applications", adminH.List)
	admin.POST("/loan-applications/:id/approve", adminH.Approve)
	admin.POST("/loan-applications/:id/reject", adminH.Reject)
	admin.GET("/statistics", adminH.Statistics)

	e.POST("/upload", docH.Upload, requireAuth, idem)
	e.POST("/documents/associate", docH.Associate, requireAuth, idem)
	e.GET("/documents/download", docH.Download, requireAuth, requireAdmin)
	e.POST("/sign-cloudinary-params", docH.SignUploadParams, requireAuth)

	go func() {
		addr := ":" + cfg.AppPort
		zlog.Info("listening", zap.String("addr", addr), zap.String("env", cfg.AppEnv))
		if err := e.Start(addr); err != nil {
			zlog.Info("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		zlog.Error("shutdown", zap.Error(err))
	}
}

func newStore(cfg *config.Config, zlog *zap.Logger) (storage.Store, error) {
	if cfg.StorageBackend == string(storage.KindCloudinary) {
		return storage.NewCloudinaryStore(cfg.CloudinaryName, cfg.CloudinaryKey, cfg.CloudinarySecret, cfg.CloudinaryFolder, zlog)
	}
	return storage.NewLocalStore(cfg.UploadDir)
}

// newMailer falls back to the log-only mailer when no provider key is
// configured, so development setups still see what would have been sent.
func newMailer(cfg *config.Config, zlog *zap.Logger) mailer.Mailer {
	if cfg.MailAPIKey == "" {
		return mailer.NewNoopMailer(zlog)
	}
	templates := make(map[mailer.TemplateType]string, len(cfg.MailTemplates))
	for name, id := range cfg.MailTemplates {
		templates[mailer.TemplateType(name)] = id
	}
	return mailer.NewMailerSendService(cfg.MailAPIKey, cfg.MailFromEmail, cfg.MailFromName, templates, zlog)
}
