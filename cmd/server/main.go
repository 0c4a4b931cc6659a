package main // Entry point package

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/hostel-complaint-portal/internal/config"
	"github.com/iliyamo/hostel-complaint-portal/internal/database"
	"github.com/iliyamo/hostel-complaint-portal/internal/handler"
	"github.com/iliyamo/hostel-complaint-portal/internal/logger"
	"github.com/iliyamo/hostel-complaint-portal/internal/middleware"
	"github.com/iliyamo/hostel-complaint-portal/internal/repository"
	"github.com/iliyamo/hostel-complaint-portal/internal/router"
	"github.com/iliyamo/hostel-complaint-portal/internal/service"
	"github.com/iliyamo/hostel-complaint-portal/internal/storage"
	"github.com/iliyamo/hostel-complaint-portal/internal/view"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.IsProduction())
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	db, err := database.Open(cfg.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := database.Migrate(db, log); err != nil {
		return err
	}

	images, err := openImageStore(cfg.Upload, log)
	if err != nil {
		return err
	}

	// Redis is optional; without it the limiter is a no-op and logout only
	// clears the cookie.
	var denylist middleware.Denylist
	rdb, err := config.NewRedisClient(context.Background(), config.LoadRedisConfig())
	if err != nil {
		log.Warn("redis unavailable: rate limiting and session revocation disabled", zap.Error(err))
		rdb = nil
	} else {
		defer rdb.Close()
		denylist = middleware.NewRedisDenylist(rdb)
	}

	users := repository.NewUserRepo(db)
	complaints := repository.NewComplaintRepo(db)
	feedback := repository.NewFeedbackRepo(db)

	authSvc := service.NewAuthService(users, cfg.BcryptCost, service.DefaultAdminAccount(cfg.AdminEmail, cfg.AdminPassword))
	complaintSvc := service.NewComplaintService(complaints, users, images, log)
	feedbackSvc := service.NewFeedbackService(complaints, feedback)
	sessions := middleware.NewSessions(cfg.SessionSecret, cfg.SessionTTL, cfg.CookieSecure, denylist, log)

	renderer, err := view.NewRenderer()
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.HTTPErrorHandler = handler.ErrorHandler(e, cfg.Upload.MaxBytes, log)
	router.UseGlobal(e, sessions, cfg.Upload.MaxBytes, log)

	router.RegisterRoutes(e, db)
	router.RegisterAuth(e, handler.NewAuthHandler(authSvc, sessions, log), newLimiter(rdb, log))
	router.RegisterStudent(e, handler.NewStudentHandler(complaintSvc, images, log))
	router.RegisterAdmin(e, handler.NewAdminHandler(complaintSvc, log))
	router.RegisterFeedback(e, handler.NewFeedbackHandler(feedbackSvc, log))

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env), zap.String("uploads", cfg.Upload.Backend))

	errc := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func openImageStore(cfg config.UploadConfig, log *zap.Logger) (storage.Store, error) {
	if cfg.Backend == "s3" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		s3store, err := storage.NewS3Store(ctx, cfg.S3, log)
		if err != nil {
			return nil, fmt.Errorf("s3 image store: %w", err)
		}
		if err := s3store.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("s3 image store: %w", err)
		}
		return s3store, nil
	}
	local, err := storage.NewLocalStore(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("local image store: %w", err)
	}
	return local, nil
}

func newLimiter(rdb *redis.Client, log *zap.Logger) echo.MiddlewareFunc {
	return middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, log)
}
