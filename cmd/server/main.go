package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/helpinghands/backend/internal/config"
	"github.com/helpinghands/backend/internal/handler"
	"github.com/helpinghands/backend/internal/logging"
	"github.com/helpinghands/backend/internal/mailer"
	"github.com/helpinghands/backend/internal/repository"
	"github.com/helpinghands/backend/internal/service"
	"github.com/helpinghands/backend/internal/storage"
	pkgstripe "github.com/helpinghands/backend/pkg/stripe"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO", "json")
		logging.Fatal("load config failed", "error", err)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	userRepo := repository.NewPgUserRepository(pool)
	donorRepo := repository.NewPgDonorRepository(pool)
	needyRepo := repository.NewPgNeedyRepository(pool)
	approvalRepo := repository.NewPgApprovalRepository(pool)

	store := storage.NewLocalStorage(cfg.UploadsDir, "/uploads")

	// SMTP and Stripe are optional; their endpoints answer 500 until configured.
	mail := mailer.New(mailer.Config{
		Host:         cfg.SMTP.Host,
		Port:         cfg.SMTP.Port,
		User:         cfg.SMTP.User,
		Password:     cfg.SMTP.Password,
		ContactEmail: cfg.SMTP.ContactEmail,
	})
	if !mail.Configured() {
		slog.Warn("smtp credentials missing, contact form disabled")
	}
	stripeClient := pkgstripe.NewClient(cfg.StripeSecretKey)
	if cfg.StripeSecretKey == "" {
		slog.Warn("STRIPE_SECRET_KEY missing, payment intents disabled")
	}

	submissionService := service.NewSubmissionService(donorRepo, needyRepo, cfg.AllowClientApproval)
	approvalService := service.NewApprovalService(approvalRepo, store)
	authService := service.NewAuthService(userRepo)
	contactService := service.NewContactService(mail)
	paymentService := service.NewPaymentService(stripeClient)

	routes := handler.Routes{
		Base:    handler.New(pool, cfg.FrontendURL),
		Donor:   handler.NewDonorHandler(submissionService, paymentService),
		Needy:   handler.NewNeedyHandler(submissionService, store, cfg.DocumentStorage == config.DocumentStoragePath),
		Admin:   handler.NewAdminHandler(approvalService),
		Contact: handler.NewContactHandler(contactService),
		Auth:    handler.NewAuthHandler(authService),
		Limiter: handler.NewRateLimiter(ctx, cfg.RateLimitPerMinute),
		Uploads: http.FileServer(http.Dir(cfg.UploadsDir)),
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           routes.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server listening", "addr", server.Addr, "env", cfg.Env, "document_storage", cfg.DocumentStorage)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logging.Fatal("server error", "error", err)
	}
}
