package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/hallticket-service/internal/api/http"
	"github.com/spec-kit/hallticket-service/internal/api/http/handlers"
	"github.com/spec-kit/hallticket-service/internal/config"
	"github.com/spec-kit/hallticket-service/internal/credential"
	"github.com/spec-kit/hallticket-service/internal/events"
	"github.com/spec-kit/hallticket-service/internal/notify"
	"github.com/spec-kit/hallticket-service/internal/observability"
	"github.com/spec-kit/hallticket-service/internal/otp"
	"github.com/spec-kit/hallticket-service/internal/payment"
	"github.com/spec-kit/hallticket-service/internal/persistence"
	"github.com/spec-kit/hallticket-service/internal/repository"
	"github.com/spec-kit/hallticket-service/internal/service"
	"github.com/spec-kit/hallticket-service/internal/store"
	"github.com/spec-kit/hallticket-service/internal/verify"
	"github.com/spec-kit/hallticket-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	var applications store.ApplicationStore
	if pool := pg.PoolHandle(); pool != nil {
		applications = repository.NewApplicationRepository(pool)
	} else {
		applications = store.NewMemoryApplicationStore()
	}

	verifier := otp.NewVerifier(
		otp.NewRedisChallengeStore(redis.Client),
		cfg.OTP.CodeTTL(),
		cfg.OTP.BcryptCost,
	)

	mailer := notify.NewSMTPMailer(cfg.SMTP)
	signer := verify.NewTokenSigner(cfg.Verify.TokenSecret)
	generator := credential.NewGenerator(
		credential.NewPDFRenderer(
			"Documount Scholarship Program",
			"Sponsored by Documount Technologies Pvt Ltd & Partner Companies",
		),
		credential.NewQREncoder(),
		credential.NewDiskStorage(cfg.Documents.Dir, cfg.Documents.PublicPath),
		signer,
		cfg.App.PublicBaseURL,
	)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	applicationService := service.NewApplicationService(service.ApplicationDependencies{
		Store:       applications,
		Verifier:    verifier,
		Gateway:     payment.NewClient(cfg.Payment),
		Generator:   generator,
		Mailer:      mailer,
		Dispatcher:  dispatcher,
		Logger:      logger,
		Metrics:     metrics,
		AmountPaise: cfg.Payment.AmountPaise,
		Currency:    cfg.Payment.Currency,
		EvictAfter:  cfg.Eviction.Delay(),
	})

	notificationService := service.NewNotificationService(dispatcher, mailer, logger)
	worker.StartNotificationWorker(notificationService)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:       handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Applications: handlers.NewApplicationsHandler(applicationService),
		Webhook:      handlers.NewWebhookHandler(applicationService, cfg.Payment.WebhookSecret, logger),
		Verify:       handlers.NewVerifyHandler(signer),
		DocumentsDir: cfg.Documents.Dir,
		DocumentsURL: cfg.Documents.PublicPath,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
