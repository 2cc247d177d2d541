package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/care-portal-service/internal/api/http"
	"github.com/spec-kit/care-portal-service/internal/api/http/handlers"
	"github.com/spec-kit/care-portal-service/internal/auth"
	"github.com/spec-kit/care-portal-service/internal/config"
	"github.com/spec-kit/care-portal-service/internal/events"
	"github.com/spec-kit/care-portal-service/internal/observability"
	"github.com/spec-kit/care-portal-service/internal/persistence"
	"github.com/spec-kit/care-portal-service/internal/repository"
	"github.com/spec-kit/care-portal-service/internal/service"
	"github.com/spec-kit/care-portal-service/internal/worker"
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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	patientRepo := repository.NewPatientRepository(pool)
	doctorRepo := repository.NewDoctorRepository(pool)
	appointmentRepo := repository.NewAppointmentRepository(pool)
	planRepo := repository.NewTreatmentPlanRepository(pool)
	consentRepo := repository.NewConsentRepository(pool)

	sessionStore := auth.NewSessionStore(redis.Client, cfg.Auth.SessionTTLMinutes)
	cookieCodec := auth.NewCookieCodec(cfg.Auth.SessionSecret)

	var provider auth.IdentityProvider
	if cfg.OAuth.TokenURL != "" {
		provider = auth.NewHTTPIdentityProvider(
			cfg.OAuth.TokenURL,
			cfg.OAuth.UserinfoURL,
			cfg.OAuth.ClientID,
			cfg.OAuth.ClientSecret,
			cfg.OAuth.RedirectURL,
		)
	}

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		PatientRepo:  patientRepo,
		DoctorRepo:   doctorRepo,
		SessionStore: sessionStore,
		Provider:     provider,
	})

	resolver := auth.NewIdentityResolver(patientRepo, doctorRepo)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), resolver, sessionStore, cookieCodec)

	dispatcher := events.NewInMemoryDispatcher(logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	appointmentService := service.NewAppointmentService(appointmentRepo, doctorRepo, dispatcher)
	careService := service.NewCareService(planRepo, consentRepo, patientRepo, dispatcher)
	profileService := service.NewProfileService(patientRepo, doctorRepo)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Patients:       handlers.NewPatientsHandler(authService, profileService),
		Doctors:        handlers.NewDoctorsHandler(authService, profileService),
		Sessions:       handlers.NewSessionsHandler(authService, cookieCodec, cfg.OAuth),
		Appointments:   handlers.NewAppointmentsHandler(appointmentService),
		Care:           handlers.NewCareHandler(careService),
		AuthMiddleware: authMiddleware,
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
