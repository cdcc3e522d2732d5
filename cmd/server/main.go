package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"

	"github.com/mikl0s/JAI/internal/config"
	"github.com/mikl0s/JAI/internal/db"
	"github.com/mikl0s/JAI/internal/handler"
	"github.com/mikl0s/JAI/internal/middleware"
	"github.com/mikl0s/JAI/internal/repository"
	"github.com/mikl0s/JAI/internal/router"
	"github.com/mikl0s/JAI/internal/service"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "jai-api")
	log := middleware.Logger

	if cfg.HMACSecret == "" {
		log.Fatal().Msg("HMAC_SECRET_KEY is required")
	}
	if cfg.SessionSecret == "" {
		log.Fatal().Msg("SESSION_SECRET_KEY is required")
	}
	if cfg.AdminPassword == "" {
		log.Fatal().Msg("ADMIN_PASSWORD is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	handler.InitMetrics(pool)
	cache.SetCounters(handler.Metrics.CacheHits, handler.Metrics.CacheMisses)

	// Repositories
	judgeRepo := repository.NewJudgeRepo(pool)
	voteRepo := repository.NewVoteRepo(pool)
	submissionRepo := repository.NewSubmissionRepo(pool)
	whitelistRepo := repository.NewWhitelistRepo(pool)
	adminLogRepo := repository.NewAdminLogRepo(pool)
	geoRepo := repository.NewGeoRepo(pool)
	analyticsRepo := repository.NewAnalyticsRepo(pool)

	// Services
	statusSvc := service.NewStatusService()
	gateSvc := service.NewGateService(whitelistRepo, submissionRepo)
	geoSvc := service.NewGeoService(geoRepo, cfg.GeoAPIKey)
	judgeSvc := service.NewJudgeService(judgeRepo, statusSvc, cache)
	voteSvc := service.NewVoteService(judgeRepo, voteRepo, gateSvc, cache)
	submissionSvc := service.NewSubmissionService(submissionRepo, gateSvc, geoSvc)
	moderationSvc := service.NewModerationService(submissionRepo, geoRepo, adminLogRepo, cache)
	analyticsSvc := service.NewAnalyticsService(analyticsRepo)

	// Background workers
	go geoSvc.Start(ctx)
	statusWorker := service.NewStatusWorker(pool, voteRepo, judgeRepo, statusSvc, cache)
	go statusWorker.Start(ctx)

	// Middleware
	mw := &router.Middlewares{
		Identity: middleware.NewIdentityResolver(cfg.TrustedProxies),
		HMAC:     middleware.NewHMACVerifier(cfg.HMACSecret),
		Sessions: middleware.NewSessionManager(cfg.SessionSecret),
	}

	// Handlers
	h := &router.Handlers{
		Judge:      handler.NewJudgeHandler(judgeSvc),
		Vote:       handler.NewVoteHandler(voteSvc),
		Submission: handler.NewSubmissionHandler(submissionSvc),
		Admin: handler.NewAdminHandler(judgeSvc, moderationSvc, adminLogRepo, whitelistRepo,
			mw.Sessions, cfg.AdminUsername, cfg.AdminPassword),
		Analytics: handler.NewAnalyticsHandler(analyticsSvc, submissionRepo),
		Health:    handler.NewHealthHandler(pool, cache.Client()),
	}

	app := fiber.New(fiber.Config{
		AppName:      "JAI API",
		ServerHeader: "JAI",
	})
	router.Setup(app, h, mw, cfg.CORSOrigins)

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("shutdown error")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Msg("jai backend starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
