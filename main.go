package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"github.com/IkingariSolorzano/gymcredit-be/cache"
	"github.com/IkingariSolorzano/gymcredit-be/config"
	"github.com/IkingariSolorzano/gymcredit-be/jobs"
	"github.com/IkingariSolorzano/gymcredit-be/middleware"
	"github.com/IkingariSolorzano/gymcredit-be/routes"
	"github.com/IkingariSolorzano/gymcredit-be/services"
	"github.com/IkingariSolorzano/gymcredit-be/validator"
	"github.com/IkingariSolorzano/gymcredit-be/websocket"
)

func main() {
	cfg := config.Load()
	log := config.NewLogger(cfg)

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := validator.RegisterBindings(); err != nil {
		log.WithError(err).Fatal("Failed to register request validators")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := config.ConnectDatabase(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	if err := config.RunMigrations(db, cfg, log); err != nil {
		log.WithError(err).Fatal("Failed to run seed migrations")
	}

	var gymCache cache.GymCache
	rdb, err := config.ConnectRedis(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, gym cache disabled")
	} else if rdb != nil {
		defer rdb.Close()
		gymCache = cache.NewRedisGymCache(rdb)
	}

	hub := websocket.NewHub(log)
	go hub.Run(ctx)

	authService := services.NewAuthService(services.AuthOptions{
		DB:         db,
		JWTSecret:  cfg.JWTSecret,
		TokenTTL:   cfg.TokenTTL,
		BcryptCost: cfg.BcryptCost,
		Logger:     log,
	})
	checkInService := services.NewCheckInService(services.CheckInOptions{
		DB:           db,
		BDTPerCredit: cfg.BDTPerCredit,
		Logger:       log,
		Notifier:     hub,
	})
	gymService := services.NewGymService(services.GymOptions{
		DB:       db,
		Cache:    gymCache,
		Logger:   log,
		Notifier: hub,
	})
	accountService := services.NewAccountService(services.AccountOptions{
		DB:           db,
		BDTPerCredit: cfg.BDTPerCredit,
		Logger:       log,
	})
	statsService := services.NewStatsService(services.StatsOptions{DB: db, Logger: log})
	reconcileService := services.NewReconcileService(services.ReconcileOptions{DB: db, Logger: log})

	c := cron.New()
	if err := jobs.InitCronJobs(c, cfg.ReconcileCron, reconcileService, log); err != nil {
		log.WithError(err).Fatal("Failed to initialize cron jobs")
	}
	defer c.Stop()

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	stopCleanup := limiter.StartCleanup(10*time.Minute, 30*time.Minute)
	defer stopCleanup()

	r, err := routes.SetupRoutes(routes.Dependencies{
		Logger:         log,
		JWTSecret:      cfg.JWTSecret,
		RateLimiter:    limiter,
		Hub:            hub,
		CORSOrigins:    cfg.CORSOrigins,
		TrustedProxies: cfg.TrustedProxies,
		Auth:           authService,
		CheckIns:       checkInService,
		Gyms:           gymService,
		Accounts:       accountService,
		Stats:          statsService,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to set up routes")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server shutdown failed")
	}
}
