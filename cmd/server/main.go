package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/prajapatkavitha/restaurant-management-project/internal/config"
	"github.com/prajapatkavitha/restaurant-management-project/internal/infra"
	"github.com/prajapatkavitha/restaurant-management-project/internal/repository"
	"github.com/prajapatkavitha/restaurant-management-project/internal/router"
	"github.com/prajapatkavitha/restaurant-management-project/internal/service"
	"github.com/prajapatkavitha/restaurant-management-project/internal/worker"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Async workers: notification emails drain a Redis queue, the nightly
	// report job runs on a cron schedule. Wired here, at the composition root.
	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	handlers := &worker.Handlers{
		Notification: worker.NewNotificationWorker(mailer),
	}
	worker.StartWorkerPool(ctx, rdb, handlers, cfg.WorkerPoolSize)

	orderRepo := repository.NewOrderRepository(db)
	salesRepo := repository.NewSalesReportRepository(db)
	loc, err := time.LoadLocation(cfg.ReportTimezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.ReportTimezone).Msg("invalid report timezone")
	}
	reportSvc := service.NewReportService(orderRepo, rdb,
		time.Duration(cfg.ReportCacheTTLMinutes)*time.Minute, loc)
	if err := worker.StartReportCron(ctx, worker.ReportCronConfig{
		Aggregator:  reportSvc,
		ReportRepo:  salesRepo,
		StoragePath: cfg.ReportStoragePath,
		Timezone:    cfg.ReportTimezone,
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to start report cron")
	}

	r := router.New(cfg, db, rdb, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("restaurant backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
