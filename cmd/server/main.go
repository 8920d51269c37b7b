package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/vaychinnakhet-arch/canetrack/internal/config"
	"github.com/vaychinnakhet-arch/canetrack/internal/repository/mongodb"
	"github.com/vaychinnakhet-arch/canetrack/internal/repository/sheets"
	"github.com/vaychinnakhet-arch/canetrack/internal/scheduler"
	"github.com/vaychinnakhet-arch/canetrack/internal/server/handlers"
	"github.com/vaychinnakhet-arch/canetrack/internal/server/router"
	quotasvc "github.com/vaychinnakhet-arch/canetrack/internal/service/quota"
	ticketsvc "github.com/vaychinnakhet-arch/canetrack/internal/service/tickets"
	"github.com/vaychinnakhet-arch/canetrack/pkg/clients/gemini"
	"github.com/vaychinnakhet-arch/canetrack/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.Debug))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	// Spreadsheet mirror is optional; without it the app runs local-only.
	var mirror ticketsvc.Mirror
	if cfg.MirrorEnabled() {
		sheetMirror, err := sheets.NewGoogleSheetMirror(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets mirror", zap.Error(err))
		}
		mirror = sheetMirror
		baseLogger.Info("google sheets mirror enabled")
	} else {
		baseLogger.Warn("google sheets mirror not configured, running local-only")
	}

	var visionClient gemini.Client
	if cfg.Vision.GeminiKey != "" {
		visionClient = gemini.NewClient(cfg.Vision.GeminiKey, cfg.Vision.GeminiModel)
		baseLogger.Info("gemini vision client enabled", zap.String("model", cfg.Vision.GeminiModel))
	} else {
		baseLogger.Warn("gemini api key missing, slip analysis disabled")
	}

	ticketSvc := ticketsvc.NewService(mongoRepo, mirror, visionClient, baseLogger.Named("svc.tickets"))
	quotaSvc := quotasvc.NewService(mongoRepo, baseLogger.Named("svc.quota"))

	ticketHandler := handlers.NewTicketHandler(ticketSvc, baseLogger.Named("handlers.tickets"))
	analyticsHandler := handlers.NewAnalyticsHandler(ticketSvc, quotaSvc, cfg.Season, baseLogger.Named("handlers.analytics"))
	engine := router.New(ticketHandler, analyticsHandler, baseLogger.Named("router"))

	if mirror != nil {
		sched := scheduler.NewScheduler(cfg.Sync, ticketSvc, baseLogger.Named("scheduler"))
		sched.Start()
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
