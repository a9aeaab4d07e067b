package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	tokens "github.com/aminedz/microimport/internal/auth"
	"github.com/aminedz/microimport/internal/config"
	"github.com/aminedz/microimport/internal/repository/mongodb"
	"github.com/aminedz/microimport/internal/repository/sheets"
	"github.com/aminedz/microimport/internal/scheduler"
	"github.com/aminedz/microimport/internal/server/handlers"
	"github.com/aminedz/microimport/internal/server/middleware"
	"github.com/aminedz/microimport/internal/server/router"
	authsvc "github.com/aminedz/microimport/internal/service/auth"
	"github.com/aminedz/microimport/internal/service/calculation"
	configsvc "github.com/aminedz/microimport/internal/service/configuration"
	"github.com/aminedz/microimport/internal/service/export"
	voyagesvc "github.com/aminedz/microimport/internal/service/voyage"
	"github.com/aminedz/microimport/pkg/clients/fxrates"
	"github.com/aminedz/microimport/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := mongodb.NewStore(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	if err := store.EnsureIndexes(context.Background()); err != nil {
		baseLogger.Fatal("failed to ensure mongodb indexes", zap.Error(err))
	}

	var sheetsRepo sheets.Repository
	if cfg.Sheets.CredentialsPath != "" {
		sheetsRepo, err = sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		baseLogger.Info("sheets export enabled")
	} else {
		baseLogger.Warn("sheets credentials missing, spreadsheet export disabled")
	}

	tokenManager := tokens.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	calcSvc := calculation.NewService(baseLogger.Named("svc.calculation"))
	configSvc := configsvc.NewService(store.Configurations, baseLogger.Named("svc.configuration"))
	voyageSvc := voyagesvc.NewService(store.Voyages, configSvc, calcSvc, baseLogger.Named("svc.voyage"))
	accountSvc := authsvc.NewService(store.Users, tokenManager, baseLogger.Named("svc.auth"))
	exportSvc := export.NewService(sheetsRepo, baseLogger.Named("svc.export"))

	authGuard := middleware.NewAuth(tokenManager, store.Users, baseLogger.Named("middleware.auth"))

	engine := router.New(cfg.CORS, router.Handlers{
		Auth:           handlers.NewAuthHandler(accountSvc, cfg.Auth.TokenTTL, baseLogger.Named("handlers.auth")),
		Voyages:        handlers.NewVoyageHandler(voyageSvc, exportSvc, baseLogger.Named("handlers.voyages")),
		Configurations: handlers.NewConfigurationHandler(configSvc, baseLogger.Named("handlers.configurations")),
		Calculations:   handlers.NewCalculationHandler(voyageSvc, configSvc, calcSvc, baseLogger.Named("handlers.calculations")),
	}, authGuard, baseLogger.Named("router"))

	var fxClient *fxrates.Client
	if cfg.RateSync.URL != "" {
		fxClient = fxrates.NewClient(cfg.RateSync.URL)
		baseLogger.Info("official rate sync enabled", zap.String("url", cfg.RateSync.URL))
	}

	sched := scheduler.NewScheduler(*cfg, store.Voyages, configSvc, fxClient, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

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
