package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hydrosync/internal/adapter/docstore"
	"hydrosync/internal/adapter/document"
	adapthttp "hydrosync/internal/adapter/http"
	"hydrosync/internal/adapter/notify"
	"hydrosync/internal/app"
	"hydrosync/internal/clock"
	"hydrosync/internal/config"
	"hydrosync/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logging.New("info", "")
		boot.Fatal().Err(err).Msg("config")
	}
	log := logging.New(cfg.LogLevel, cfg.LogDir)

	store, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open store")
	}
	defer func() { _ = store.Close() }()

	repo := document.New(store)

	var verifier app.CredentialVerifier = app.PlainVerifier{}
	if cfg.CredentialScheme == config.CredentialsBcrypt {
		verifier = app.BcryptVerifier{}
	}

	clk := clock.NewRealClock()
	accounts := app.NewAccountService(repo, verifier)
	reminders := app.NewReminderManager(app.ReminderConfig{
		CheckInterval: cfg.ReminderCheckInterval,
		Threshold:     cfg.ReminderThreshold,
	}, clk, notify.NewLogSink(log), log)
	hydration := app.NewHydrationService(repo, repo, clk, time.Local, cfg.TumblerCapacityMl, reminders)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           adapthttp.New(accounts, hydration, reminders, cfg.JWTSecret, log).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", cfg.Addr).Str("store", cfg.StoreDriver).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	// Sessions end with the process; no reminder timer survives shutdown.
	reminders.StopAll()
	log.Info().Msg("stopped")
}

func openStore(cfg config.Config) (docstore.Store, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		return docstore.OpenPostgres(cfg.DatabaseURL, cfg.StoreKey)
	case config.StoreSQLite:
		return docstore.OpenSQLite(cfg.SQLitePath, cfg.StoreKey)
	default:
		return docstore.NewMemory(), nil
	}
}
