package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

func main() {
	cfg := mustConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	app := newApp(cfg, logger)

	// Initial history sync, same as the dashboard loading. A ledger outage
	// here degrades to an empty list; it must not prevent startup.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	app.session.RefreshHistory(ctx)
	cancel()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("HerbTrace farmer gateway listening", zap.String("port", cfg.Port), zap.String("ledger", cfg.LedgerURL))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server exited", zap.Error(err))
	}
}
