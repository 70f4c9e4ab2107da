package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/netair/conciliador/internal/api"
	"github.com/netair/conciliador/internal/domain"
	"github.com/netair/conciliador/internal/ingestion"
	"github.com/netair/conciliador/internal/reconciliation"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	port := envDefault("PORT", "1909")
	costCenter := envDefault("COST_CENTER", "NETAIR")
	internalAccounts := strings.Split(
		envDefault("INTERNAL_ACCOUNT_MARKERS", "netparts,jonathan,netair"), ",")

	engine := reconciliation.NewEngine(reconciliation.Config{
		Chart:            domain.DefaultChart(),
		CostCenter:       costCenter,
		InternalAccounts: internalAccounts,
	}, logger)
	ingestionSvc := ingestion.NewService(logger)

	router := api.NewRouter(ingestionSvc, engine, logger)

	logger.Info("conciliador listening",
		zap.String("port", port),
		zap.String("cost_center", costCenter),
	)

	srv := &http.Server{Addr: ":" + port, Handler: router}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown incomplete", zap.Error(err))
		}
	}
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
