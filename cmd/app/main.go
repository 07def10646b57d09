// File: cmd/app/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"provider-network-pricing/internal/config"
	"provider-network-pricing/internal/infra/api"
	apiv1 "provider-network-pricing/internal/infra/api/apiv1"
	"provider-network-pricing/internal/infra/logging"
	"provider-network-pricing/internal/infra/metrics"
	"provider-network-pricing/internal/infra/sched"
	"provider-network-pricing/internal/usecase"
)

var version = "dev"

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "console logging and verbose defaults")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("service stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) error {
	metrics.MustRegister()
	metrics.SetBuildInfo(version, cfg.Storage.Driver)

	st, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	if st.PoolStats != nil {
		w := sched.NewPoolStatsWorker(cfg.Metrics.PoolStatsInterval, st.PoolStats, logger)
		go func() { _ = w.Run(ctx) }()
	}

	// ---- Use cases ----
	srv := apiv1.NewServer(apiv1.Deps{
		Catalog:   usecase.NewCatalogUseCase(st.Codes, st.Tx, logger),
		Rates:     usecase.NewRateUseCase(st.Rates, st.Codes, st.Tx, logger),
		Resolver:  usecase.NewResolverUseCase(st.Rates, logger),
		Networks:  usecase.NewNetworkUseCase(st.Networks, st.Tx, logger),
		Providers: usecase.NewProviderUseCase(st.Providers, logger),
	}, logger)

	// ---- HTTP ----
	auth := api.BearerAuth(cfg.HTTP.APIKey)
	if cfg.HTTP.JWTSecret != "" {
		auth = api.JWTPrincipal(cfg.HTTP.JWTSecret)
	}
	r := chi.NewRouter()
	r.Use(
		api.Recover(logger),
		api.TraceID(),
		api.RequestLog(logger),
		api.Timeout(cfg.HTTP.RequestTimeout),
		auth,
		api.RateLimit(limiters(ctx, cfg.HTTP)),
	)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle(cfg.Metrics.Path, promhttp.Handler())
	srv.Register(r)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Str("storage", cfg.Storage.Driver).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutdown requested")
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func limiters(ctx context.Context, cfg config.HTTPConfig) *api.Limiters {
	if cfg.RateLimitRPS <= 0 {
		return nil
	}
	l := api.NewLimiters(cfg.RateLimitRPS, cfg.RateLimitBurst, 15*time.Minute)
	go l.RunJanitor(ctx, 2*time.Minute)
	return l
}
