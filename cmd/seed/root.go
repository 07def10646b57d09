package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"provider-network-pricing/internal/config"
	"provider-network-pricing/internal/domain"
	"provider-network-pricing/internal/domain/model"
	pg "provider-network-pricing/internal/infra/db/postgres"
	"provider-network-pricing/internal/infra/logging"
	"provider-network-pricing/internal/infra/worker"
	"provider-network-pricing/internal/usecase"
)

var (
	cfgPath  string
	seedPath string
	workers  int
)

var rootCmd = &cobra.Command{
	Use:          "seed",
	Short:        "Load service codes, networks, providers and rates from a YAML file",
	SilenceUsage: true,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a seed file without touching the database",
	RunE: func(cmd *cobra.Command, _ []string) error {
		sf, err := loadSeedFile(seedPath)
		if err != nil {
			return err
		}
		problems := sf.problems()
		for _, p := range problems {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		if hasErrors(problems) {
			return errors.New("seed file has errors")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d codes, %d networks, %d providers, %d default rates, %d provider rates\n",
			len(sf.Codes), len(sf.Networks), len(sf.Providers), len(sf.Rates.Default), len(sf.Rates.Provider))
		return nil
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Write the seed file into Postgres",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadConfig(cfgPath, true)
		if err != nil {
			return err
		}
		if cfg.Storage.Driver != config.DriverPostgres {
			return fmt.Errorf("seed requires storage.driver=postgres, got %q", cfg.Storage.Driver)
		}
		sf, err := loadSeedFile(seedPath)
		if err != nil {
			return err
		}
		if p := sf.problems(); hasErrors(p) {
			return fmt.Errorf("seed file has errors: %v", p)
		}
		logger := logging.New(cfg.Log, true)

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()
		return apply(ctx, cfg, sf, logger)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "path to YAML config file")
	rootCmd.PersistentFlags().StringVarP(&seedPath, "file", "f", "deploy/seed.example.yaml", "seed data")
	applyCmd.Flags().IntVar(&workers, "workers", 4, "parallel rate writers")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(applyCmd)
}

func apply(ctx context.Context, cfg *config.Config, sf *seedFile, logger *zerolog.Logger) error {
	db, err := pg.NewPgxPool(ctx, cfg.Database.URL, int32(workers)+1)
	if err != nil {
		return err
	}
	defer db.Close()

	codes := pg.NewServiceCodeRepo(db)
	rates := pg.NewRateRepo(db)
	tm := pg.NewTxManager(db)
	catalogUC := usecase.NewCatalogUseCase(codes, tm, logger)
	rateUC := usecase.NewRateUseCase(rates, codes, tm, logger)
	networkUC := usecase.NewNetworkUseCase(pg.NewNetworkRepo(db), tm, logger)
	providerUC := usecase.NewProviderUseCase(pg.NewProviderRepo(db), logger)

	now := model.LogicalTime(sf.Now)

	// Existing rows are left alone so the seed can be re-run.
	for _, c := range sf.Codes {
		if _, err := catalogUC.AddCode(ctx, c.Code, c.Description, c.Category); err != nil && !errors.Is(err, domain.ErrCodeExists) {
			return fmt.Errorf("code %s: %w", c.Code, err)
		}
	}
	for _, p := range sf.Providers {
		if _, err := providerUC.Register(ctx, "seed", p); err != nil && !errors.Is(err, domain.ErrProviderExists) {
			return fmt.Errorf("provider %s: %w", p.ID, err)
		}
	}
	for _, n := range sf.Networks {
		if _, err := networkUC.CreateNetwork(ctx, n.ID, n.Name, n.Description); err != nil && !errors.Is(err, domain.ErrNetworkExists) {
			return fmt.Errorf("network %s: %w", n.ID, err)
		}
		for _, m := range n.Providers {
			if _, err := networkUC.AddProvider(ctx, now, n.ID, m.ID, m.Tier); err != nil && !errors.Is(err, domain.ErrProviderExists) {
				return fmt.Errorf("membership %s/%s: %w", n.ID, m.ID, err)
			}
		}
	}

	// Rates are upserts and always overwrite. Every key is distinct, so they
	// can be applied in parallel.
	pool := worker.NewPool(workers, logger)
	pool.Start(ctx)
	for _, r := range sf.Rates.Default {
		r := r
		if err := pool.Submit(ctx, func(ctx context.Context) error {
			_, err := rateUC.SetDefaultNetworkRate(ctx, r.Network, r.Code, r.Rate, r.window())
			return err
		}); err != nil {
			_ = pool.Wait()
			return err
		}
	}
	for _, r := range sf.Rates.Provider {
		r := r
		if err := pool.Submit(ctx, func(ctx context.Context) error {
			_, err := rateUC.SetProviderRate(ctx, now, r.Network, r.Provider, r.Code, r.Rate, r.window())
			return err
		}); err != nil {
			_ = pool.Wait()
			return err
		}
	}
	if err := pool.Wait(); err != nil {
		return fmt.Errorf("rates: %w", err)
	}

	logger.Info().
		Int("codes", len(sf.Codes)).
		Int("networks", len(sf.Networks)).
		Int("providers", len(sf.Providers)).
		Int("default_rates", len(sf.Rates.Default)).
		Int("provider_rates", len(sf.Rates.Provider)).
		Msg("seeding complete")
	return nil
}
