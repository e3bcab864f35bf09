// Command mawaqit-admin runs maintenance tasks against the configured store.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Mawaqit/initializers"
	"github.com/Mawaqit/services"
)

var (
	statsPeriod string
	statsFilter string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mawaqit-admin",
		Short:         "Maintenance commands for the Mawaqit backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the Postgres tables",
		Args:  cobra.NoArgs,
		RunE:  runMigrate,
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the default daily inspirations",
		Args:  cobra.NoArgs,
		RunE:  runSeed,
	}

	statsCmd := &cobra.Command{
		Use:   "stats <user-id>",
		Short: "Print prayer statistics for a user",
		Args:  cobra.ExactArgs(1),
		RunE:  runStats,
	}
	statsCmd.Flags().StringVar(&statsPeriod, "period", "daily", "daily, weekly or monthly")
	statsCmd.Flags().StringVar(&statsFilter, "filter", "all", "all or a prayer name")

	root.AddCommand(migrateCmd, seedCmd, statsCmd)
	return root
}

func openBackends(ctx context.Context) (initializers.Config, *initializers.Backends, error) {
	cfg, err := initializers.LoadConfig()
	if err != nil {
		return cfg, nil, err
	}
	log.SetLevel(cfg.LogLevel)

	var fb *initializers.Firebase
	if cfg.StoreBackend == initializers.StoreFirestore {
		if fb, err = initializers.InitFirebase(ctx, cfg); err != nil {
			return cfg, nil, err
		}
	}

	backends, err := initializers.OpenBackends(ctx, cfg, fb)
	return cfg, backends, err
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	_, backends, err := openBackends(ctx)
	if err != nil {
		return err
	}
	defer backends.Close()

	if backends.Postgres == nil {
		return fmt.Errorf("migrate requires STORE_BACKEND=%s", initializers.StorePostgres)
	}
	if err := backends.Postgres.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	_, backends, err := openBackends(ctx)
	if err != nil {
		return err
	}
	defer backends.Close()

	inspirations := services.SeedInspirations()
	if err := backends.Inspirations.SeedInspirations(ctx, inspirations); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d inspirations\n", len(inspirations))
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	cfg, backends, err := openBackends(ctx)
	if err != nil {
		return err
	}
	defer backends.Close()

	stats := services.NewStatisticsService(backends.Records, nil, cfg.Location, services.StatisticsConfig{
		BatchSize:      cfg.StatsBatchSize,
		MaxConcurrency: cfg.StatsMaxConcurrency,
	})
	buckets, err := stats.Aggregate(ctx, args[0], statsPeriod, statsFilter)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(buckets)
}

func main() {
	initializers.LoadEnv()

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		log.Error("command failed", "err", err)
		os.Exit(1)
	}
}
