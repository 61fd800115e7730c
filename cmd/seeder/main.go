package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/footle/internal/catalog"
	"github.com/mauv0809/footle/internal/database"
	"github.com/spf13/cobra"
)

// Simplified config for the seeder; the server's JWT and Slack settings are not needed here.
type seederConfig struct {
	DBName     string `env:"DB_NAME" envDefault:"footle.db"`
	PrimaryURL string `env:"TURSO_PRIMARY_URL"`
	AuthToken  string `env:"TURSO_AUTH_TOKEN"`
}

var rootCmd = &cobra.Command{
	Use:   "footle-seeder",
	Short: "Load and dump the footle player catalog",
}

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "sample",
		Short: "Load the built-in sample catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd.Context(), func(ctx context.Context, store *catalog.Store) error {
				return load(ctx, store, catalog.SampleSnapshot())
			})
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Load a msgpack catalog snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			snap, err := catalog.ReadSnapshot(f)
			if err != nil {
				return err
			}
			return withCatalog(cmd.Context(), func(ctx context.Context, store *catalog.Store) error {
				return load(ctx, store, snap)
			})
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "export <file>",
		Short: "Write the catalog to a msgpack snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd.Context(), func(ctx context.Context, store *catalog.Store) error {
				snap, err := store.Export(ctx)
				if err != nil {
					return err
				}
				f, err := os.Create(args[0])
				if err != nil {
					return err
				}
				if err := catalog.WriteSnapshot(f, snap); err != nil {
					f.Close()
					return err
				}
				log.Info("Exported catalog", "file", args[0], "players", len(snap.Players), "transfers", len(snap.Transfers))
				return f.Close()
			})
		},
	})
}

func load(ctx context.Context, store *catalog.Store, snap *catalog.Snapshot) error {
	startTime := time.Now()
	if err := store.Import(ctx, snap); err != nil {
		return err
	}
	log.Info("Imported catalog", "players", len(snap.Players), "transfers", len(snap.Transfers), "duration", time.Since(startTime))
	return nil
}

// withCatalog opens the configured database, runs migrations and hands fn a catalog store.
func withCatalog(ctx context.Context, fn func(ctx context.Context, store *catalog.Store) error) error {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	var cfg seederConfig
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	db, teardown, err := database.InitDB(cfg.DBName, cfg.PrimaryURL, cfg.AuthToken)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer teardown()

	return fn(ctx, catalog.New(db))
}

func main() {
	log.Info("Starting catalog seeder...")
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatal("Seeder failed", "error", err)
	}
}
