package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/navidnahidi/canals/internal/config"
	"github.com/navidnahidi/canals/internal/postgres"
	"github.com/navidnahidi/canals/internal/seed"
	"github.com/spf13/cobra"
)

const versionTimeFormat = "20060102150405"

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{Use: "canalsctl"}
	rootCmd.AddCommand(
		migrateUpCommand(),
		migrateDownCommand(),
		createMigrationCommand(),
		seedCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newMigrator() (*migrate.Migrate, error) {
	cfg := config.Load()
	return migrate.New(
		fmt.Sprintf("file://%s", cfg.MigrationsDir),
		cfg.PostgresDSN,
	)
}

func migrateUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate-up",
		Short: "apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newMigrator()
			if err != nil {
				return err
			}
			err = m.Up()
			if err == migrate.ErrNoChange {
				fmt.Println("No change in migration")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Println("Migrated up")
			return nil
		},
	}
}

func migrateDownCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate-down",
		Short: "roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newMigrator()
			if err != nil {
				return err
			}
			err = m.Steps(-1)
			if err == migrate.ErrNoChange {
				fmt.Println("No change in migration")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Println("Rolled back one migration")
			return nil
		},
	}
}

func createMigrationCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate-create [name]",
		Short: "create empty up/down migration files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			version := time.Now().Format(versionTimeFormat)
			up := fmt.Sprintf("%s/%s_%s.up.sql", cfg.MigrationsDir, version, args[0])
			down := fmt.Sprintf("%s/%s_%s.down.sql", cfg.MigrationsDir, version, args[0])

			if err := os.WriteFile(up, []byte{}, 0644); err != nil {
				return err
			}
			if err := os.WriteFile(down, []byte{}, 0644); err != nil {
				return err
			}

			fmt.Println("Created SQL up script:", up)
			fmt.Println("Created SQL down script:", down)
			return nil
		},
	}
}

func seedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "reset and load demo catalog, warehouses, and inventory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			db, err := postgres.Connect(ctx, cfg.PostgresDSN)
			if err != nil {
				return fmt.Errorf("db connect: %w", err)
			}
			defer db.Close()

			if err := seed.Run(ctx, db); err != nil {
				return err
			}
			fmt.Println("Seeded database")
			return nil
		},
	}
}
