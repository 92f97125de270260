// Package migrate implements the migrate CLI command.
package migrate

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tonpay/internal/infrastructure/config"
	"tonpay/internal/infrastructure/database"
	"tonpay/internal/infrastructure/migration"
	"tonpay/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
		Long:  `Apply, roll back or inspect the database schema migrations.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := initEnv()
			if err != nil {
				return err
			}
			defer database.Close()
			return migration.Up(database.Get(), cfg.Database.Driver)
		},
	}
}

func newDownCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := initEnv()
			if err != nil {
				return err
			}
			defer database.Close()
			return migration.Down(database.Get(), cfg.Database.Driver)
		},
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := initEnv()
			if err != nil {
				return err
			}
			defer database.Close()
			return migration.Status(database.Get(), cfg.Database.Driver)
		},
	}
}

func initEnv() (*config.Config, error) {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if cfg.Database.Driver == "memory" {
		return nil, fmt.Errorf("the memory driver has no schema to migrate")
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, nil
}
