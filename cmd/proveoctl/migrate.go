package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Proveo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Proveo-api/pkg/config"
	"github.com/jhoicas/Proveo-api/pkg/logger"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate [up|down|status]",
		Short: "Aplica, revierte o muestra las migraciones embebidas",
	}
	cmd.AddCommand(migrateSubcommand("up", "Aplica las migraciones pendientes", func(m *postgres.Migrator, c *cobra.Command) error {
		return m.Up(c.Context())
	}))
	cmd.AddCommand(migrateSubcommand("down", "Revierte la última migración aplicada", func(m *postgres.Migrator, c *cobra.Command) error {
		return m.Down(c.Context())
	}))
	cmd.AddCommand(migrateSubcommand("status", "Muestra la versión actual y las pendientes", func(m *postgres.Migrator, c *cobra.Command) error {
		st, err := m.Status(c.Context())
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}))
	return cmd
}

func migrateSubcommand(use, short string, run func(m *postgres.Migrator, c *cobra.Command) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

			m, err := postgres.NewMigrator(cfg.DB.ConnectionString(), postgres.MigrationsFS, log)
			if err != nil {
				return err
			}
			defer m.Close()
			if err := run(m, c); err != nil {
				return fmt.Errorf("migrate %s: %w", use, err)
			}
			return nil
		},
	}
}
