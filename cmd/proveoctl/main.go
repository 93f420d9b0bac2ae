// proveoctl herramienta de operación: migraciones, reconstrucción del índice y alta de admins.
package main

import (
	"context"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Proveo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Proveo-api/pkg/config"
	"github.com/jhoicas/Proveo-api/pkg/logger"
)

// env dependencias comunes de los subcomandos.
type env struct {
	cfg  *config.Config
	log  *logger.Logger
	pool *pgxpool.Pool
}

// connect carga configuración, logger y pool. El llamador cierra el pool.
func connect(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, pool: pool}, nil
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "proveoctl",
		Short:         "Operación de la API Proveo",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newMigrateCommand())
	root.AddCommand(newRefreshIndexCommand())
	root.AddCommand(newCreateAdminCommand())
	return root
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
