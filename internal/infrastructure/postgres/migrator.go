package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/go-extras/go-kit/must"
	"github.com/stokaro/ptah/dbschema"
	"github.com/stokaro/ptah/migration/migrator"

	"github.com/jhoicas/Proveo-api/pkg/logger"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// MigrationsFS migraciones SQL embebidas en el binario (NNNNNNNNNN_descripcion.(up|down).sql).
var MigrationsFS = must.Must(fs.Sub(embeddedMigrations, "migrations"))

// MigrationStatus estado actual del esquema.
type MigrationStatus = migrator.MigrationStatus

// Migrator aplica las migraciones embebidas con ptah, cada versión en su propia transacción.
// Usa una conexión propia; el pool de la API no se toca.
type Migrator struct {
	conn *dbschema.DatabaseConnection
	mig  *migrator.Migrator
	log  *logger.Logger
}

// NewMigrator abre la conexión de migraciones y carga fsys (normalmente MigrationsFS).
// El llamador debe invocar Close.
func NewMigrator(databaseURL string, fsys fs.FS, log *logger.Logger) (*Migrator, error) {
	conn, err := dbschema.ConnectToDatabase(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("conexión de migraciones a %s: %w", redactDSN(databaseURL), err)
	}
	mig, err := migrator.NewFSMigrator(conn, fsys)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("cargar migraciones: %w", err)
	}
	l := log.Component("migrator")
	return &Migrator{conn: conn, mig: mig.WithLogger(l.Slog()), log: l}, nil
}

// Close cierra la conexión de migraciones.
func (m *Migrator) Close() {
	m.conn.Close()
}

// Versions versiones conocidas, en orden ascendente.
func (m *Migrator) Versions() []int {
	list := m.mig.MigrationProvider().Migrations()
	out := make([]int, 0, len(list))
	for _, mig := range list {
		out = append(out, mig.Version)
	}
	return out
}

// Status informa versión actual y migraciones pendientes.
func (m *Migrator) Status(ctx context.Context) (*MigrationStatus, error) {
	st, err := m.mig.GetMigrationStatus(ctx)
	if err != nil {
		return nil, err
	}
	if st.PendingMigrations == nil {
		st.PendingMigrations = []int{}
	}
	return st, nil
}

// Up aplica todas las migraciones pendientes en orden.
func (m *Migrator) Up(ctx context.Context) error {
	return m.mig.MigrateUp(ctx)
}

// Down revierte la última migración aplicada. Sin migraciones aplicadas no hace nada.
func (m *Migrator) Down(ctx context.Context) error {
	current, err := m.mig.GetCurrentVersion(ctx)
	if err != nil {
		return err
	}
	if current == 0 {
		m.log.Info().Msg("no hay migraciones para revertir")
		return nil
	}
	return m.mig.MigrateDown(ctx)
}
