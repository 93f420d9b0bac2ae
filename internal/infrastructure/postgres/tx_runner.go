package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Proveo-api/internal/application/ports"
	"github.com/jhoicas/Proveo-api/internal/domain"
	"github.com/jhoicas/Proveo-api/internal/domain/repository"
	"github.com/jhoicas/Proveo-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Proveo-api/pkg/logger"
	"github.com/jhoicas/Proveo-api/pkg/retry"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, reintentando
// la transacción completa ante errores transitorios.
type TxRunner struct {
	pool    *pgxpool.Pool
	policy  retry.Policy
	log     *logger.Logger
	metrics *metrics.Recorder
}

// NewTxRunner construye el runner con el pool y la política de reintentos.
// rec puede ser nil.
func NewTxRunner(pool *pgxpool.Pool, policy retry.Policy, log *logger.Logger, rec *metrics.Recorder) *TxRunner {
	policy.Retryable = IsTransient
	return &TxRunner{pool: pool, policy: policy, log: log.Component("tx"), metrics: rec}
}

func pgxOptions(opts repository.TxOptions) pgx.TxOptions {
	o := pgx.TxOptions{IsoLevel: pgx.ReadCommitted}
	if opts.Isolation == repository.Serializable {
		o.IsoLevel = pgx.Serializable
	}
	if opts.ReadOnly {
		o.AccessMode = pgx.ReadOnly
	}
	return o
}

// NewStore ata todos los repositorios a q (una transacción o el pool).
func NewStore(q Querier) repository.Store {
	return repository.Store{
		Users:     NewUserRepository(q),
		Products:  NewProductRepository(q),
		Communes:  NewCommuneRepository(q),
		Companies: NewCompanyRepository(q),
		Archive:   NewArchiveRepository(q),
	}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Si fn o el commit fallan con un error transitorio, la transacción entera se repite según la política.
// Agotados los intentos, el último error se devuelve marcado con domain.ErrTransient.
func (r *TxRunner) Run(ctx context.Context, opts repository.TxOptions, fn func(ctx context.Context, s repository.Store) error) error {
	policy := r.policy
	policy.OnRetry = func(attempt int, wait time.Duration, err error) {
		r.log.Warn().Err(err).Int("attempt", attempt).Dur("wait", wait).Msg("transacción transitoria, reintentando")
		r.metrics.ObserveRetry()
	}

	err := policy.Do(ctx, func(ctx context.Context) error {
		return r.runOnce(ctx, pgxOptions(opts), fn)
	})
	if err != nil && IsTransient(err) {
		return fmt.Errorf("%w: %w", domain.ErrTransient, err)
	}
	return err
}

func (r *TxRunner) runOnce(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context, s repository.Store) error) error {
	tx, err := r.pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	if err := fn(ctx, NewStore(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
