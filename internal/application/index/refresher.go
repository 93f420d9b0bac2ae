// Package index mantiene sincronizado el índice de búsqueda con las tablas vivas.
package index

import (
	"context"
	"time"

	"github.com/jhoicas/Proveo-api/internal/domain"
	"github.com/jhoicas/Proveo-api/internal/domain/repository"
	"github.com/jhoicas/Proveo-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Proveo-api/pkg/logger"
)

// Options política de refresco.
type Options struct {
	Concurrent bool
	Timeout    time.Duration // 0 = sin límite propio (aplica statement_timeout)
}

// Refresher refresca el índice de forma síncrona después de cada escritura confirmada.
type Refresher struct {
	index   repository.SearchIndex
	opts    Options
	log     *logger.Logger
	metrics *metrics.Recorder
}

// NewRefresher construye el refresher. rec puede ser nil.
func NewRefresher(index repository.SearchIndex, opts Options, log *logger.Logger, rec *metrics.Recorder) *Refresher {
	return &Refresher{index: index, opts: opts, log: log.Component("index"), metrics: rec}
}

// AfterCommit refresca el índice tras la operación op ya confirmada.
// El refresco no se omite si el cliente canceló: la escritura ya existe.
// Devuelve nil o un *domain.RefreshError.
func (r *Refresher) AfterCommit(ctx context.Context, op string) error {
	ctx = context.WithoutCancel(ctx)
	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}
	return r.refresh(ctx, op, r.opts.Concurrent)
}

// Rebuild refresca a demanda (herramientas de operación) con el modo indicado.
func (r *Refresher) Rebuild(ctx context.Context, concurrent bool) error {
	return r.refresh(ctx, "rebuild", concurrent)
}

func (r *Refresher) refresh(ctx context.Context, op string, concurrent bool) error {
	start := time.Now()
	err := r.index.Refresh(ctx, concurrent)
	elapsed := time.Since(start)
	r.metrics.ObserveRefresh(concurrent, elapsed, err)
	if err != nil {
		r.log.Error().Err(err).Str("op", op).Bool("concurrent", concurrent).Msg("refresh del índice falló")
		return &domain.RefreshError{Op: op, Err: err}
	}
	r.log.Debug().Str("op", op).Dur("elapsed", elapsed).Msg("índice refrescado")
	return nil
}
