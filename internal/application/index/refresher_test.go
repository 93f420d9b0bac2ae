package index_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Proveo-api/internal/application/index"
	"github.com/jhoicas/Proveo-api/internal/domain"
	"github.com/jhoicas/Proveo-api/internal/domain/entity"
	"github.com/jhoicas/Proveo-api/internal/domain/repository"
	"github.com/jhoicas/Proveo-api/pkg/logger"
)

type stubIndex struct {
	err        error
	calls      int
	concurrent []bool
	ctxErr     error
	deadline   bool
}

func (s *stubIndex) Search(context.Context, repository.SearchQuery) ([]*entity.SearchResult, error) {
	return nil, nil
}

func (s *stubIndex) Refresh(ctx context.Context, concurrent bool) error {
	s.calls++
	s.concurrent = append(s.concurrent, concurrent)
	s.ctxErr = ctx.Err()
	_, s.deadline = ctx.Deadline()
	return s.err
}

func TestAfterCommit_UsaModoConfigurado(t *testing.T) {
	idx := &stubIndex{}
	r := index.NewRefresher(idx, index.Options{Concurrent: true}, logger.Nop(), nil)

	require.NoError(t, r.AfterCommit(context.Background(), "create_company"))
	assert.Equal(t, []bool{true}, idx.concurrent)
	assert.False(t, idx.deadline)
}

func TestAfterCommit_IgnoraCancelacionDelCliente(t *testing.T) {
	idx := &stubIndex{}
	r := index.NewRefresher(idx, index.Options{Timeout: time.Minute}, logger.Nop(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, r.AfterCommit(ctx, "delete_company"))
	assert.Equal(t, 1, idx.calls)
	assert.NoError(t, idx.ctxErr, "el refresh no hereda la cancelación")
	assert.True(t, idx.deadline, "aplica el timeout propio")
}

func TestAfterCommit_FalloDevuelveRefreshError(t *testing.T) {
	cause := errors.New("lock timeout")
	r := index.NewRefresher(&stubIndex{err: cause}, index.Options{}, logger.Nop(), nil)

	err := r.AfterCommit(context.Background(), "update_company")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIndexRefresh)
	assert.ErrorIs(t, err, cause)

	var rerr *domain.RefreshError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "update_company", rerr.Op)
}

func TestRebuild_ModoExplicito(t *testing.T) {
	idx := &stubIndex{}
	r := index.NewRefresher(idx, index.Options{Concurrent: true}, logger.Nop(), nil)
	require.NoError(t, r.Rebuild(context.Background(), false))
	assert.Equal(t, []bool{false}, idx.concurrent)
}
