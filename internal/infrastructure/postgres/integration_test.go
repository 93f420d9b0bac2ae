package postgres_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Proveo-api/internal/application/dto"
	"github.com/jhoicas/Proveo-api/internal/application/index"
	"github.com/jhoicas/Proveo-api/internal/application/usecase"
	"github.com/jhoicas/Proveo-api/internal/domain"
	"github.com/jhoicas/Proveo-api/internal/domain/entity"
	"github.com/jhoicas/Proveo-api/internal/domain/repository"
	"github.com/jhoicas/Proveo-api/internal/infrastructure/image"
	"github.com/jhoicas/Proveo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Proveo-api/pkg/config"
	"github.com/jhoicas/Proveo-api/pkg/logger"
	"github.com/jhoicas/Proveo-api/pkg/retry"
)

// Suite contra una base real. Borra el esquema proveo: usar una base dedicada.
//
//	PROVEO_TEST_DATABASE_URL=postgres://... go test ./internal/infrastructure/postgres/...
type env struct {
	pool     *pgxpool.Pool
	tx       *postgres.TxRunner
	idx      *postgres.SearchIndex
	refr     *index.Refresher
	users    *usecase.UserUseCase
	products *usecase.ProductUseCase
	communes *usecase.CommuneUseCase
	company  *usecase.CompanyUseCase
	search   *usecase.SearchUseCase
}

type sameTranslator struct{}

func (sameTranslator) Translate(_ context.Context, text, _, _ string) (string, error) {
	return text, nil
}

func setup(t *testing.T) *env {
	t.Helper()
	url := os.Getenv("PROVEO_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("PROVEO_TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	log := logger.Nop()

	pool, err := postgres.NewPool(ctx, config.DBConfig{
		DatabaseURL: url, MinConns: 0, MaxConns: 8, StatementTimeout: 30 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `DROP SCHEMA IF EXISTS `+postgres.Schema+` CASCADE`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `DROP TABLE IF EXISTS schema_migrations`)
	require.NoError(t, err)
	m, err := postgres.NewMigrator(url, postgres.MigrationsFS, log)
	require.NoError(t, err)
	t.Cleanup(m.Close)
	require.NoError(t, m.Up(ctx))

	st, err := m.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, st.CurrentVersion)
	require.Empty(t, st.PendingMigrations)

	policy := retry.Default(nil)
	policy.Multiplier = 10 * time.Millisecond
	policy.MaxAttempts = 5
	tx := postgres.NewTxRunner(pool, policy, log, nil)
	idx := postgres.NewSearchIndex(pool)
	refr := index.NewRefresher(idx, index.Options{Concurrent: true, Timeout: 30 * time.Second}, log, nil)
	images, err := image.NewResolver("")
	require.NoError(t, err)

	return &env{
		pool: pool, tx: tx, idx: idx, refr: refr,
		users:    usecase.NewUserUseCase(tx, refr, log),
		products: usecase.NewProductUseCase(tx, refr, sameTranslator{}, log),
		communes: usecase.NewCommuneUseCase(tx, refr, log),
		company:  usecase.NewCompanyUseCase(tx, refr, images, log),
		search:   usecase.NewSearchUseCase(idx, 20, 100),
	}
}

func (e *env) addUser(t *testing.T, id, email string) entity.Requester {
	t.Helper()
	err := e.tx.Run(context.Background(), repository.TxOptions{}, func(ctx context.Context, s repository.Store) error {
		return s.Users.Create(ctx, &entity.User{
			ID: id, Name: email, Email: email, PasswordHash: "x", Role: entity.RoleUser, CreatedAt: time.Now().UTC(),
		})
	})
	require.NoError(t, err)
	return entity.Requester{UserID: id, Role: entity.RoleUser}
}

var admin = entity.Requester{UserID: "00000000-0000-0000-0000-00000000000a", Role: entity.RoleAdmin}

func (e *env) catalog(t *testing.T) (productID, communeID string) {
	t.Helper()
	ctx := context.Background()
	p, err := e.products.Create(ctx, admin, dto.CreateProductRequest{NameES: "Panadería", NameEN: "Bakery Goods"})
	require.NoError(t, err)
	c, err := e.communes.Create(ctx, admin, dto.CreateCommuneRequest{Name: "Springfield"})
	require.NoError(t, err)
	return p.ID, c.ID
}

func companyIn(productID, communeID, name string) dto.CreateCompanyRequest {
	return dto.CreateCompanyRequest{
		ProductID: productID, CommuneID: communeID, Name: name,
		DescriptionES: "Pan fresco todos los días", DescriptionEN: "Fresh bread every day",
		Address: "742 Evergreen Terrace", Phone: "555-0100", Email: "hola@bakery.test",
		ImageURL: "https://img.test/logo.png",
	}
}

func TestIntegration_BusquedaYCascada(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	productID, communeID := e.catalog(t)
	joe := e.addUser(t, "00000000-0000-0000-0000-000000000001", "joe@bakery.test")

	created, err := e.company.Create(ctx, joe, companyIn(productID, communeID, "Joe's Bakery"))
	require.NoError(t, err)

	res, err := e.search.Search(ctx, dto.SearchRequest{Query: "Bakery Springfield", Language: "en"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, created.ID, res.Items[0].ID)
	assert.Equal(t, "Bakery Goods", res.Items[0].ProductName)
	assert.Greater(t, res.Items[0].RelevanceScore, float32(0))

	res, err = e.search.Search(ctx, dto.SearchRequest{Query: "bakery", Language: "en"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, created.ID, res.Items[0].ID)

	res, err = e.search.Search(ctx, dto.SearchRequest{Query: "panad", Language: "es"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1, "búsqueda por prefijo en español")

	_, err = e.products.Delete(ctx, admin, productID)
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 1, conflict.References)

	liveCompany := e.row(t, "companies", created.ID)
	liveUser := e.row(t, "users", joe.UserID)

	del, err := e.users.DeleteCascade(ctx, joe.UserID)
	require.NoError(t, err)
	assert.Equal(t, 1, del.CompaniesDeleted)

	res, err = e.search.Search(ctx, dto.SearchRequest{Query: "Bakery", Language: "en"})
	require.NoError(t, err)
	assert.Empty(t, res.Items, "el índice no debe contener empresas archivadas")

	var archived int
	require.NoError(t, e.pool.QueryRow(ctx, `SELECT count(*) FROM companies_deleted WHERE user_id = $1`, joe.UserID).Scan(&archived))
	assert.Equal(t, 1, archived)
	assert.Equal(t, liveCompany, e.row(t, "companies_deleted", created.ID), "la sombra conserva todas las columnas")
	assert.Equal(t, liveUser, e.row(t, "users_deleted", joe.UserID))
	e.assertDeletedAt(t, "companies_deleted", created.ID)
	e.assertDeletedAt(t, "users_deleted", joe.UserID)

	for _, table := range []string{"companies", "users"} {
		var live int
		require.NoError(t, e.pool.QueryRow(ctx, `SELECT count(*) FROM `+table+` WHERE id = ANY($1::uuid[])`, []string{created.ID, joe.UserID}).Scan(&live))
		assert.Zero(t, live, table)
	}

	_, err = e.products.Delete(ctx, admin, productID)
	require.NoError(t, err, "sin empresas el producto se puede archivar")
}

func TestIntegration_UnaEmpresaPorUsuarioConcurrente(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	productID, communeID := e.catalog(t)
	joe := e.addUser(t, "00000000-0000-0000-0000-000000000001", "joe@bakery.test")

	const n = 4
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		oks  int
		errs []error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.company.Create(ctx, joe, companyIn(productID, communeID, "Joe's Bakery"))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				oks++
				return
			}
			errs = append(errs, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, oks)
	for _, err := range errs {
		assert.True(t, errors.Is(err, domain.ErrCompanyAlreadyExists), "error inesperado: %v", err)
	}
}

func TestIntegration_BorradoIdempotente(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	productID, communeID := e.catalog(t)
	joe := e.addUser(t, "00000000-0000-0000-0000-000000000001", "joe@bakery.test")
	created, err := e.company.Create(ctx, joe, companyIn(productID, communeID, "Joe's Bakery"))
	require.NoError(t, err)

	res, err := e.search.Search(ctx, dto.SearchRequest{Query: "bakery", Language: "en"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, created.ID, res.Items[0].ID)
	live := e.row(t, "companies", created.ID)

	ok, err := e.company.Delete(ctx, joe, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// Sin Rebuild: el refresco síncrono del borrado ya sacó la empresa del índice.
	res, err = e.search.Search(ctx, dto.SearchRequest{Query: "bakery", Language: "en"})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, live, e.row(t, "companies_deleted", created.ID))

	ok, err = e.company.Delete(ctx, joe, created.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	var archived int
	require.NoError(t, e.pool.QueryRow(ctx, `SELECT count(*) FROM companies_deleted WHERE id = $1`, created.ID).Scan(&archived))
	assert.Equal(t, 1, archived, "el segundo borrado no duplica la sombra")
}

// row lee la fila con id dado como columna -> valor, sin deleted_at.
func (e *env) row(t *testing.T, table, id string) map[string]any {
	t.Helper()
	rows, err := e.pool.Query(context.Background(), `SELECT * FROM `+table+` WHERE id = $1`, id)
	require.NoError(t, err)
	m, err := pgx.CollectOneRow(rows, pgx.RowToMap)
	require.NoError(t, err, table)
	for k, v := range m {
		if ts, ok := v.(time.Time); ok {
			m[k] = ts.UTC()
		}
	}
	delete(m, "deleted_at")
	return m
}

func (e *env) assertDeletedAt(t *testing.T, table, id string) {
	t.Helper()
	var at time.Time
	require.NoError(t, e.pool.QueryRow(context.Background(), `SELECT deleted_at FROM `+table+` WHERE id = $1`, id).Scan(&at))
	assert.WithinDuration(t, time.Now(), at, time.Minute)
}
