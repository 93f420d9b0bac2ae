package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Proveo-api/internal/domain"
	"github.com/jhoicas/Proveo-api/internal/domain/entity"
	"github.com/jhoicas/Proveo-api/internal/domain/repository"
	"github.com/jhoicas/Proveo-api/internal/domain/search"
)

var _ repository.SearchIndex = (*SearchIndex)(nil)

// SearchIndex lee y refresca la vista materializada company_search.
type SearchIndex struct {
	pool *pgxpool.Pool
}

// NewSearchIndex construye el índice sobre el pool (fuera de transacciones).
func NewSearchIndex(pool *pgxpool.Pool) *SearchIndex {
	return &SearchIndex{pool: pool}
}

// searchSQL arma la consulta para el idioma. Las columnas salen de search.Language,
// nunca de la entrada del usuario; la tsquery y la regconfig van como parámetros.
func searchSQL(lang search.Language) string {
	desc, product := "company_description_es", "product_name_es"
	if lang == search.English {
		desc, product = "company_description_en", "product_name_en"
	}
	vec := lang.VectorColumn()
	return fmt.Sprintf(`
		SELECT company_id, company_name, %[1]s, address, company_email, %[2]s, commune_name,
		       ts_rank(%[3]s, q) AS score
		  FROM company_search, to_tsquery($1::regconfig, $2) AS q
		 WHERE %[3]s @@ q
		 ORDER BY score DESC, company_id
		 LIMIT $3 OFFSET $4`, desc, product, vec)
}

// Search ejecuta la búsqueda de texto completo sobre el vector del idioma pedido.
func (s *SearchIndex) Search(ctx context.Context, q repository.SearchQuery) ([]*entity.SearchResult, error) {
	rows, err := s.pool.Query(ctx, searchSQL(q.Language), q.Language.RegConfig(), q.TSQuery, q.Limit, q.Offset)
	if err != nil {
		if IsTransient(err) {
			return nil, fmt.Errorf("%w: search companies: %w", domain.ErrTransient, err)
		}
		return nil, fmt.Errorf("search companies: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.SearchResult, 0, q.Limit)
	for rows.Next() {
		var r entity.SearchResult
		if err := rows.Scan(&r.CompanyID, &r.Name, &r.Description, &r.Address, &r.Email,
			&r.ProductName, &r.CommuneName, &r.Score); err != nil {
			return nil, fmt.Errorf("scan search result: %w", err)
		}
		list = append(list, &r)
	}
	return list, rows.Err()
}

// Refresh recalcula la vista. En modo concurrente no bloquea lectores (requiere el índice único).
func (s *SearchIndex) Refresh(ctx context.Context, concurrent bool) error {
	stmt := `REFRESH MATERIALIZED VIEW company_search`
	if concurrent {
		stmt = `REFRESH MATERIALIZED VIEW CONCURRENTLY company_search`
	}
	if _, err := s.pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("refresh company_search: %w", err)
	}
	return nil
}
