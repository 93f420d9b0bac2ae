package repository

import (
	"context"

	"github.com/jhoicas/Proveo-api/internal/domain/entity"
	"github.com/jhoicas/Proveo-api/internal/domain/search"
)

// SearchQuery consulta ya saneada contra el índice.
type SearchQuery struct {
	TSQuery  string // salida de search.BuildTSQuery, nunca vacía
	Language search.Language
	Limit    int
	Offset   int
}

// SearchIndex índice de búsqueda de texto completo (vista materializada company_search).
// No participa en transacciones: se lee y se refresca fuera de ellas.
type SearchIndex interface {
	Search(ctx context.Context, q SearchQuery) ([]*entity.SearchResult, error)
	Refresh(ctx context.Context, concurrent bool) error
}
