package usecase

import (
	"context"

	"github.com/jhoicas/Proveo-api/internal/application/dto"
	"github.com/jhoicas/Proveo-api/internal/domain"
	"github.com/jhoicas/Proveo-api/internal/domain/repository"
	"github.com/jhoicas/Proveo-api/internal/domain/search"
)

// SearchUseCase búsqueda de texto completo sobre el índice (nunca sobre las tablas vivas).
type SearchUseCase struct {
	index        repository.SearchIndex
	defaultLimit int
	maxLimit     int
}

// NewSearchUseCase construye el caso de uso con los límites de paginación.
func NewSearchUseCase(index repository.SearchIndex, defaultLimit, maxLimit int) *SearchUseCase {
	return &SearchUseCase{index: index, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

// Search valida idioma y consulta antes de tocar el índice.
func (uc *SearchUseCase) Search(ctx context.Context, in dto.SearchRequest) (*dto.SearchResponse, error) {
	lang, ok := search.ParseLanguage(in.Language)
	if !ok {
		return nil, domain.NewValidation("lang", "idioma no soportado (es | en)")
	}
	in.Language = string(lang)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	tsq := search.BuildTSQuery(in.Query)
	if tsq == "" {
		return nil, domain.NewValidation("q", "la consulta no contiene términos buscables")
	}

	limit := in.Limit
	if limit <= 0 {
		limit = uc.defaultLimit
	}
	limit = min(limit, uc.maxLimit)

	results, err := uc.index.Search(ctx, repository.SearchQuery{
		TSQuery:  tsq,
		Language: lang,
		Limit:    limit,
		Offset:   max(in.Offset, 0),
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.SearchResultResponse, 0, len(results))
	for _, r := range results {
		items = append(items, dto.SearchResultResponse{
			ID:             r.CompanyID,
			Name:           r.Name,
			Description:    r.Description,
			Address:        r.Address,
			Email:          r.Email,
			ProductName:    r.ProductName,
			CommuneName:    r.CommuneName,
			RelevanceScore: r.Score,
		})
	}
	return &dto.SearchResponse{Items: items, Language: string(lang), Limit: limit, Offset: max(in.Offset, 0)}, nil
}
