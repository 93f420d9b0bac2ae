package dto

// SearchRequest parámetros de búsqueda de texto completo.
type SearchRequest struct {
	Query    string `query:"q" validate:"required,max=200"`
	Language string `query:"lang" validate:"omitempty,oneof=es en"`
	Limit    int    `query:"limit" validate:"min=0,max=100"`
	Offset   int    `query:"offset" validate:"min=0"`
}

// SearchResultResponse una empresa encontrada, con textos en el idioma pedido.
type SearchResultResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Address        string  `json:"address"`
	Email          string  `json:"email"`
	ProductName    string  `json:"product_name"`
	CommuneName    string  `json:"commune_name"`
	RelevanceScore float32 `json:"relevance_score"`
}

// SearchResponse resultados paginados.
type SearchResponse struct {
	Items    []SearchResultResponse `json:"items"`
	Language string                 `json:"language"`
	Limit    int                    `json:"limit"`
	Offset   int                    `json:"offset"`
}
