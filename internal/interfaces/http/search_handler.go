package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Proveo-api/internal/application/dto"
	"github.com/jhoicas/Proveo-api/internal/application/usecase"
)

// SearchHandler búsqueda de texto completo de empresas.
type SearchHandler struct {
	uc *usecase.SearchUseCase
}

func NewSearchHandler(uc *usecase.SearchUseCase) *SearchHandler {
	return &SearchHandler{uc: uc}
}

// Search godoc
// @Summary      Buscar empresas por texto (prefijos, todos los términos)
// @Tags         search
// @Produce      json
// @Param        q       query  string  true   "Consulta"
// @Param        lang    query  string  false  "es | en"  default(es)
// @Param        limit   query  int     false  "Límite"
// @Param        offset  query  int     false  "Offset"
// @Success      200     {object}  dto.SearchResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/v1/search [get]
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	in := dto.SearchRequest{
		Query:    c.Query("q"),
		Language: c.Query("lang"),
		Limit:    c.QueryInt("limit", 0),
		Offset:   c.QueryInt("offset", 0),
	}
	out, err := h.uc.Search(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
