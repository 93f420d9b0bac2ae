package dto

// PageRequest ventana limit/offset de un listado.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=0,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// Window devuelve la ventana efectiva: limit 0 toma defLimit y nunca supera maxLimit.
func (p PageRequest) Window(defLimit, maxLimit int) (limit, offset int) {
	limit = p.Limit
	if limit <= 0 {
		limit = defLimit
	}
	return min(limit, maxLimit), max(p.Offset, 0)
}

// PageResponse ventana aplicada y total de filas que cumplen el filtro.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ErrorResponse cuerpo JSON de todo error HTTP. Details lleva datos estructurados
// (campo inválido, referencias, resultado ya guardado).
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
