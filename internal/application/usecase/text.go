package usecase

import (
	"strings"

	"github.com/jhoicas/Proveo-api/internal/domain"
)

// textField campo de texto obligatorio; p apunta al valor a recortar.
type textField struct {
	name string
	p    *string
}

// requireText recorta cada campo en su lugar y falla con el primero que queda vacío.
// Los tags `min=1` de los DTO aceptan "   ".
func requireText(fields ...textField) error {
	for _, f := range fields {
		*f.p = strings.TrimSpace(*f.p)
		if *f.p == "" {
			return domain.NewValidation(f.name, "no puede estar vacío")
		}
	}
	return nil
}

// trimmed recorta un campo opcional de un patch; nil se conserva.
func trimmed(field string, s *string) (*string, error) {
	if s == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil, domain.NewValidation(field, "no puede estar vacío")
	}
	return &v, nil
}
