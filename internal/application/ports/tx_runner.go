package ports

import (
	"context"

	"github.com/jhoicas/Proveo-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con los repositorios atados a ella.
// Si fn devuelve error la transacción se revierte antes de propagarlo.
// La implementación puede repetir fn completa ante errores transitorios, por lo
// que fn no debe tener efectos fuera de la transacción.
type TxRunner interface {
	Run(ctx context.Context, opts repository.TxOptions, fn func(ctx context.Context, s repository.Store) error) error
}
