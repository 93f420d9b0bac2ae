package ports

import "context"

// IndexRefresher resincroniza el índice de búsqueda después de una escritura confirmada.
// Devuelve nil o un *domain.RefreshError; la escritura nunca se revierte por ello.
type IndexRefresher interface {
	AfterCommit(ctx context.Context, op string) error
}
