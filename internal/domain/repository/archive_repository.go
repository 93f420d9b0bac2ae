package repository

import (
	"context"

	"github.com/jhoicas/Proveo-api/internal/domain/entity"
)

// ArchiveRepository mueve registros vivos a sus tablas *_deleted.
// Cada Archive* bloquea la fila, inserta la copia con deleted_at y borra la original;
// devuelve domain.ErrNotFound si la fila no existe. Debe ejecutarse dentro de una transacción.
type ArchiveRepository interface {
	ArchiveUser(ctx context.Context, id string) (*entity.DeletedUser, error)
	ArchiveProduct(ctx context.Context, id string) (*entity.DeletedProduct, error)
	ArchiveCommune(ctx context.Context, id string) (*entity.DeletedCommune, error)
	ArchiveCompany(ctx context.Context, id string) (*entity.DeletedCompany, error)
	// ArchiveCompaniesByOwner solo copia a companies_deleted; el borrado masivo
	// lo hace CompanyRepository.DeleteByOwner en la misma transacción.
	ArchiveCompaniesByOwner(ctx context.Context, userID string) ([]*entity.DeletedCompany, error)
}
