package repository

import (
	"context"

	"github.com/jhoicas/Proveo-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetDetail(ctx context.Context, id string) (*entity.CompanyDetail, error)
	GetByOwner(ctx context.Context, userID string) (*entity.Company, error)
	// List lee las tablas vivas (no el índice) y devuelve la página y el total.
	List(ctx context.Context, filter entity.CompanyFilter) ([]*entity.CompanyDetail, int, error)
	// ListByOwner bloquea (FOR UPDATE) las empresas del usuario.
	ListByOwner(ctx context.Context, userID string) ([]*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	DeleteByOwner(ctx context.Context, userID string) (int64, error)
}
