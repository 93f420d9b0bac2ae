package repository

import (
	"context"

	"github.com/jhoicas/Proveo-api/internal/domain/entity"
)

// CommuneRepository define el puerto de persistencia para Commune (DIP).
type CommuneRepository interface {
	Create(ctx context.Context, commune *entity.Commune) error
	GetByID(ctx context.Context, id string) (*entity.Commune, error)
	List(ctx context.Context) ([]*entity.Commune, error)
	Update(ctx context.Context, commune *entity.Commune) error
	CountCompanies(ctx context.Context, id string) (int, error)
}
