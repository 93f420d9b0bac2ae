package repository

import (
	"context"

	"github.com/jhoicas/Proveo-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// CountCompanies cuenta las empresas vivas que referencian el producto.
	CountCompanies(ctx context.Context, id string) (int, error)
}
