package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Proveo-api/internal/application/dto"
	"github.com/jhoicas/Proveo-api/internal/application/ports"
	"github.com/jhoicas/Proveo-api/internal/domain"
	"github.com/jhoicas/Proveo-api/internal/domain/entity"
	"github.com/jhoicas/Proveo-api/internal/domain/repository"
	"github.com/jhoicas/Proveo-api/pkg/logger"
)

const translateTimeout = 10 * time.Second

// ProductUseCase casos de uso de productos. Las escrituras requieren rol admin
// y refrescan el índice, porque los nombres de producto están indexados.
type ProductUseCase struct {
	tx         ports.TxRunner
	index      ports.IndexRefresher
	translator ports.Translator
	log        *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(tx ports.TxRunner, index ports.IndexRefresher, translator ports.Translator, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{tx: tx, index: index, translator: translator, log: log.Component("product")}
}

// Create crea un producto. Si falta uno de los nombres se traduce el otro; si la
// traducción falla o devuelve el mismo texto, ambos nombres quedan con el valor recibido.
func (uc *ProductUseCase) Create(ctx context.Context, req entity.Requester, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !req.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	nameES, nameEN := strings.TrimSpace(in.NameES), strings.TrimSpace(in.NameEN)
	if nameES == "" && nameEN == "" {
		return nil, domain.NewValidation("name_es", "se requiere name_es o name_en")
	}
	switch {
	case nameES == "":
		nameES = uc.translate(ctx, nameEN, "en", "es")
	case nameEN == "":
		nameEN = uc.translate(ctx, nameES, "es", "en")
	}

	product := &entity.Product{
		ID:        uuid.New().String(),
		NameES:    nameES,
		NameEN:    nameEN,
		CreatedAt: time.Now().UTC(),
	}
	err := uc.tx.Run(ctx, readCommitted, func(ctx context.Context, s repository.Store) error {
		return s.Products.Create(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", product.ID).Msg("producto creado")
	return toProductResponse(product), uc.index.AfterCommit(ctx, "create_product")
}

// translate devuelve la traducción o, ante cualquier fallo, el texto original.
func (uc *ProductUseCase) translate(ctx context.Context, text, from, to string) string {
	ctx, cancel := context.WithTimeout(ctx, translateTimeout)
	defer cancel()
	out, err := uc.translator.Translate(ctx, text, from, to)
	out = strings.TrimSpace(out)
	if err != nil {
		uc.log.Warn().Err(err).Str("from", from).Str("to", to).Msg("traducción falló, se usa el nombre recibido")
		return text
	}
	if out == "" || strings.EqualFold(out, text) {
		return text
	}
	return out
}

// Update renombra un producto.
func (uc *ProductUseCase) Update(ctx context.Context, req entity.Requester, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if !req.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.NameES == nil && in.NameEN == nil {
		return nil, domain.NewValidation("", "no hay campos para actualizar")
	}
	nameES, err := trimmed("name_es", in.NameES)
	if err != nil {
		return nil, err
	}
	nameEN, err := trimmed("name_en", in.NameEN)
	if err != nil {
		return nil, err
	}

	var product *entity.Product
	err = uc.tx.Run(ctx, readCommitted, func(ctx context.Context, s repository.Store) error {
		var err error
		product, err = s.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if nameES != nil {
			product.NameES = *nameES
		}
		if nameEN != nil {
			product.NameEN = *nameEN
		}
		return s.Products.Update(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", id).Msg("producto actualizado")
	return toProductResponse(product), uc.index.AfterCommit(ctx, "update_product")
}

// Delete archiva un producto. Conflict con la cantidad de empresas si está en uso.
func (uc *ProductUseCase) Delete(ctx context.Context, req entity.Requester, id string) (*dto.ProductResponse, error) {
	if !req.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	var archived *entity.DeletedProduct
	err := uc.tx.Run(ctx, serializable, func(ctx context.Context, s repository.Store) error {
		product, err := s.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		n, err := s.Products.CountCompanies(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.NewConflict("el producto está asociado a empresas", n)
		}
		archived, err = s.Archive.ArchiveProduct(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", id).Msg("producto archivado")
	return toProductResponse(&archived.Product), uc.index.AfterCommit(ctx, "delete_product")
}

// Get obtiene un producto por ID.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	var product *entity.Product
	err := uc.tx.Run(ctx, readOnly, func(ctx context.Context, s repository.Store) error {
		var err error
		product, err = s.Products.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista todos los productos.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	var list []*entity.Product
	err := uc.tx.Run(ctx, readOnly, func(ctx context.Context, s repository.Store) error {
		var err error
		list, err = s.Products.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{ID: p.ID, NameES: p.NameES, NameEN: p.NameEN, CreatedAt: p.CreatedAt}
}
