package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Proveo-api/internal/application/dto"
	"github.com/jhoicas/Proveo-api/internal/application/ports"
	"github.com/jhoicas/Proveo-api/internal/domain"
	"github.com/jhoicas/Proveo-api/internal/domain/entity"
	"github.com/jhoicas/Proveo-api/internal/domain/repository"
	"github.com/jhoicas/Proveo-api/pkg/logger"
)

var (
	readCommitted = repository.TxOptions{Isolation: repository.ReadCommitted}
	readOnly      = repository.TxOptions{Isolation: repository.ReadCommitted, ReadOnly: true}
	serializable  = repository.TxOptions{Isolation: repository.Serializable}
)

const defaultPageSize = 20

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
// Toda escritura confirmada refresca el índice antes de responder; un fallo del
// refresco se devuelve como *domain.RefreshError junto al resultado.
type CompanyUseCase struct {
	tx      ports.TxRunner
	index   ports.IndexRefresher
	images  ports.ImageResolver
	log     *logger.Logger
	pageMax int
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(tx ports.TxRunner, index ports.IndexRefresher, images ports.ImageResolver, log *logger.Logger) *CompanyUseCase {
	return &CompanyUseCase{tx: tx, index: index, images: images, log: log.Component("company"), pageMax: 100}
}

// Create registra la empresa del usuario autenticado. Un usuario tiene como máximo una empresa:
// se verifica dentro de la transacción y el constraint único cubre la carrera entre dos altas.
func (uc *CompanyUseCase) Create(ctx context.Context, req entity.Requester, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	image, err := uc.images.Resolve(in.ImageURL)
	if err != nil {
		return nil, domain.NewValidation("image_url", err.Error())
	}

	now := time.Now().UTC()
	company := &entity.Company{
		ID:            uuid.New().String(),
		UserID:        req.UserID,
		ProductID:     in.ProductID,
		CommuneID:     in.CommuneID,
		Name:          in.Name,
		DescriptionES: in.DescriptionES,
		DescriptionEN: in.DescriptionEN,
		Address:       in.Address,
		Phone:         in.Phone,
		Email:         in.Email,
		ImageURL:      image,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := requireText(
		textField{"name", &company.Name},
		textField{"description_es", &company.DescriptionES},
		textField{"description_en", &company.DescriptionEN},
		textField{"address", &company.Address},
		textField{"phone", &company.Phone},
	); err != nil {
		return nil, err
	}

	var detail *entity.CompanyDetail
	err = uc.tx.Run(ctx, readCommitted, func(ctx context.Context, s repository.Store) error {
		owner, err := s.Users.GetByID(ctx, req.UserID)
		if err != nil {
			return err
		}
		if owner == nil {
			return domain.ErrUserNotFound
		}
		existing, err := s.Companies.GetByOwner(ctx, req.UserID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrCompanyAlreadyExists
		}
		if err := checkReferences(ctx, s, &company.ProductID, &company.CommuneID); err != nil {
			return err
		}
		if err := s.Companies.Create(ctx, company); err != nil {
			return err
		}
		detail, err = s.Companies.GetDetail(ctx, company.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("company_id", company.ID).Str("user_id", req.UserID).Msg("empresa creada")
	return toCompanyResponse(detail), uc.index.AfterCommit(ctx, "create_company")
}

// Update aplica un patch parcial. Solo el dueño o un admin pueden editar.
func (uc *CompanyUseCase) Update(ctx context.Context, req entity.Requester, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	patch := entity.CompanyPatch{
		ProductID: in.ProductID, CommuneID: in.CommuneID, Name: in.Name,
		DescriptionES: in.DescriptionES, DescriptionEN: in.DescriptionEN,
		Address: in.Address, Phone: in.Phone, Email: in.Email, ImageURL: in.ImageURL,
	}
	if patch.Empty() {
		return nil, domain.NewValidation("", "no hay campos para actualizar")
	}
	for _, f := range []struct {
		name string
		p    **string
	}{
		{"name", &patch.Name},
		{"description_es", &patch.DescriptionES},
		{"description_en", &patch.DescriptionEN},
		{"address", &patch.Address},
		{"phone", &patch.Phone},
	} {
		v, err := trimmed(f.name, *f.p)
		if err != nil {
			return nil, err
		}
		*f.p = v
	}
	if patch.ImageURL != nil {
		image, err := uc.images.Resolve(*patch.ImageURL)
		if err != nil {
			return nil, domain.NewValidation("image_url", err.Error())
		}
		patch.ImageURL = &image
	}

	var detail *entity.CompanyDetail
	err := uc.tx.Run(ctx, readCommitted, func(ctx context.Context, s repository.Store) error {
		company, err := s.Companies.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if company == nil {
			return domain.ErrNotFound
		}
		if company.UserID != req.UserID && !req.IsAdmin() {
			return domain.ErrForbidden
		}
		if err := checkReferences(ctx, s, patch.ProductID, patch.CommuneID); err != nil {
			return err
		}
		patch.Apply(company)
		if err := s.Companies.Update(ctx, company); err != nil {
			return err
		}
		detail, err = s.Companies.GetDetail(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("company_id", id).Str("by", req.UserID).Msg("empresa actualizada")
	if !patch.TouchesIndex() {
		return toCompanyResponse(detail), nil
	}
	return toCompanyResponse(detail), uc.index.AfterCommit(ctx, "update_company")
}

// Delete archiva la empresa si existe y pertenece al solicitante.
// Devuelve false (sin error) cuando no existe o no es suya.
func (uc *CompanyUseCase) Delete(ctx context.Context, req entity.Requester, id string) (bool, error) {
	deleted := false
	err := uc.tx.Run(ctx, serializable, func(ctx context.Context, s repository.Store) error {
		deleted = false
		company, err := s.Companies.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if company == nil || company.UserID != req.UserID {
			return nil
		}
		if _, err := s.Archive.ArchiveCompany(ctx, id); err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil || !deleted {
		return false, err
	}
	uc.log.Info().Str("company_id", id).Str("user_id", req.UserID).Msg("empresa archivada")
	return true, uc.index.AfterCommit(ctx, "delete_company")
}

// AdminDelete archiva cualquier empresa. Requiere rol admin; false si no existe.
func (uc *CompanyUseCase) AdminDelete(ctx context.Context, req entity.Requester, id string) (bool, error) {
	if !req.IsAdmin() {
		return false, domain.ErrForbidden
	}
	deleted := false
	err := uc.tx.Run(ctx, serializable, func(ctx context.Context, s repository.Store) error {
		_, err := s.Archive.ArchiveCompany(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			deleted = false
			return nil
		}
		deleted = err == nil
		return err
	})
	if err != nil || !deleted {
		return false, err
	}
	uc.log.Info().Str("company_id", id).Str("admin_id", req.UserID).Msg("empresa archivada por admin")
	return true, uc.index.AfterCommit(ctx, "admin_delete_company")
}

// Get obtiene una empresa con sus datos relacionados.
func (uc *CompanyUseCase) Get(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	var detail *entity.CompanyDetail
	err := uc.tx.Run(ctx, readOnly, func(ctx context.Context, s repository.Store) error {
		var err error
		detail, err = s.Companies.GetDetail(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(detail), nil
}

// List lista empresas desde las tablas vivas con filtros y total.
func (uc *CompanyUseCase) List(ctx context.Context, in dto.CompanyListRequest) (*dto.CompanyListResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	limit, offset := in.Window(defaultPageSize, uc.pageMax)
	filter := entity.CompanyFilter{
		ProductID: in.ProductID,
		CommuneID: in.CommuneID,
		Name:      in.Name,
		Limit:     limit,
		Offset:    offset,
	}

	var (
		list  []*entity.CompanyDetail
		total int
	)
	err := uc.tx.Run(ctx, readOnly, func(ctx context.Context, s repository.Store) error {
		var err error
		list, total, err = s.Companies.List(ctx, filter)
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toCompanyResponse(d))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset, Total: total},
	}, nil
}

// checkReferences valida que producto y comuna existan (nil = no se cambia).
func checkReferences(ctx context.Context, s repository.Store, productID, communeID *string) error {
	if productID != nil {
		p, err := s.Products.GetByID(ctx, *productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NewValidation("product_id", "el producto no existe")
		}
	}
	if communeID != nil {
		c, err := s.Communes.GetByID(ctx, *communeID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.NewValidation("commune_id", "la comuna no existe")
		}
	}
	return nil
}

func toCompanyResponse(d *entity.CompanyDetail) *dto.CompanyResponse {
	if d == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:            d.ID,
		UserID:        d.UserID,
		ProductID:     d.ProductID,
		CommuneID:     d.CommuneID,
		Name:          d.Name,
		DescriptionES: d.DescriptionES,
		DescriptionEN: d.DescriptionEN,
		Address:       d.Address,
		Phone:         d.Phone,
		Email:         d.Email,
		ImageURL:      d.ImageURL,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
		UserName:      d.UserName,
		UserEmail:     d.UserEmail,
		ProductNameES: d.ProductNameES,
		ProductNameEN: d.ProductNameEN,
		CommuneName:   d.CommuneName,
	}
}
