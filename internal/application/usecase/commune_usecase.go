package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Proveo-api/internal/application/dto"
	"github.com/jhoicas/Proveo-api/internal/application/ports"
	"github.com/jhoicas/Proveo-api/internal/domain"
	"github.com/jhoicas/Proveo-api/internal/domain/entity"
	"github.com/jhoicas/Proveo-api/internal/domain/repository"
	"github.com/jhoicas/Proveo-api/pkg/logger"
)

// CommuneUseCase casos de uso de comunas (escrituras solo admin).
type CommuneUseCase struct {
	tx    ports.TxRunner
	index ports.IndexRefresher
	log   *logger.Logger
}

func NewCommuneUseCase(tx ports.TxRunner, index ports.IndexRefresher, log *logger.Logger) *CommuneUseCase {
	return &CommuneUseCase{tx: tx, index: index, log: log.Component("commune")}
}

func (uc *CommuneUseCase) Create(ctx context.Context, req entity.Requester, in dto.CreateCommuneRequest) (*dto.CommuneResponse, error) {
	if !req.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	commune := &entity.Commune{ID: uuid.New().String(), Name: in.Name, CreatedAt: time.Now().UTC()}
	if err := requireText(textField{"name", &commune.Name}); err != nil {
		return nil, err
	}
	err := uc.tx.Run(ctx, readCommitted, func(ctx context.Context, s repository.Store) error {
		return s.Communes.Create(ctx, commune)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("commune_id", commune.ID).Msg("comuna creada")
	return toCommuneResponse(commune), uc.index.AfterCommit(ctx, "create_commune")
}

func (uc *CommuneUseCase) Update(ctx context.Context, req entity.Requester, id string, in dto.UpdateCommuneRequest) (*dto.CommuneResponse, error) {
	if !req.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	name := in.Name
	if err := requireText(textField{"name", &name}); err != nil {
		return nil, err
	}
	var commune *entity.Commune
	err := uc.tx.Run(ctx, readCommitted, func(ctx context.Context, s repository.Store) error {
		var err error
		commune, err = s.Communes.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if commune == nil {
			return domain.ErrNotFound
		}
		commune.Name = name
		return s.Communes.Update(ctx, commune)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("commune_id", id).Msg("comuna actualizada")
	return toCommuneResponse(commune), uc.index.AfterCommit(ctx, "update_commune")
}

// Delete archiva una comuna. Conflict con la cantidad de empresas si está en uso.
func (uc *CommuneUseCase) Delete(ctx context.Context, req entity.Requester, id string) (*dto.CommuneResponse, error) {
	if !req.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	var archived *entity.DeletedCommune
	err := uc.tx.Run(ctx, serializable, func(ctx context.Context, s repository.Store) error {
		commune, err := s.Communes.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if commune == nil {
			return domain.ErrNotFound
		}
		n, err := s.Communes.CountCompanies(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.NewConflict("la comuna está asociada a empresas", n)
		}
		archived, err = s.Archive.ArchiveCommune(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("commune_id", id).Msg("comuna archivada")
	return toCommuneResponse(&archived.Commune), uc.index.AfterCommit(ctx, "delete_commune")
}

func (uc *CommuneUseCase) Get(ctx context.Context, id string) (*dto.CommuneResponse, error) {
	var commune *entity.Commune
	err := uc.tx.Run(ctx, readOnly, func(ctx context.Context, s repository.Store) error {
		var err error
		commune, err = s.Communes.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if commune == nil {
		return nil, domain.ErrNotFound
	}
	return toCommuneResponse(commune), nil
}

func (uc *CommuneUseCase) List(ctx context.Context) ([]dto.CommuneResponse, error) {
	var list []*entity.Commune
	err := uc.tx.Run(ctx, readOnly, func(ctx context.Context, s repository.Store) error {
		var err error
		list, err = s.Communes.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.CommuneResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCommuneResponse(c))
	}
	return out, nil
}

func toCommuneResponse(c *entity.Commune) *dto.CommuneResponse {
	return &dto.CommuneResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}
