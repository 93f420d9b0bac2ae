package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Proveo-api/internal/application/dto"
	"github.com/jhoicas/Proveo-api/internal/application/ports"
	"github.com/jhoicas/Proveo-api/internal/domain"
	"github.com/jhoicas/Proveo-api/internal/domain/entity"
	"github.com/jhoicas/Proveo-api/internal/domain/repository"
	"github.com/jhoicas/Proveo-api/pkg/logger"
)

// UserUseCase consulta y borrado en cascada de usuarios.
type UserUseCase struct {
	tx    ports.TxRunner
	index ports.IndexRefresher
	log   *logger.Logger
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(tx ports.TxRunner, index ports.IndexRefresher, log *logger.Logger) *UserUseCase {
	return &UserUseCase{tx: tx, index: index, log: log.Component("user")}
}

// Get devuelve el usuario por ID.
func (uc *UserUseCase) Get(ctx context.Context, id string) (*dto.UserResponse, error) {
	var user *entity.User
	err := uc.tx.Run(ctx, readOnly, func(ctx context.Context, s repository.Store) error {
		var err error
		user, err = s.Users.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// Delete borra un usuario y sus empresas. Un usuario puede borrarse a sí mismo;
// borrar a otro requiere rol admin.
func (uc *UserUseCase) Delete(ctx context.Context, req entity.Requester, userID string) (*dto.UserDeletionResponse, error) {
	if req.UserID != userID && !req.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	res, err := uc.DeleteCascade(ctx, userID)
	if res == nil {
		return nil, err
	}
	return &dto.UserDeletionResponse{
		UserID:           res.UserID,
		Email:            res.Email,
		CompaniesDeleted: res.CompaniesDeleted,
	}, err
}

// DeleteCascade archiva las empresas del usuario y luego al usuario, todo en una
// transacción SERIALIZABLE. Si la cantidad borrada no coincide con la archivada
// (carrera con otra escritura) la transacción se revierte.
func (uc *UserUseCase) DeleteCascade(ctx context.Context, userID string) (*entity.UserDeletion, error) {
	var res *entity.UserDeletion
	err := uc.tx.Run(ctx, serializable, func(ctx context.Context, s repository.Store) error {
		user, err := s.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		companies, err := s.Companies.ListByOwner(ctx, userID)
		if err != nil {
			return err
		}
		archived, err := s.Archive.ArchiveCompaniesByOwner(ctx, userID)
		if err != nil {
			return err
		}
		removed, err := s.Companies.DeleteByOwner(ctx, userID)
		if err != nil {
			return err
		}
		if int(removed) != len(archived) || len(archived) != len(companies) {
			return fmt.Errorf("cascada inconsistente para usuario %s: %d empresas, %d archivadas, %d borradas",
				userID, len(companies), len(archived), removed)
		}
		if _, err := s.Archive.ArchiveUser(ctx, userID); err != nil {
			return err
		}
		res = &entity.UserDeletion{UserID: user.ID, Email: user.Email, CompaniesDeleted: len(archived)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", userID).Int("companies_deleted", res.CompaniesDeleted).Msg("usuario archivado en cascada")
	if res.CompaniesDeleted == 0 {
		return res, nil
	}
	return res, uc.index.AfterCommit(ctx, "delete_user")
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
	}
}
