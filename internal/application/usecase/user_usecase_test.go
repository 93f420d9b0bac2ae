package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Proveo-api/internal/application/usecase"
	"github.com/jhoicas/Proveo-api/internal/domain"
	"github.com/jhoicas/Proveo-api/internal/domain/entity"
	"github.com/jhoicas/Proveo-api/internal/infrastructure/memorytest"
	"github.com/jhoicas/Proveo-api/pkg/logger"
)

func TestUserDeleteCascade_ArchivaEmpresasYUsuario(t *testing.T) {
	db := seededDB()
	db.AddCompany(entity.Company{ID: "c1", UserID: ownerID, ProductID: productID, CommuneID: communeID, Name: "Joe's Bakery"})
	db.AddCompany(entity.Company{ID: "c2", UserID: otherID, ProductID: productID, CommuneID: communeID, Name: "Ana Flores"})
	ref := &fakeRefresher{}
	uc := usecase.NewUserUseCase(db, ref, logger.Nop())

	res, err := uc.DeleteCascade(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.CompaniesDeleted)
	assert.Equal(t, "joe@proveo.test", res.Email)

	_, found := db.DeletedCompany("c1")
	assert.True(t, found)
	_, found = db.DeletedUser(ownerID)
	assert.True(t, found)

	companies := db.Companies()
	require.Len(t, companies, 1)
	assert.Equal(t, "c2", companies[0].ID, "las empresas de otros usuarios no se tocan")
	assert.Equal(t, []string{"delete_user"}, ref.calls())
}

func TestUserDeleteCascade_SinEmpresasNoRefresca(t *testing.T) {
	db := seededDB()
	ref := &fakeRefresher{}
	uc := usecase.NewUserUseCase(db, ref, logger.Nop())

	res, err := uc.DeleteCascade(context.Background(), otherID)
	require.NoError(t, err)
	assert.Zero(t, res.CompaniesDeleted)
	assert.Empty(t, ref.calls())
	assert.Equal(t, 1, db.Counts().UsersDeleted)
}

func TestUserDeleteCascade_FalloRevierteTodo(t *testing.T) {
	db := seededDB()
	db.AddCompany(entity.Company{ID: "c1", UserID: ownerID, ProductID: productID, CommuneID: communeID, Name: "Joe's Bakery"})
	db.BeforeCommit = func(int) error { return errors.New("disco lleno") }
	ref := &fakeRefresher{}
	uc := usecase.NewUserUseCase(db, ref, logger.Nop())

	_, err := uc.DeleteCascade(context.Background(), ownerID)
	require.Error(t, err)

	counts := db.Counts()
	assert.Equal(t, 3, counts.Users)
	assert.Equal(t, 1, counts.Companies)
	assert.Zero(t, counts.UsersDeleted)
	assert.Zero(t, counts.CompaniesDeleted)
	assert.Empty(t, ref.calls())
}

func TestUserDeleteCascade_ReintentoCompleto(t *testing.T) {
	db := seededDB()
	db.AddCompany(entity.Company{ID: "c1", UserID: ownerID, ProductID: productID, CommuneID: communeID, Name: "Joe's Bakery"})
	db.Policy.MaxAttempts = 3
	db.Policy.Sleep = func(context.Context, time.Duration) error { return nil }
	db.BeforeCommit = func(attempt int) error {
		if attempt == 1 {
			return memorytest.ErrSerialization
		}
		return nil
	}
	uc := usecase.NewUserUseCase(db, &fakeRefresher{}, logger.Nop())

	res, err := uc.DeleteCascade(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.CompaniesDeleted, "el conteo no se duplica entre intentos")
	assert.Equal(t, 2, db.Attempts())
	assert.Equal(t, 1, db.Counts().CompaniesDeleted)
}

func TestUserDelete_Permisos(t *testing.T) {
	db := seededDB()
	uc := usecase.NewUserUseCase(db, &fakeRefresher{}, logger.Nop())

	_, err := uc.Delete(context.Background(), asOther, ownerID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.Delete(context.Background(), asOwner, ownerID)
	require.NoError(t, err)
	assert.Equal(t, ownerID, out.UserID)

	_, err = uc.Delete(context.Background(), asAdmin, otherID)
	require.NoError(t, err)

	_, err = uc.Delete(context.Background(), asAdmin, otherID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserDelete_RefrescoFallidoDevuelveResultado(t *testing.T) {
	db := seededDB()
	db.AddCompany(entity.Company{ID: "c1", UserID: ownerID, ProductID: productID, CommuneID: communeID, Name: "Joe's Bakery"})
	uc := usecase.NewUserUseCase(db, &fakeRefresher{err: errors.New("timeout")}, logger.Nop())

	out, err := uc.Delete(context.Background(), asOwner, ownerID)
	assert.ErrorIs(t, err, domain.ErrIndexRefresh)
	require.NotNil(t, out)
	assert.Equal(t, 1, out.CompaniesDeleted)
}
