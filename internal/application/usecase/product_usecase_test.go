package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Proveo-api/internal/application/dto"
	"github.com/jhoicas/Proveo-api/internal/application/usecase"
	"github.com/jhoicas/Proveo-api/internal/domain"
	"github.com/jhoicas/Proveo-api/internal/domain/entity"
	"github.com/jhoicas/Proveo-api/pkg/logger"
)

func TestProductCreate_TraduceNombreFaltante(t *testing.T) {
	db := seededDB()
	tr := &fakeTranslator{out: "Hardware"}
	ref := &fakeRefresher{}
	uc := usecase.NewProductUseCase(db, ref, tr, logger.Nop())

	out, err := uc.Create(context.Background(), asAdmin, dto.CreateProductRequest{NameES: "Ferretería"})
	require.NoError(t, err)
	assert.Equal(t, "Ferretería", out.NameES)
	assert.Equal(t, "Hardware", out.NameEN)
	assert.Equal(t, "es", tr.from)
	assert.Equal(t, "en", tr.to)
	assert.Equal(t, []string{"create_product"}, ref.calls())
}

func TestProductCreate_TraduccionFallidaUsaNombreRecibido(t *testing.T) {
	db := seededDB()
	tr := &fakeTranslator{err: errors.New("api caída")}
	uc := usecase.NewProductUseCase(db, &fakeRefresher{}, tr, logger.Nop())

	out, err := uc.Create(context.Background(), asAdmin, dto.CreateProductRequest{NameEN: "Hardware"})
	require.NoError(t, err)
	assert.Equal(t, "Hardware", out.NameES)
	assert.Equal(t, "Hardware", out.NameEN)
	assert.Equal(t, 1, tr.calls)
}

func TestProductCreate_AmbosNombresNoTraduce(t *testing.T) {
	tr := &fakeTranslator{out: "nunca"}
	uc := usecase.NewProductUseCase(seededDB(), &fakeRefresher{}, tr, logger.Nop())

	out, err := uc.Create(context.Background(), asAdmin, dto.CreateProductRequest{NameES: "Frutas", NameEN: "Fruit"})
	require.NoError(t, err)
	assert.Equal(t, "Frutas", out.NameES)
	assert.Equal(t, "Fruit", out.NameEN)
	assert.Zero(t, tr.calls)
}

func TestProductCreate_RequiereAdminYNombre(t *testing.T) {
	uc := usecase.NewProductUseCase(seededDB(), &fakeRefresher{}, &fakeTranslator{}, logger.Nop())

	_, err := uc.Create(context.Background(), asOwner, dto.CreateProductRequest{NameES: "Frutas"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Create(context.Background(), asAdmin, dto.CreateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductDelete_BloqueadoPorEmpresas(t *testing.T) {
	db := seededDB()
	db.AddCompany(entity.Company{ID: "c1", UserID: ownerID, ProductID: productID, CommuneID: communeID, Name: "A"})
	db.AddCompany(entity.Company{ID: "c2", UserID: otherID, ProductID: productID, CommuneID: communeID, Name: "B"})
	ref := &fakeRefresher{}
	uc := usecase.NewProductUseCase(db, ref, &fakeTranslator{}, logger.Nop())

	_, err := uc.Delete(context.Background(), asAdmin, productID)
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 2, conflict.References)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1, db.Counts().Products)
	assert.Empty(t, ref.calls())
}

func TestProductDelete_ArchivaYRefresca(t *testing.T) {
	db := seededDB()
	ref := &fakeRefresher{}
	uc := usecase.NewProductUseCase(db, ref, &fakeTranslator{}, logger.Nop())

	out, err := uc.Delete(context.Background(), asAdmin, productID)
	require.NoError(t, err)
	assert.Equal(t, "Bakery Goods", out.NameEN)
	counts := db.Counts()
	assert.Equal(t, 0, counts.Products)
	assert.Equal(t, 1, counts.ProductsDeleted)
	assert.Equal(t, []string{"delete_product"}, ref.calls())

	_, err = uc.Delete(context.Background(), asAdmin, productID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUpdate_Renombra(t *testing.T) {
	db := seededDB()
	ref := &fakeRefresher{}
	uc := usecase.NewProductUseCase(db, ref, &fakeTranslator{}, logger.Nop())

	name := "Bakery"
	out, err := uc.Update(context.Background(), asAdmin, productID, dto.UpdateProductRequest{NameEN: &name})
	require.NoError(t, err)
	assert.Equal(t, "Bakery", out.NameEN)
	assert.Equal(t, "Panadería", out.NameES)
	assert.Equal(t, []string{"update_product"}, ref.calls())

	_, err = uc.Update(context.Background(), asAdmin, productID, dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCommuneDelete_BloqueadoPorEmpresas(t *testing.T) {
	db := seededDB()
	db.AddCompany(entity.Company{ID: "c1", UserID: ownerID, ProductID: productID, CommuneID: communeID, Name: "A"})
	uc := usecase.NewCommuneUseCase(db, &fakeRefresher{}, logger.Nop())

	_, err := uc.Delete(context.Background(), asAdmin, communeID)
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 1, conflict.References)
}

func TestCommuneCreateYDelete(t *testing.T) {
	db := seededDB()
	ref := &fakeRefresher{}
	uc := usecase.NewCommuneUseCase(db, ref, logger.Nop())

	_, err := uc.Create(context.Background(), asOwner, dto.CreateCommuneRequest{Name: "Shelbyville"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.Create(context.Background(), asAdmin, dto.CreateCommuneRequest{Name: "  Shelbyville "})
	require.NoError(t, err)
	assert.Equal(t, "Shelbyville", out.Name)

	_, err = uc.Delete(context.Background(), asAdmin, out.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, db.Counts().CommunesDeleted)
	assert.Equal(t, []string{"create_commune", "delete_commune"}, ref.calls())
}

func TestProductCreate_NombresEnBlanco(t *testing.T) {
	db := seededDB()
	tr := &fakeTranslator{out: "nunca"}
	ref := &fakeRefresher{}
	uc := usecase.NewProductUseCase(db, ref, tr, logger.Nop())

	for _, in := range []dto.CreateProductRequest{
		{NameES: "   "},
		{NameEN: "\t"},
		{NameES: " ", NameEN: "  "},
	} {
		_, err := uc.Create(context.Background(), asAdmin, in)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr, "entrada %+v", in)
		assert.Equal(t, "name_es", verr.Field)
	}
	assert.Equal(t, 1, db.Counts().Products)
	assert.Zero(t, tr.calls)
	assert.Empty(t, ref.calls())
}

func TestProductUpdate_NombreEnBlanco(t *testing.T) {
	db := seededDB()
	ref := &fakeRefresher{}
	uc := usecase.NewProductUseCase(db, ref, &fakeTranslator{}, logger.Nop())

	blank := "   "
	_, err := uc.Update(context.Background(), asAdmin, productID, dto.UpdateProductRequest{NameES: &blank})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name_es", verr.Field)

	out, err := uc.Get(context.Background(), productID)
	require.NoError(t, err)
	assert.Equal(t, "Panadería", out.NameES)

	padded := "  Bakery  "
	out, err = uc.Update(context.Background(), asAdmin, productID, dto.UpdateProductRequest{NameEN: &padded})
	require.NoError(t, err)
	assert.Equal(t, "Bakery", out.NameEN)
	assert.Equal(t, []string{"update_product"}, ref.calls())
}

func TestCommune_NombreEnBlanco(t *testing.T) {
	db := seededDB()
	uc := usecase.NewCommuneUseCase(db, &fakeRefresher{}, logger.Nop())

	_, err := uc.Create(context.Background(), asAdmin, dto.CreateCommuneRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(context.Background(), asAdmin, communeID, dto.UpdateCommuneRequest{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 1, db.Counts().Communes)
}
