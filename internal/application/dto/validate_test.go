package dto_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Proveo-api/internal/application/dto"
	"github.com/jhoicas/Proveo-api/internal/domain"
)

func validCompany() dto.CreateCompanyRequest {
	return dto.CreateCompanyRequest{
		ProductID:     "6f1c2b7e-3b0a-4b8e-9d55-2a7f5c1e9a01",
		CommuneID:     "0b7d4c2a-8e61-4f3b-a7c9-5e2d1f8b6a02",
		Name:          "Joe's Bakery",
		DescriptionES: "Panadería artesanal",
		DescriptionEN: "Artisan bakery",
		Address:       "742 Evergreen Terrace",
		Phone:         "+56 9 1234 5678",
		Email:         "joe@bakery.test",
		ImageURL:      "https://cdn.test/joe.png",
	}
}

func TestValidate_CompanyValida(t *testing.T) {
	assert.NoError(t, dto.Validate(validCompany()))
}

func TestValidate_CampoFaltanteUsaNombreJSON(t *testing.T) {
	in := validCompany()
	in.DescriptionEN = ""
	err := dto.Validate(in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "description_en", verr.Field)
	assert.Equal(t, "es obligatorio", verr.Message)
}

func TestValidate_EmailYUUID(t *testing.T) {
	in := validCompany()
	in.Email = "no-es-email"
	var verr *domain.ValidationError
	require.ErrorAs(t, dto.Validate(in), &verr)
	assert.Equal(t, "email", verr.Field)

	in = validCompany()
	in.ProductID = "123"
	require.ErrorAs(t, dto.Validate(in), &verr)
	assert.Equal(t, "product_id", verr.Field)
	assert.Equal(t, "debe ser un UUID válido", verr.Message)
}

func TestValidate_ProductoBastaUnNombre(t *testing.T) {
	assert.NoError(t, dto.Validate(dto.CreateProductRequest{NameES: "Panadería"}))
	assert.NoError(t, dto.Validate(dto.CreateProductRequest{NameEN: "Bakery Goods"}))

	var verr *domain.ValidationError
	require.ErrorAs(t, dto.Validate(dto.CreateProductRequest{}), &verr)
	assert.Contains(t, []string{"name_es", "name_en"}, verr.Field)
}

func TestValidate_SearchIdiomaYLimite(t *testing.T) {
	assert.NoError(t, dto.Validate(dto.SearchRequest{Query: "bakery", Language: "en", Limit: 10}))

	var verr *domain.ValidationError
	require.ErrorAs(t, dto.Validate(dto.SearchRequest{Query: "bakery", Language: "fr"}), &verr)
	assert.Equal(t, "lang", verr.Field)

	require.ErrorAs(t, dto.Validate(dto.SearchRequest{Query: "bakery", Limit: 500}), &verr)
	assert.Equal(t, "limit", verr.Field)
	assert.Equal(t, "debe ser menor o igual a 100", verr.Message)
}
