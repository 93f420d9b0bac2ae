package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Proveo-api/internal/domain"
)

func TestConflictos(t *testing.T) {
	for _, err := range []error{
		domain.ErrCompanyAlreadyExists,
		domain.ErrEmailAlreadyExists,
		fmt.Errorf("crear empresa: %w", domain.ErrCompanyAlreadyExists),
		domain.NewConflict("producto en uso", 2),
	} {
		assert.ErrorIs(t, err, domain.ErrConflict, err.Error())
	}
	assert.False(t, errors.Is(domain.ErrEmailAlreadyExists, domain.ErrCompanyAlreadyExists))
	assert.False(t, errors.Is(domain.ErrNotFound, domain.ErrConflict))
}

func TestValidacionYRefresco(t *testing.T) {
	assert.ErrorIs(t, domain.NewValidation("name_es", "no puede estar vacío"), domain.ErrInvalidInput)
	assert.ErrorIs(t, domain.ErrUserNotFound, domain.ErrNotFound)
}
