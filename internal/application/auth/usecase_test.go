package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Proveo-api/internal/application/auth"
	"github.com/jhoicas/Proveo-api/internal/application/dto"
	"github.com/jhoicas/Proveo-api/internal/domain"
	"github.com/jhoicas/Proveo-api/internal/domain/entity"
	"github.com/jhoicas/Proveo-api/internal/infrastructure/memorytest"
	"github.com/jhoicas/Proveo-api/pkg/jwt"
	"github.com/jhoicas/Proveo-api/pkg/logger"
)

const testSecret = "test-secret-key-for-unit-tests"

func newAuth(db *memorytest.DB) *auth.AuthUseCase {
	cfg := auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "proveo-test"}
	return auth.NewAuthUseCase(db, cfg, logger.Nop()).WithBcryptCost(bcrypt.MinCost)
}

func TestRegisterYLogin(t *testing.T) {
	db := memorytest.New()
	uc := newAuth(db)

	reg, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Name: "Joe", Email: "Joe@Bakery.test", Password: "pan-fresco-123",
	})
	require.NoError(t, err)
	assert.Equal(t, "joe@bakery.test", reg.User.Email)
	assert.Equal(t, entity.RoleUser, reg.User.Role)
	assert.False(t, reg.User.EmailVerified)
	assert.NotEmpty(t, reg.VerificationToken)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "joe@bakery.test", Password: "pan-fresco-123"})
	require.NoError(t, err)
	userID, role, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, userID)
	assert.Equal(t, entity.RoleUser, role)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc := newAuth(memorytest.New())
	in := dto.RegisterRequest{Name: "Joe", Email: "joe@bakery.test", Password: "pan-fresco-123"}

	_, err := uc.RegisterUser(context.Background(), in)
	require.NoError(t, err)

	in.Email = "JOE@bakery.test"
	_, err = uc.RegisterUser(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newAuth(memorytest.New())
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Name: "Joe", Email: "joe@bakery.test", Password: "pan-fresco-123",
	})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "joe@bakery.test", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@bakery.test", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyEmail(t *testing.T) {
	uc := newAuth(memorytest.New())
	reg, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Name: "Joe", Email: "joe@bakery.test", Password: "pan-fresco-123",
	})
	require.NoError(t, err)

	out, err := uc.VerifyEmail(context.Background(), dto.VerifyEmailRequest{Token: reg.VerificationToken})
	require.NoError(t, err)
	assert.True(t, out.EmailVerified)

	_, err = uc.VerifyEmail(context.Background(), dto.VerifyEmailRequest{Token: reg.VerificationToken})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr, "el token se consume al verificar")
	assert.Equal(t, "token", verr.Field)
}

func TestCreateAdmin_CreaOPromueve(t *testing.T) {
	db := memorytest.New()
	uc := newAuth(db)

	admin, err := uc.CreateAdmin(context.Background(), "Root", "root@proveo.test", "super-secreta-1")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, admin.Role)
	assert.True(t, admin.EmailVerified)

	reg, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Name: "Joe", Email: "joe@bakery.test", Password: "pan-fresco-123",
	})
	require.NoError(t, err)
	promoted, err := uc.CreateAdmin(context.Background(), "Joe", "joe@bakery.test", "pan-fresco-123")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, promoted.ID)
	assert.Equal(t, entity.RoleAdmin, promoted.Role)
	assert.Equal(t, 2, db.Counts().Users)
}
