package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret-key-for-unit-tests"

var farFuture = time.Now().Add(time.Hour)

func TestGenerateAndParse(t *testing.T) {
	tok, err := Generate(secret, "u-1", "admin", "proveo-test", 60)
	require.NoError(t, err)

	userID, role, err := Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "admin", role)
}

func TestParse_Rechazos(t *testing.T) {
	expired, err := Generate(secret, "u-1", "admin", "proveo-test", -1)
	require.NoError(t, err)
	_, _, err = Parse(secret, expired)
	assert.ErrorIs(t, err, gojwt.ErrTokenExpired)

	valid, err := Generate(secret, "u-1", "admin", "proveo-test", 60)
	require.NoError(t, err)
	_, _, err = Parse("otro-secret", valid)
	assert.ErrorIs(t, err, gojwt.ErrTokenSignatureInvalid)

	// HS512 no está permitido aunque la firma sea válida.
	hs512, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, Claims{
		RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(farFuture)},
		UserID:           "u-1",
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	_, _, err = Parse(secret, hs512)
	assert.ErrorIs(t, err, gojwt.ErrTokenSignatureInvalid)
}

func TestEmptySecret(t *testing.T) {
	_, err := Generate("", "u-1", "user", "", 60)
	assert.ErrorIs(t, err, ErrEmptySecret)
	_, _, err = Parse("", "x")
	assert.ErrorIs(t, err, ErrEmptySecret)
}
