package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/copier-service-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "copier-service-test"
)

func testIdentity() pkgjwt.Identity {
	name := "Tech One"
	return pkgjwt.Identity{
		UserID: "00000000-0000-0000-0000-000000000001",
		Name:   &name,
		Email:  "tech@konica.com",
		Role:   "TECHNICIAN",
	}
}

func TestGenerateAndParse_ConservaIdentidad(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testIssuer, 60, testIdentity())
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	id, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", id.UserID)
	assert.Equal(t, "tech@konica.com", id.Email)
	assert.Equal(t, "TECHNICIAN", id.Role)
	require.NotNil(t, id.Name)
	assert.Equal(t, "Tech One", *id.Name)
	assert.Nil(t, id.Image)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testIssuer, -1, testIdentity())
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testIssuer, 60, testIdentity())
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", testIssuer, 60, testIdentity())
	assert.Error(t, err)
}

func TestParse_SinUserID(t *testing.T) {
	id := testIdentity()
	id.UserID = ""
	tok, err := pkgjwt.Generate(testSecret, testIssuer, 60, id)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err)
}
