package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/PuntoVenta-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testUserID = "00000000-0000-0000-0000-000000000001"
	testIssuer = "punto-venta-test"
)

func TestManager_GenerateYValidate(t *testing.T) {
	m := pkgjwt.NewManager(testSecret, 60, testIssuer)

	tok, err := m.Generate(testUserID, "inventory_manager")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := m.Validate(tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, "inventory_manager", claims.Role)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.Equal(t, testUserID, claims.Subject)
}

func TestManager_TokenExpirado(t *testing.T) {
	// Expiración -1 minuto: el token nace expirado.
	m := pkgjwt.NewManager(testSecret, -1, testIssuer)

	tok, err := m.Generate(testUserID, "super_admin")
	require.NoError(t, err)

	_, err = m.Validate(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrExpiredToken)
}

func TestManager_SecretIncorrecto(t *testing.T) {
	emisor := pkgjwt.NewManager(testSecret, 60, testIssuer)
	receptor := pkgjwt.NewManager("otro-secret-completamente-distinto", 60, testIssuer)

	tok, err := emisor.Generate(testUserID, "super_admin")
	require.NoError(t, err)

	_, err = receptor.Validate(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}

func TestManager_TokenMalformado(t *testing.T) {
	m := pkgjwt.NewManager(testSecret, 60, testIssuer)

	_, err := m.Validate("no.es.un.jwt")
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}

func TestManager_Expiration(t *testing.T) {
	m := pkgjwt.NewManager(testSecret, 480, testIssuer)
	assert.Equal(t, 480*time.Minute, m.Expiration())
}
