package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func testClaims() *JWTClaims {
	now := time.Now()
	return &JWTClaims{
		UserID:    42,
		Email:     "worker@example.com",
		Role:      "worker",
		Type:      "access",
		ExpiresAt: now.Add(time.Hour).Unix(),
		IssuedAt:  now.Unix(),
		Issuer:    "kind-api",
		Subject:   "42",
	}
}

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT(testClaims(), testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "worker@example.com", claims.Email)
	assert.Equal(t, "worker", claims.Role)
	assert.Equal(t, "access", claims.Type)
	assert.Equal(t, "kind-api", claims.Issuer)
}

func TestValidateJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(testClaims(), testSecret)
	require.NoError(t, err)

	_, err = ValidateJWT(token, "another-secret")
	assert.Error(t, err)
}

func TestValidateJWTExpired(t *testing.T) {
	claims := testClaims()
	claims.ExpiresAt = time.Now().Add(-time.Hour).Unix()
	claims.IssuedAt = time.Now().Add(-2 * time.Hour).Unix()

	token, err := GenerateJWT(claims, testSecret)
	require.NoError(t, err)

	_, err = ValidateJWT(token, testSecret)
	assert.Error(t, err)
}

func TestValidateJWTGarbage(t *testing.T) {
	_, err := ValidateJWT("not.a.token", testSecret)
	assert.Error(t, err)
}
