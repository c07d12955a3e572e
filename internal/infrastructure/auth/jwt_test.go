package auth

import (
	"testing"
	"time"

	"github.com/carobar/backend/internal/domain/identity"
	"github.com/carobar/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "test-issuer",
	})
}

func newTestInput() GenerateTokenInput {
	return GenerateTokenInput{
		CompanyID: uuid.New(),
		UserID:    uuid.New(),
		Username:  "testuser",
		Role:      identity.RoleAccountant,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()

	token, err := svc.GenerateToken(input)
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.True(t, token.ExpiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(token.AccessToken)
	require.NoError(t, err)

	companyID, err := claims.GetCompanyUUID()
	require.NoError(t, err)
	userID, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, input.CompanyID, companyID)
	assert.Equal(t, input.UserID, userID)
	assert.Equal(t, "testuser", claims.Username)
	assert.Equal(t, identity.RoleAccountant, claims.Role())
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestJWTService()
	issued := time.Now().Add(-time.Hour)
	svc.now = func() time.Time { return issued }

	token, err := svc.GenerateToken(newTestInput())
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := newTestJWTService().GenerateToken(newTestInput())
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret:                "another-secret-key-at-least-32-chars",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "test-issuer",
	})
	_, err = other.ValidateToken(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongIssuer(t *testing.T) {
	token, err := newTestJWTService().GenerateToken(newTestInput())
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "someone-else",
	})
	_, err = other.ValidateToken(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_RejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{CompanyID: uuid.NewString(), UserID: uuid.NewString(), RoleID: 1}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestJWTService().ValidateToken(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_InvalidRole(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()
	input.Role = identity.Role(42)

	token, err := svc.GenerateToken(input)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := newTestJWTService().ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClaims_GetRemainingTTL(t *testing.T) {
	now := time.Now()
	c := &Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute))}}
	assert.InDelta(t, float64(time.Minute), float64(c.GetRemainingTTL(now)), float64(time.Second))
	assert.Zero(t, c.GetRemainingTTL(now.Add(time.Hour)))
	assert.Zero(t, (&Claims{}).GetRemainingTTL(now))
}
