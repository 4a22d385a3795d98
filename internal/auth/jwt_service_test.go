package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"foodgram/internal/model"
)

func testUser() *model.User {
	return &model.User{ID: 7, Email: "chef@example.com", Username: "chef"}
}

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateAccessToken(testUser())
	assert.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "chef@example.com", claims.Email)
	assert.Equal(t, "chef", claims.Username)
	// Access tokens carry no JTI; only refresh tokens are revocable.
	assert.Empty(t, claims.ID)
}

func TestJWTService_RefreshTokenCarriesID(t *testing.T) {
	svc := NewJWTService("test-secret")

	tokenID, token, err := svc.GenerateRefreshToken(testUser())
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenID)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, tokenID, claims.ID)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "chef", claims.Username)
}

func TestJWTService_ValidateToken_WrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a").GenerateAccessToken(testUser())
	assert.NoError(t, err)

	_, err = NewJWTService("secret-b").ValidateToken(token)

	assert.Error(t, err)
}
