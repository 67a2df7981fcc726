package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "devconnect-api", claims.Issuer)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	other := NewJWTService("other-secret", time.Hour)

	token, err := svc.GenerateToken(uuid.New())
	assert.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute)

	token, err := svc.GenerateToken(uuid.New())
	assert.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
}
