package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, "careops-test")

	userID := uuid.New()
	workspaceID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, &workspaceID, "owner@example.com", "owner")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	require.NotNil(t, claims.WorkspaceID)
	assert.Equal(t, workspaceID, *claims.WorkspaceID)
	assert.Equal(t, "owner@example.com", claims.Email)
	assert.Equal(t, "owner", claims.Role)
	assert.Equal(t, "careops-test", claims.Issuer)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	svc := NewJWTService("secret-a", time.Hour, "careops-test")
	other := NewJWTService("secret-b", time.Hour, "careops-test")

	token, err := svc.GenerateAccessToken(uuid.New(), nil, "a@example.com", "staff")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute, "careops-test")

	token, err := svc.GenerateAccessToken(uuid.New(), nil, "a@example.com", "staff")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
