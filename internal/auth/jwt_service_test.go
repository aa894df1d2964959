package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
)

func TestJWTService_IssueVerifyRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, err := svc.Issue(42, model.RoleAdmin)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.Equal(t, "42", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTService_DefaultExpiry(t *testing.T) {
	svc := NewJWTService("test-secret", 0)
	assert.Equal(t, 24*time.Hour, svc.TTL())
}

func TestJWTService_VerifyRejects(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	valid, err := svc.Issue(1, model.RoleUser)
	require.NoError(t, err)

	expired, err := NewJWTService("test-secret", -time.Minute).Issue(1, model.RoleUser)
	require.NoError(t, err)

	otherSecret, err := NewJWTService("other-secret", time.Hour).Issue(1, model.RoleAdmin)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 1, Role: model.RoleAdmin}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"expired", expired},
		{"wrong secret", otherSecret},
		{"alg none", unsigned},
		{"garbage", "not-a-token"},
		{"tampered", valid[:len(valid)-2] + "xx"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Verify(tt.token)
			assert.Nil(t, claims)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidToken))
		})
	}
}
