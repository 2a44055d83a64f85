package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/state244/hub/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-chars"

func newTestJWTService() *JWTService {
	return NewJWTService(config.AuthConfig{
		JWTSecret:   testSecret,
		Issuer:      "state244-hub",
		Audience:    "authenticated",
		DevTokenTTL: 15 * time.Minute,
	})
}

func signRaw(t *testing.T, method jwt.SigningMethod, key any, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	token, expiresAt, err := svc.IssueToken(userID, "r5@example.com", 0)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "r5@example.com", claims.Email)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, id)
}

func TestJWTService_ValidateAccessToken_Rejections(t *testing.T) {
	svc := newTestJWTService()
	now := time.Now()
	base := func() jwt.RegisteredClaims {
		return jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			Audience:  jwt.ClaimStrings{"authenticated"},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		}
	}

	t.Run("expired", func(t *testing.T) {
		rc := base()
		rc.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))
		_, err := svc.ValidateAccessToken(signRaw(t, jwt.SigningMethodHS256, []byte(testSecret), &Claims{RegisteredClaims: rc}))
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong audience", func(t *testing.T) {
		rc := base()
		rc.Audience = jwt.ClaimStrings{"anon"}
		_, err := svc.ValidateAccessToken(signRaw(t, jwt.SigningMethodHS256, []byte(testSecret), &Claims{RegisteredClaims: rc}))
		assert.ErrorIs(t, err, ErrInvalidAudience)
	})

	t.Run("missing expiry", func(t *testing.T) {
		rc := base()
		rc.ExpiresAt = nil
		_, err := svc.ValidateAccessToken(signRaw(t, jwt.SigningMethodHS256, []byte(testSecret), &Claims{RegisteredClaims: rc}))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		rc := base()
		_, err := svc.ValidateAccessToken(signRaw(t, jwt.SigningMethodHS256, []byte("another-secret-another-secret-xx"), &Claims{RegisteredClaims: rc}))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other algorithm", func(t *testing.T) {
		rc := base()
		_, err := svc.ValidateAccessToken(signRaw(t, jwt.SigningMethodHS512, []byte(testSecret), &Claims{RegisteredClaims: rc}))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("non uuid subject", func(t *testing.T) {
		rc := base()
		rc.Subject = "anonymous"
		_, err := svc.ValidateAccessToken(signRaw(t, jwt.SigningMethodHS256, []byte(testSecret), &Claims{RegisteredClaims: rc}))
		assert.ErrorIs(t, err, ErrMissingUserID)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
