package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/state244/hub/internal/infrastructure/auth"
	"github.com/state244/hub/internal/infrastructure/logger"
	"github.com/state244/hub/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	JWTUserIDKey  = "jwt_user_id"
	JWTEmailKey   = "jwt_email"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// errMissingToken marks a request without a bearer token. It maps to the
// generic unauthorized code rather than an invalid-token one.
var errMissingToken = errors.New("missing bearer token")

// TokenValidator validates bearer tokens
type TokenValidator interface {
	ValidateAccessToken(token string) (*auth.Claims, error)
}

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	// Validator is required for token validation
	Validator TokenValidator
	// Revocations is optional; when set, tokens issued before a revocation are refused
	Revocations auth.RevocationList
	// Optional callback if token is invalid (default: return 401)
	OnError func(c *gin.Context, err error)
	Logger  *zap.Logger
}

// JWTAuth requires a valid bearer token
func JWTAuth(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			handleAuthError(c, cfg, errMissingToken, "Missing or malformed authorization header")
			return
		}

		claims, userID, err := authenticate(c, cfg, token)
		if err != nil {
			handleAuthError(c, cfg, err, "Token validation failed")
			return
		}

		setClaims(c, claims, userID)
		if cfg.Logger != nil {
			cfg.Logger.Debug("JWT authentication successful", zap.String("user_id", userID.String()))
		}
		c.Next()
	}
}

// OptionalJWTAuth extracts claims when a valid token is present and lets
// anonymous requests through. An invalid token is treated as anonymous.
func OptionalJWTAuth(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}
		claims, userID, err := authenticate(c, cfg, token)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Debug("Ignoring invalid optional token", zap.Error(err))
			}
			c.Next()
			return
		}
		setClaims(c, claims, userID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(AuthHeaderKey)
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	return token, token != ""
}

func authenticate(c *gin.Context, cfg JWTMiddlewareConfig, token string) (*auth.Claims, uuid.UUID, error) {
	claims, err := cfg.Validator.ValidateAccessToken(token)
	if err != nil {
		return nil, uuid.Nil, err
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, uuid.Nil, err
	}

	if cfg.Revocations != nil && claims.IssuedAt != nil {
		revoked, err := cfg.Revocations.IsRevoked(c.Request.Context(), userID, claims.IssuedAt.Time)
		switch {
		case err != nil:
			// fail open: the revocation store is an optimization over token expiry
			if cfg.Logger != nil {
				cfg.Logger.Error("Failed to check token revocation",
					zap.String("user_id", userID.String()),
					zap.Error(err))
			}
		case revoked:
			return nil, uuid.Nil, auth.ErrTokenRevoked
		}
	}
	return claims, userID, nil
}

func setClaims(c *gin.Context, claims *auth.Claims, userID uuid.UUID) {
	c.Set(JWTClaimsKey, claims)
	c.Set(JWTUserIDKey, userID.String())
	c.Set(JWTEmailKey, claims.Email)

	ctx := c.Request.Context()
	ctx, _ = logger.WithUserID(ctx, logger.FromContext(ctx), userID.String())
	c.Request = c.Request.WithContext(ctx)
}

// handleAuthError handles authentication errors
func handleAuthError(c *gin.Context, cfg JWTMiddlewareConfig, err error, message string) {
	if cfg.OnError != nil {
		cfg.OnError(c, err)
		return
	}

	if cfg.Logger != nil {
		cfg.Logger.Warn("JWT authentication failed",
			zap.Error(err),
			zap.String("message", message),
			zap.String("path", c.Request.URL.Path),
		)
	}

	code := dto.ErrCodeUnauthorized
	errorMessage := "Authentication required"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code, errorMessage = dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrTokenNotYetValid):
		code, errorMessage = dto.ErrCodeTokenInvalid, "Token is not yet valid"
	case errors.Is(err, auth.ErrInvalidAudience), errors.Is(err, auth.ErrMissingUserID):
		code, errorMessage = dto.ErrCodeTokenInvalid, "Invalid token"
	case errors.Is(err, auth.ErrTokenRevoked):
		code, errorMessage = dto.ErrCodeTokenRevoked, "Token has been revoked"
	case errors.Is(err, auth.ErrInvalidToken):
		code, errorMessage = dto.ErrCodeTokenInvalid, "Invalid token"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(code, errorMessage, GetRequestID(c)))
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTUserID returns the authenticated user id, if any
func GetJWTUserID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString(JWTUserIDKey)
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	return id, err == nil
}
