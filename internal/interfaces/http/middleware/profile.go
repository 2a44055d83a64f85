package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/membership"
	"github.com/state244/hub/internal/interfaces/http/dto"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ProfileKey is the gin context key of the caller's profile
const ProfileKey = "profile"

// ProfileLoader returns the caller's profile, creating it on first sight
type ProfileLoader interface {
	EnsureProfile(ctx context.Context, userID uuid.UUID, email string) (*membership.Profile, error)
}

// LoadProfile resolves the authenticated caller to a profile row. It must
// run after JWTAuth. Anonymous requests pass through untouched so the same
// middleware serves optionally authenticated routes.
func LoadProfile(loader ProfileLoader, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetJWTUserID(c)
		if !ok {
			c.Next()
			return
		}

		email := c.GetString(JWTEmailKey)
		profile, err := loader.EnsureProfile(c.Request.Context(), userID, email)
		if err != nil {
			if log != nil {
				log.Error("Failed to load profile",
					zap.String("user_id", userID.String()),
					zap.Error(err))
			}
			abortWithCode(c, dto.ErrCodeInternal, "Failed to load profile")
			return
		}

		c.Set(ProfileKey, profile)
		if span := trace.SpanFromContext(c.Request.Context()); span.IsRecording() {
			span.SetAttributes(
				attribute.String("user_id", profile.ID.String()),
				attribute.String("user_role", string(profile.Role)),
			)
		}
		c.Next()
	}
}

// GetProfile returns the caller's profile, or nil for anonymous requests
func GetProfile(c *gin.Context) *membership.Profile {
	if v, exists := c.Get(ProfileKey); exists {
		if p, ok := v.(*membership.Profile); ok {
			return p
		}
	}
	return nil
}

func abortWithCode(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(dto.GetHTTPStatus(code),
		dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}
