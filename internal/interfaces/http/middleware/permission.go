package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/state244/hub/internal/domain/membership"
	"github.com/state244/hub/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// PermissionChecker answers role grants
type PermissionChecker interface {
	Allowed(role membership.Role, resource, action string) bool
}

// PermissionConfig holds configuration for permission middleware
type PermissionConfig struct {
	Checker PermissionChecker
	Logger  *zap.Logger
}

// RequirePermission refuses callers whose role lacks (resource, action).
// It needs LoadProfile earlier in the chain; a missing profile is 401.
// Alliance scoping is left to the application services.
func (cfg PermissionConfig) RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile := GetProfile(c)
		if profile == nil {
			abortWithCode(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}

		if !cfg.Checker.Allowed(profile.Role, resource, action) {
			if cfg.Logger != nil {
				cfg.Logger.Debug("Permission denied",
					zap.String("user_id", profile.ID.String()),
					zap.String("role", string(profile.Role)),
					zap.String("resource", resource),
					zap.String("action", action),
				)
			}
			abortWithCode(c, dto.ErrCodeForbidden, "Insufficient permissions")
			return
		}

		c.Next()
	}
}

// RequireAuthenticated refuses anonymous callers
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetProfile(c) == nil {
			abortWithCode(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		c.Next()
	}
}
