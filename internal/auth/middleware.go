package auth

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "foodgram/internal/errors"
	"foodgram/internal/model"
)

const userIDContextKey = "auth.user_id"

// UserLookup resolves a user by id; the router supplies the repository
// method so this package stays below the repository layer.
type UserLookup func(ctx context.Context, id uint) (*model.User, error)

// CurrentUserID returns the authenticated user's id, or 0 for an
// anonymous requester. Components treat 0 as the anonymous marker.
func CurrentUserID(c echo.Context) uint {
	if id, ok := c.Get(userIDContextKey).(uint); ok {
		return id
	}
	return 0
}

// SetCurrentUserID records the requester identity on the context.
// Exposed for the echo-jwt success handler and for tests.
func SetCurrentUserID(c echo.Context, id uint) {
	c.Set(userIDContextKey, id)
}

// OptionalAuth resolves the requester identity from a bearer token when
// one is present, but never rejects the request. Public recipe and user
// listings use it so annotation flags can still reflect the requester.
func OptionalAuth(jwtService *JWTService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if token, ok := strings.CutPrefix(header, "Bearer "); ok {
				if claims, err := jwtService.ValidateToken(token); err == nil {
					SetCurrentUserID(c, claims.UserID)
				}
			}
			return next(c)
		}
	}
}

// BlockedGuard rejects requests from blocked users. It runs after the
// JWT middleware on secured groups, so a missing identity here means a
// deleted account rather than a missing token.
func BlockedGuard(lookup UserLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := CurrentUserID(c)
			if userID == 0 {
				httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUnauthorized)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			user, err := lookup(c.Request().Context(), userID)
			if err != nil {
				httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUserNotFound)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			if user.IsBlocked {
				httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUserBlocked)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			return next(c)
		}
	}
}
