package middleware

import (
	"net/http"

	"roomlink/internal/common"
	"roomlink/internal/repositories"

	"github.com/labstack/echo/v4"
)

// RoleMiddleware gates routes on the caller's profile role. Services still
// re-check role and ownership themselves; this only rejects early.
type RoleMiddleware struct {
	profileRepo repositories.ProfileRepository
}

func NewRoleMiddleware(profileRepo repositories.ProfileRepository) *RoleMiddleware {
	return &RoleMiddleware{profileRepo: profileRepo}
}

func (m *RoleMiddleware) RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			userID, ok := common.GetUserIDFromContext(ctx)
			if !ok {
				return common.RespondError(c, common.ErrNotAuthenticated)
			}

			profile, err := m.profileRepo.GetByUserID(ctx, userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Error resolving profile")
			}
			if profile == nil {
				return common.RespondError(c, common.ErrProfileNotFound)
			}
			if profile.Role != role {
				return common.RespondError(c, common.ErrForbidden)
			}

			return next(c)
		}
	}
}
