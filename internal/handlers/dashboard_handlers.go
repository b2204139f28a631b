package handlers

import (
	"fmt"
	"net/http"

	"roomlink/internal/analytics"
	"roomlink/internal/common"
	"roomlink/internal/models"
	"roomlink/internal/repositories"

	"github.com/labstack/echo/v4"
)

type DashboardHandlers struct {
	dashboardService *analytics.DashboardService
	profileRepo      repositories.ProfileRepository
}

func NewDashboardHandlers(dashboardService *analytics.DashboardService, profileRepo repositories.ProfileRepository) *DashboardHandlers {
	return &DashboardHandlers{
		dashboardService: dashboardService,
		profileRepo:      profileRepo,
	}
}

// OwnerDashboard returns the calling owner's listing and request counts.
func (h *DashboardHandlers) OwnerDashboard(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.RespondError(c, common.ErrNotAuthenticated)
	}

	profile, err := h.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return common.RespondError(c, fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err))
	}
	if profile == nil {
		return common.RespondError(c, common.ErrProfileNotFound)
	}
	if profile.Role != models.RoleOwner {
		return common.RespondError(c, common.ErrForbidden)
	}

	dashboard, err := h.dashboardService.OwnerDashboard(ctx, profile.ID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, dashboard)
}
