package handlers

import (
	"net/http"

	"roomlink/internal/common"
	"roomlink/internal/services"

	"github.com/labstack/echo/v4"
)

type ProfileHandlers struct {
	profileService services.ProfileService
}

func NewProfileHandlers(profileService services.ProfileService) *ProfileHandlers {
	return &ProfileHandlers{profileService: profileService}
}

// CreateProfile creates the caller's profile at first login. The role
// chosen here is permanent.
func (h *ProfileHandlers) CreateProfile(c echo.Context) error {
	ctx := c.Request().Context()

	var input services.CreateProfileInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	profile, err := h.profileService.Create(ctx, &input)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, profile)
}

// Me resolves the caller's profile.
func (h *ProfileHandlers) Me(c echo.Context) error {
	profile, err := h.profileService.Resolve(c.Request().Context())
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}
