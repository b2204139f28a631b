package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"roomlink/internal/common"
	"roomlink/internal/models"
	"roomlink/internal/services"

	"github.com/labstack/echo/v4"
)

type RoomHandlers struct {
	roomService services.RoomService
}

func NewRoomHandlers(roomService services.RoomService) *RoomHandlers {
	return &RoomHandlers{roomService: roomService}
}

// CreateRoom creates a listing owned by the calling owner.
func (h *RoomHandlers) CreateRoom(c echo.Context) error {
	ctx := c.Request().Context()

	var input services.CreateRoomInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	room, err := h.roomService.Create(ctx, &input)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, room)
}

// DeleteRoom removes a listing. There is no edit path; delete is the only
// mutation an owner has.
func (h *RoomHandlers) DeleteRoom(c echo.Context) error {
	roomID, err := common.ValidateUUID(c.Param("id"), "room id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.roomService.Delete(c.Request().Context(), roomID); err != nil {
		return common.RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetRoom resolves an active listing.
func (h *RoomHandlers) GetRoom(c echo.Context) error {
	roomID, err := common.ValidateUUID(c.Param("id"), "room id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	room, err := h.roomService.GetActiveRoom(c.Request().Context(), roomID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

// ListMyRooms lists the calling owner's listings, active and inactive.
func (h *RoomHandlers) ListMyRooms(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	rooms, err := h.roomService.ListMine(c.Request().Context(), limit, offset)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, rooms)
}

// SearchRooms runs the tenant-facing filtered search over active listings.
// Filters arrive as query parameters; features is a comma separated list
// of required amenities.
func (h *RoomHandlers) SearchRooms(c echo.Context) error {
	filter := &models.RoomSearchFilter{
		SortBy:    c.QueryParam("sort_by"),
		SortOrder: c.QueryParam("sort_order"),
	}

	if city := c.QueryParam("city"); city != "" {
		filter.City = &city
	}
	if district := c.QueryParam("district"); district != "" {
		filter.District = &district
	}
	if roomType := c.QueryParam("room_type"); roomType != "" {
		filter.RoomType = &roomType
	}
	if minRent := c.QueryParam("min_rent"); minRent != "" {
		v, err := strconv.ParseFloat(minRent, 64)
		if err != nil {
			return common.SendValidationError(c, "min_rent", "must be a number")
		}
		filter.MinRent = &v
	}
	if maxRent := c.QueryParam("max_rent"); maxRent != "" {
		v, err := strconv.ParseFloat(maxRent, 64)
		if err != nil {
			return common.SendValidationError(c, "max_rent", "must be a number")
		}
		filter.MaxRent = &v
	}
	if featureList := c.QueryParam("features"); featureList != "" {
		features, err := parseFeatureList(featureList)
		if err != nil {
			return common.SendValidationError(c, "features", err.Error())
		}
		filter.Features = features
	}
	filter.Limit, _ = strconv.Atoi(c.QueryParam("limit"))
	filter.Offset, _ = strconv.Atoi(c.QueryParam("offset"))

	rooms, err := h.roomService.Search(c.Request().Context(), filter)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, rooms)
}

// parseFeatureList maps a comma separated amenity list onto the closed
// feature vocabulary, rejecting anything outside it.
func parseFeatureList(list string) (*models.RoomFeatures, error) {
	features := &models.RoomFeatures{}
	for _, name := range strings.Split(list, ",") {
		switch strings.TrimSpace(strings.ToLower(name)) {
		case "wifi":
			features.Wifi = true
		case "electricity":
			features.Electricity = true
		case "water":
			features.Water = true
		case "parking":
			features.Parking = true
		case "furnished":
			features.Furnished = true
		case "security":
			features.Security = true
		case "":
		default:
			return nil, fmt.Errorf("unknown feature: %s", strings.TrimSpace(name))
		}
	}
	return features, nil
}
