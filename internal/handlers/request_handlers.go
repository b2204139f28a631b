package handlers

import (
	"net/http"
	"strconv"
	"time"

	"roomlink/internal/caching"
	"roomlink/internal/common"
	"roomlink/internal/services"

	"github.com/labstack/echo/v4"
)

// Per-user cap on request creation; enough for a person, not a script.
const (
	createRequestLimit  = 20
	createRequestWindow = time.Minute
)

type RequestHandlers struct {
	requestService services.RequestService
	cacheSvc       caching.CacheService
}

func NewRequestHandlers(requestService services.RequestService, cacheSvc caching.CacheService) *RequestHandlers {
	return &RequestHandlers{
		requestService: requestService,
		cacheSvc:       cacheSvc,
	}
}

// CreateRequest opens a pending request against an active room.
func (h *RequestHandlers) CreateRequest(c echo.Context) error {
	ctx := c.Request().Context()

	if userID, ok := common.GetUserIDFromContext(ctx); ok {
		limited, err := h.cacheSvc.IsRateLimited(ctx, "requests:"+userID.String(), createRequestLimit, createRequestWindow)
		if err == nil && limited {
			return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests, slow down")
		}
	}

	var input services.CreateRequestInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	request, err := h.requestService.Create(ctx, &input)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, request)
}

type DecideRequestBody struct {
	Decision string `json:"decision" validate:"required,oneof=accept reject"`
}

// Decide accepts or rejects a pending request. Terminal states never
// transition again; a repeated decision is a conflict, not a no-op.
func (h *RequestHandlers) Decide(c echo.Context) error {
	requestID, err := common.ValidateUUID(c.Param("id"), "request id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var body DecideRequestBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	request, err := h.requestService.Decide(c.Request().Context(), requestID, body.Decision)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, request)
}

// ListReceived lists requests targeting the calling owner. Tenant contact
// details only appear on accepted rows.
func (h *RequestHandlers) ListReceived(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	views, err := h.requestService.ListForOwner(c.Request().Context(), limit, offset)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, views)
}

// ListSent lists the requests the calling tenant created.
func (h *RequestHandlers) ListSent(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	views, err := h.requestService.ListForTenant(c.Request().Context(), limit, offset)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, views)
}

// Events returns the audit trail of one request to either party.
func (h *RequestHandlers) Events(c echo.Context) error {
	requestID, err := common.ValidateUUID(c.Param("id"), "request id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	events, err := h.requestService.Events(c.Request().Context(), requestID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, events)
}
