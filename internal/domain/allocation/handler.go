package allocation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pharmacy-emr/inventory/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/assignments", h.Allocate)
	api.GET("/assignments", h.ListRecent)
}

func (h *Handler) Allocate(c echo.Context) error {
	var req Request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Prefer the authenticated actor over the request body.
	if actor := auth.ActorFromContext(c); actor != "" {
		req.AssignedBy = &actor
	}

	a, remaining, err := h.svc.Allocate(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, ErrInsufficientStock):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusServiceUnavailable, "error assigning stock")
		}
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":                 "Stock assigned successfully",
		"assignment":              a,
		"remaining_central_stock": remaining,
	})
}

func (h *Handler) ListRecent(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = n
	}

	assignments, err := h.svc.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "failed to fetch assigned stock")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"assignments": assignments})
}
