package drug

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/drugs", h.ListBatches)
	api.GET("/drugs/available", h.ListAvailable)
	api.GET("/drugs/batches", h.ListBatchesForName)
	api.GET("/drugs/:id", h.GetBatch)
	api.POST("/drugs", h.CreateBatch)
	api.PUT("/drugs/:id", h.UpdateBatch)
	api.DELETE("/drugs/:id", h.DeleteBatch)
	api.POST("/drugs/:id/restock", h.Restock)
}

func (h *Handler) ListAvailable(c echo.Context) error {
	aggregates, err := h.svc.ListAvailable(c.Request().Context(), time.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "failed to list available drugs")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"drugs": aggregates})
}

func (h *Handler) ListBatchesForName(c echo.Context) error {
	name := c.QueryParam("name")
	batches, err := h.svc.ListBatchesForName(c.Request().Context(), name, time.Now())
	if err != nil {
		if name == "" {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusServiceUnavailable, "failed to list batches")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"batches": batches})
}

func (h *Handler) ListBatches(c echo.Context) error {
	batches, err := h.svc.ListBatches(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "failed to fetch drugs")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"drugs": batches})
}

func (h *Handler) GetBatch(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	b, err := h.svc.GetBatch(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "drug not found")
		}
		return echo.NewHTTPError(http.StatusServiceUnavailable, "failed to fetch drug")
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) CreateBatch(c echo.Context) error {
	var b Batch
	if err := c.Bind(&b); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateBatch(c.Request().Context(), &b); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Drug added successfully",
		"drug":    b,
	})
}

func (h *Handler) UpdateBatch(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var b Batch
	if err := c.Bind(&b); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	b.ID = id
	if err := h.svc.UpdateBatch(c.Request().Context(), &b); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "drug not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"message": "Drug updated successfully", "drug": b})
}

func (h *Handler) DeleteBatch(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteBatch(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "drug not found")
		}
		return echo.NewHTTPError(http.StatusServiceUnavailable, "failed to delete drug")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"message": "Drug deleted successfully"})
}

type restockRequest struct {
	Amount int64 `json:"amount"`
}

func (h *Handler) Restock(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req restockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	b, err := h.svc.Restock(c.Request().Context(), id, req.Amount)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "drug not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Drug restocked successfully",
		"drug":    b,
	})
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
