// Package overview serves the admin dashboard aggregates.
package overview

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// Summary is the dashboard snapshot: registry sizes, ledger totals, and the
// count of batches expiring within the warning window.
type Summary struct {
	Facilities            int64 `json:"facilities"`
	TotalDrugs            int64 `json:"total_drugs"`
	StockEntries          int64 `json:"stock_entries"`
	TotalQuantityAssigned int64 `json:"total_quantity_assigned"`
	ExpiringSoon          int64 `json:"expiring_soon"`
}

// ExpiryWarningWindow is how far ahead a batch expiry counts as "expiring
// soon" on the dashboard.
const ExpiryWarningWindow = 14 * 24 * time.Hour

type Repository interface {
	Summarize(ctx context.Context, ref time.Time) (*Summary, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) Summarize(ctx context.Context, ref time.Time) (*Summary, error) {
	var s Summary
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM facilities),
			(SELECT COUNT(*) FROM drugs),
			(SELECT COUNT(*) FROM stock),
			(SELECT COALESCE(SUM(quantity_assigned), 0) FROM stock),
			(SELECT COUNT(*) FROM drugs WHERE expiry_date IS NOT NULL AND expiry_date <= $1)`,
		ref.Add(ExpiryWarningWindow)).
		Scan(&s.Facilities, &s.TotalDrugs, &s.StockEntries, &s.TotalQuantityAssigned, &s.ExpiringSoon)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/overview", h.Get)
}

func (h *Handler) Get(c echo.Context) error {
	s, err := h.repo.Summarize(c.Request().Context(), time.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "failed to fetch dashboard data")
	}
	return c.JSON(http.StatusOK, s)
}
