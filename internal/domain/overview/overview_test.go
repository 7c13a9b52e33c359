package overview

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

type mockRepo struct {
	summary *Summary
	err     error
	lastRef time.Time
}

func (m *mockRepo) Summarize(_ context.Context, ref time.Time) (*Summary, error) {
	m.lastRef = ref
	return m.summary, m.err
}

func TestHandlerGet(t *testing.T) {
	repo := &mockRepo{summary: &Summary{
		Facilities:            3,
		TotalDrugs:            5,
		StockEntries:          12,
		TotalQuantityAssigned: 740,
		ExpiringSoon:          1,
	}}

	e := echo.New()
	NewHandler(repo).RegisterRoutes(e.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/overview", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if got != *repo.summary {
		t.Errorf("unexpected summary: %+v", got)
	}
}

func TestHandlerGet_StoreFailure(t *testing.T) {
	repo := &mockRepo{err: errors.New("connection refused")}

	e := echo.New()
	NewHandler(repo).RegisterRoutes(e.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/overview", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}
}
