package facility

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

type mockRepo struct {
	facilities map[int64]*Facility
	nextID     int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{facilities: make(map[int64]*Facility)}
}

func (m *mockRepo) Create(_ context.Context, f *Facility) error {
	m.nextID++
	f.ID = m.nextID
	f.CreatedAt = time.Now()
	cp := *f
	m.facilities[f.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*Facility, error) {
	f, ok := m.facilities[id]
	if !ok {
		return nil, fmt.Errorf("id %d: %w", id, ErrNotFound)
	}
	cp := *f
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, f *Facility) error {
	if _, ok := m.facilities[f.ID]; !ok {
		return fmt.Errorf("id %d: %w", f.ID, ErrNotFound)
	}
	cp := *f
	m.facilities[f.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.facilities[id]; !ok {
		return fmt.Errorf("id %d: %w", id, ErrNotFound)
	}
	delete(m.facilities, id)
	return nil
}

// List mirrors the ORDER BY id DESC of the real query.
func (m *mockRepo) List(_ context.Context) ([]*Facility, error) {
	var out []*Facility
	for _, f := range m.facilities {
		cp := *f
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func TestCreate_RequiresName(t *testing.T) {
	svc := NewService(newMockRepo())

	if err := svc.Create(context.Background(), &Facility{Location: "Lagos"}); err == nil {
		t.Error("expected error for missing name")
	}

	f := Facility{Name: "District Clinic", Location: "Kano", Contact: "+234-800"}
	if err := svc.Create(context.Background(), &f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.ID == 0 {
		t.Error("expected assigned id")
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())

	err := svc.Update(context.Background(), &Facility{ID: 99, Name: "Renamed"})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestHandlerCRUD(t *testing.T) {
	repo := newMockRepo()
	e := echo.New()
	NewHandler(NewService(repo)).RegisterRoutes(e.Group("/api/v1"))

	// Create
	body := `{"name":"General Hospital Pharmacy","location":"Abuja","contact":"+234-800"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/facilities", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// List returns a bare array, newest first
	req = httptest.NewRequest(http.MethodGet, "/api/v1/facilities", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	var facilities []Facility
	if err := json.Unmarshal(rec.Body.Bytes(), &facilities); err != nil {
		t.Fatalf("list: invalid response body: %v", err)
	}
	if len(facilities) != 1 || facilities[0].Name != "General Hospital Pharmacy" {
		t.Errorf("list: unexpected facilities: %+v", facilities)
	}

	// Get
	req = httptest.NewRequest(http.MethodGet, "/api/v1/facilities/1", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rec.Code)
	}

	// Update
	body = `{"name":"General Hospital Pharmacy","location":"Abuja Central","contact":"+234-801"}`
	req = httptest.NewRequest(http.MethodPut, "/api/v1/facilities/1", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if repo.facilities[1].Location != "Abuja Central" {
		t.Errorf("update not applied: %+v", repo.facilities[1])
	}

	// Delete
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/facilities/1", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
	if len(repo.facilities) != 0 {
		t.Error("facility not deleted")
	}

	// Get after delete
	req = httptest.NewRequest(http.MethodGet, "/api/v1/facilities/1", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", rec.Code)
	}
}
