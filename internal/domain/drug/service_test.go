package drug

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"
)

type mockRepo struct {
	batches map[int64]*Batch
	nextID  int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{batches: make(map[int64]*Batch)}
}

func (m *mockRepo) add(b Batch) *Batch {
	m.nextID++
	b.ID = m.nextID
	b.CreatedAt = time.Now()
	m.batches[b.ID] = &b
	return m.batches[b.ID]
}

func (m *mockRepo) Create(_ context.Context, b *Batch) error {
	m.nextID++
	b.ID = m.nextID
	b.CreatedAt = time.Now()
	cp := *b
	m.batches[b.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*Batch, error) {
	b, ok := m.batches[id]
	if !ok {
		return nil, fmt.Errorf("id %d: %w", id, ErrNotFound)
	}
	cp := *b
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, b *Batch) error {
	if _, ok := m.batches[b.ID]; !ok {
		return fmt.Errorf("id %d: %w", b.ID, ErrNotFound)
	}
	cp := *b
	m.batches[b.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.batches[id]; !ok {
		return fmt.Errorf("id %d: %w", id, ErrNotFound)
	}
	delete(m.batches, id)
	return nil
}

func (m *mockRepo) List(_ context.Context) ([]*Batch, error) {
	return m.sorted(func(*Batch) bool { return true }), nil
}

func (m *mockRepo) Restock(_ context.Context, id int64, amount int64) (*Batch, error) {
	b, ok := m.batches[id]
	if !ok {
		return nil, fmt.Errorf("id %d: %w", id, ErrNotFound)
	}
	b.Quantity += amount
	cp := *b
	return &cp, nil
}

func (m *mockRepo) ListEligible(_ context.Context, ref time.Time) ([]*Batch, error) {
	return m.sorted(func(b *Batch) bool { return b.Eligible(ref) }), nil
}

func (m *mockRepo) ListEligibleByName(_ context.Context, name string, ref time.Time) ([]*Batch, error) {
	return m.sorted(func(b *Batch) bool { return b.Name == name && b.Eligible(ref) }), nil
}

// sorted mirrors the ORDER BY name, id of the real queries.
func (m *mockRepo) sorted(keep func(*Batch) bool) []*Batch {
	var out []*Batch
	for _, b := range m.batches {
		if keep(b) {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func datePtr(t time.Time) *time.Time { return &t }

func TestListAvailable_SumsBatchesByName(t *testing.T) {
	repo := newMockRepo()
	now := time.Now()
	future := datePtr(now.AddDate(1, 0, 0))

	repo.add(Batch{Name: "Paracetamol", Strength: "500mg", BatchLabel: "PCM-01", Quantity: 30, ExpiryDate: future})
	repo.add(Batch{Name: "Paracetamol", Strength: "500mg", BatchLabel: "PCM-02", Quantity: 45, ExpiryDate: future})
	repo.add(Batch{Name: "Amoxicillin", Strength: "250mg", BatchLabel: "AMX-01", Quantity: 100, ExpiryDate: future})

	svc := NewService(repo)
	aggregates, err := svc.ListAvailable(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(aggregates) != 2 {
		t.Fatalf("expected 2 aggregates, got %d", len(aggregates))
	}

	byName := map[string]Aggregate{}
	for _, a := range aggregates {
		byName[a.Name] = a
	}
	if got := byName["Paracetamol"].TotalQty; got != 75 {
		t.Errorf("expected Paracetamol total 75, got %d", got)
	}
	if got := byName["Amoxicillin"].TotalQty; got != 100 {
		t.Errorf("expected Amoxicillin total 100, got %d", got)
	}
}

func TestListAvailable_ExcludesExpiredBatches(t *testing.T) {
	repo := newMockRepo()
	now := time.Now()

	repo.add(Batch{Name: "Ibuprofen", Strength: "200mg", BatchLabel: "IBU-01", Quantity: 50,
		ExpiryDate: datePtr(now.AddDate(0, 0, -1))})
	repo.add(Batch{Name: "Ibuprofen", Strength: "200mg", BatchLabel: "IBU-02", Quantity: 20,
		ExpiryDate: datePtr(now.AddDate(0, 6, 0))})
	// Expiring exactly at the reference instant is no longer eligible.
	repo.add(Batch{Name: "Ibuprofen", Strength: "200mg", BatchLabel: "IBU-03", Quantity: 10,
		ExpiryDate: datePtr(now)})

	svc := NewService(repo)
	aggregates, err := svc.ListAvailable(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(aggregates) != 1 {
		t.Fatalf("expected 1 aggregate, got %d", len(aggregates))
	}
	if aggregates[0].TotalQty != 20 {
		t.Errorf("expected total 20 from the unexpired batch, got %d", aggregates[0].TotalQty)
	}
}

func TestListAvailable_NullExpiryIsAlwaysEligible(t *testing.T) {
	repo := newMockRepo()
	repo.add(Batch{Name: "Metformin", Strength: "850mg", BatchLabel: "MET-01", Quantity: 40})

	svc := NewService(repo)
	aggregates, err := svc.ListAvailable(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(aggregates) != 1 || aggregates[0].TotalQty != 40 {
		t.Fatalf("expected null-expiry batch to be counted, got %+v", aggregates)
	}
}

func TestListAvailable_ZeroQuantityBatchKeepsGroup(t *testing.T) {
	repo := newMockRepo()
	future := datePtr(time.Now().AddDate(1, 0, 0))
	repo.add(Batch{Name: "Omeprazole", Strength: "20mg", BatchLabel: "OMP-01", Quantity: 0, ExpiryDate: future})

	svc := NewService(repo)
	aggregates, err := svc.ListAvailable(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(aggregates) != 1 {
		t.Fatalf("expected drained batch to still appear, got %d aggregates", len(aggregates))
	}
	if aggregates[0].TotalQty != 0 {
		t.Errorf("expected total 0, got %d", aggregates[0].TotalQty)
	}
}

func TestListAvailable_StrengthFromFirstBatch(t *testing.T) {
	repo := newMockRepo()
	future := datePtr(time.Now().AddDate(1, 0, 0))
	repo.add(Batch{Name: "Amoxicillin", Strength: "250mg", BatchLabel: "AMX-01", Quantity: 10, ExpiryDate: future})
	repo.add(Batch{Name: "Amoxicillin", Strength: "500mg", BatchLabel: "AMX-02", Quantity: 20, ExpiryDate: future})

	svc := NewService(repo)
	aggregates, err := svc.ListAvailable(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(aggregates) != 1 {
		t.Fatalf("expected 1 aggregate, got %d", len(aggregates))
	}
	if aggregates[0].Strength != "250mg" {
		t.Errorf("expected strength from first batch (250mg), got %s", aggregates[0].Strength)
	}
	if aggregates[0].TotalQty != 30 {
		t.Errorf("expected total 30 across strengths, got %d", aggregates[0].TotalQty)
	}
}

func TestListBatchesForName(t *testing.T) {
	repo := newMockRepo()
	now := time.Now()
	future := datePtr(now.AddDate(1, 0, 0))
	repo.add(Batch{Name: "Paracetamol", Strength: "500mg", BatchLabel: "PCM-01", Quantity: 30, ExpiryDate: future})
	repo.add(Batch{Name: "Paracetamol", Strength: "500mg", BatchLabel: "PCM-02", Quantity: 45,
		ExpiryDate: datePtr(now.AddDate(0, 0, -2))})
	repo.add(Batch{Name: "Amoxicillin", Strength: "250mg", BatchLabel: "AMX-01", Quantity: 100, ExpiryDate: future})

	svc := NewService(repo)
	batches, err := svc.ListBatchesForName(context.Background(), "Paracetamol", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batches) != 1 {
		t.Fatalf("expected 1 eligible batch, got %d", len(batches))
	}
	if batches[0].BatchLabel != "PCM-01" {
		t.Errorf("expected PCM-01, got %s", batches[0].BatchLabel)
	}

	if _, err := svc.ListBatchesForName(context.Background(), "", now); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestListBatchesForName_UnknownNameIsEmptyNotError(t *testing.T) {
	svc := NewService(newMockRepo())
	batches, err := svc.ListBatchesForName(context.Background(), "Nonexistent", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batches) != 0 {
		t.Errorf("expected empty result, got %d", len(batches))
	}
}

func TestCreateBatch_Validation(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	cases := []struct {
		name  string
		batch Batch
	}{
		{"missing name", Batch{Strength: "500mg", BatchLabel: "X-01"}},
		{"missing strength", Batch{Name: "Paracetamol", BatchLabel: "X-01"}},
		{"missing batch_id", Batch{Name: "Paracetamol", Strength: "500mg"}},
		{"negative quantity", Batch{Name: "Paracetamol", Strength: "500mg", BatchLabel: "X-01", Quantity: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.batch
			if err := svc.CreateBatch(ctx, &b); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	valid := Batch{Name: "Paracetamol", Strength: "500mg", BatchLabel: "X-01", Quantity: 10}
	if err := svc.CreateBatch(ctx, &valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if valid.ID == 0 {
		t.Error("expected assigned id")
	}
}

func TestRestock(t *testing.T) {
	repo := newMockRepo()
	b := repo.add(Batch{Name: "Paracetamol", Strength: "500mg", BatchLabel: "PCM-01", Quantity: 10})
	svc := NewService(repo)

	updated, err := svc.Restock(context.Background(), b.ID, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Quantity != 35 {
		t.Errorf("expected quantity 35, got %d", updated.Quantity)
	}

	if _, err := svc.Restock(context.Background(), b.ID, 0); err == nil {
		t.Error("expected error for non-positive amount")
	}
	if _, err := svc.Restock(context.Background(), b.ID, -5); err == nil {
		t.Error("expected error for negative amount")
	}
}
