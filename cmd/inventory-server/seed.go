package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type seedFacility struct {
	name     string
	location string
	contact  string
}

type seedBatch struct {
	name     string
	strength string
	batch    string
	quantity int64
	expiry   time.Time
}

// seed inserts a small demo dataset: a few facilities and drug batches,
// including two batches of the same drug so the aggregated view has
// something to sum. Idempotent via ON CONFLICT DO NOTHING on natural keys.
func seed(ctx context.Context, pool *pgxpool.Pool) error {
	facilities := []seedFacility{
		{"General Hospital Pharmacy", "Abuja", "+234-800-000-0001"},
		{"Community Health Centre", "Lagos", "+234-800-000-0002"},
		{"District Clinic", "Kano", "+234-800-000-0003"},
	}

	now := time.Now()
	batches := []seedBatch{
		{"Amoxicillin", "500mg", "AMX-2026-01", 500, now.AddDate(1, 0, 0)},
		{"Amoxicillin", "500mg", "AMX-2026-02", 250, now.AddDate(0, 8, 0)},
		{"Paracetamol", "500mg", "PCM-2026-11", 1200, now.AddDate(2, 0, 0)},
		{"Ibuprofen", "200mg", "IBU-2025-07", 300, now.AddDate(0, 1, 0)},
		{"Metformin", "850mg", "MET-2026-03", 400, now.AddDate(1, 6, 0)},
	}

	for _, f := range facilities {
		if _, err := pool.Exec(ctx, `
			INSERT INTO facilities (name, location, contact)
			VALUES ($1, $2, $3)
			ON CONFLICT (name) DO NOTHING`,
			f.name, f.location, f.contact); err != nil {
			return fmt.Errorf("insert facility %q: %w", f.name, err)
		}
	}

	for _, b := range batches {
		if _, err := pool.Exec(ctx, `
			INSERT INTO drugs (name, strength, batch_id, quantity, expiry_date, created_at)
			VALUES ($1, $2, $3, $4, $5, NOW())
			ON CONFLICT (name, batch_id) DO NOTHING`,
			b.name, b.strength, b.batch, b.quantity, b.expiry); err != nil {
			return fmt.Errorf("insert batch %q %q: %w", b.name, b.batch, err)
		}
	}

	return nil
}
