package allocation

import "time"

// Assignment is one row of the stock ledger: a completed transfer of
// quantity from a central drug batch to a facility. Rows are created once
// and never updated or deleted.
type Assignment struct {
	ID         int64 `db:"id" json:"id"`
	FacilityID int64 `db:"facility_id" json:"facility_id"`
	// DrugID references a concrete drugs row (one batch), not a drug family.
	DrugID           int64  `db:"drug_id" json:"drug_id"`
	BatchNo          string `db:"batch_no" json:"batch_no"`
	QuantityAssigned int64  `db:"quantity_assigned" json:"quantity_assigned"`
	// QuantityRemaining is initialized equal to QuantityAssigned and is
	// never decremented afterwards. Facility-level drawdown tracking was
	// never built; the column is a snapshot only.
	QuantityRemaining int64      `db:"quantity_remaining" json:"quantity_remaining"`
	ExpiryDate        *time.Time `db:"expiry_date" json:"expiry_date,omitempty"`
	AssignedBy        *string    `db:"assigned_by" json:"assigned_by,omitempty"`
	AssignedAt        time.Time  `db:"assigned_at" json:"assigned_at"`
}

// AssignmentView is an Assignment joined with facility and drug display
// columns for the ledger listing. The joined fields are pointers because the
// listing uses a LEFT JOIN and tolerates missing reference rows.
type AssignmentView struct {
	Assignment
	FacilityName *string `json:"facility_name"`
	DrugName     *string `json:"drug_name"`
	DrugBatchID  *string `json:"drug_batch_id"`
}

// Request carries one allocation attempt. ExpiryDate is the caller's expiry
// snapshot for the chosen batch; AssignedBy is the acting operator.
type Request struct {
	FacilityID       int64      `json:"facility_id"`
	DrugID           int64      `json:"drug_id"`
	BatchNo          string     `json:"batch_no"`
	QuantityAssigned int64      `json:"quantity_assigned"`
	ExpiryDate       *time.Time `json:"expiry_date,omitempty"`
	AssignedBy       *string    `json:"assigned_by,omitempty"`
}
