package drug

import "time"

// Batch maps to a row of the drugs table: one purchased lot of a drug with
// its own quantity and expiry. Quantity is decremented only by the
// allocation engine and incremented by restocks; it never goes negative.
type Batch struct {
	ID         int64      `db:"id" json:"id"`
	Name       string     `db:"name" json:"name"`
	Strength   string     `db:"strength" json:"strength"`
	BatchLabel string     `db:"batch_id" json:"batch_id"`
	Quantity   int64      `db:"quantity" json:"quantity"`
	ExpiryDate *time.Time `db:"expiry_date" json:"expiry_date,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// Eligible reports whether the batch may be offered for new allocations at
// the given reference time. Expired batches stay in the table untouched;
// they just stop appearing in selection lists.
func (b *Batch) Eligible(ref time.Time) bool {
	return b.ExpiryDate == nil || b.ExpiryDate.After(ref)
}

// Aggregate is a read-time projection: the summed available quantity of all
// eligible batches sharing a drug name. It is never a source of truth for
// mutation. Strength is taken from the first batch encountered; callers must
// not rely on which one when same-name batches differ in strength.
type Aggregate struct {
	Name     string `json:"name"`
	Strength string `json:"strength"`
	TotalQty int64  `json:"total_qty"`
}
