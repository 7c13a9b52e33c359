package facility

import "time"

// Facility is an allocation destination. The allocation engine treats these
// rows as read-only; management happens through this package's CRUD surface.
type Facility struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Location  string    `db:"location" json:"location"`
	Contact   string    `db:"contact" json:"contact"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
