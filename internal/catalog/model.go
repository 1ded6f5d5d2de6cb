package catalog

import "time"

type Trip struct {
	ID           int       `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Destination  string    `db:"destination" json:"destination"`
	Description  string    `db:"description" json:"description"`
	Price        int64     `db:"price" json:"price"`
	DurationDays int       `db:"duration_days" json:"duration_days"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type Travel struct {
	ID          int       `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Origin      string    `db:"origin" json:"origin"`
	Destination string    `db:"destination" json:"destination"`
	Price       int64     `db:"price" json:"price"`
	Seats       int       `db:"seats" json:"seats"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Snapshot is the read-side view the booking engines work against. Price is
// the unit price at resolution time; callers freeze it into their own rows.
type Snapshot struct {
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Active    bool   `json:"active"`
}
