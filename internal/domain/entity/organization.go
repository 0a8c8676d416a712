package entity

import "time"

// Organization agrupa bodegas y usuarios bajo una misma cuenta (multi-tenant).
type Organization struct {
	ID          string
	Name        string
	Description string
	OwnerID     string // UserID del creador
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
