package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatsResponse los tres totales derivados de un alcance (bodega u organización).
type StatsResponse struct {
	TotalSold    decimal.Decimal `json:"total_sold"`
	TotalInStock decimal.Decimal `json:"total_in_stock"`
	TotalItems   int             `json:"total_items"`
	ComputedAt   time.Time       `json:"computed_at"`
	Stale        bool            `json:"stale,omitempty"` // hay un recálculo en curso
}
