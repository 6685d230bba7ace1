package models

import (
	"fmt"
	"time"
)

// MarketEntry is one asset row of the upstream markets listing.
type MarketEntry struct {
	ID                       string   `json:"id"`
	Symbol                   string   `json:"symbol"`
	CurrentPrice             float64  `json:"current_price"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h"`
}

func (m *MarketEntry) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("id is required")
	}
	if m.Symbol == "" {
		return fmt.Errorf("symbol is required for %s", m.ID)
	}
	if m.CurrentPrice < 0 {
		return fmt.Errorf("negative current_price %v for %s", m.CurrentPrice, m.ID)
	}
	return nil
}

// Snapshot is the result of one successful refresh. Seq is the issue order of
// the refresh that produced it, not the order in which it resolved.
type Snapshot struct {
	Seq       uint64
	Entries   []MarketEntry
	FetchedAt time.Time
}

// Change is a convenience for building entries with a known 24h change.
func Change(v float64) *float64 {
	return &v
}
