package dto

import (
	"time"

	"github.com/usa-trezo/en-us/internal/app/services/render"
	"github.com/usa-trezo/en-us/internal/app/services/state"
)

const MessageTypeTicker = "ticker"

type TickerEntry struct {
	ID                       string   `json:"id"`
	Symbol                   string   `json:"symbol"`
	Price                    string   `json:"price"`
	Change                   string   `json:"change"`
	Tone                     string   `json:"tone"`
	CurrentPrice             float64  `json:"current_price"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h"`
}

type TickerResponse struct {
	Version   uint64        `json:"version"`
	Loading   bool          `json:"loading"`
	UpdatedAt *time.Time    `json:"updated_at"`
	Entries   []TickerEntry `json:"entries"`
}

// TickerMessage is pushed to websocket clients; HTML replaces the #ticker element.
type TickerMessage struct {
	Type    string `json:"type"`
	Version uint64 `json:"version"`
	Loading bool   `json:"loading"`
	HTML    string `json:"html"`
}

// NewTickerResponse pairs the raw entries with their rendered form. Both
// views must come from the same state read.
func NewTickerResponse(raw state.View, view render.View) TickerResponse {
	resp := TickerResponse{
		Version: raw.Version,
		Loading: raw.Loading,
		Entries: make([]TickerEntry, 0, len(raw.Entries)),
	}
	if !raw.Loading {
		at := raw.UpdatedAt.UTC()
		resp.UpdatedAt = &at
	}
	for i, e := range raw.Entries {
		item := view.Items[i]
		resp.Entries = append(resp.Entries, TickerEntry{
			ID:                       e.ID,
			Symbol:                   item.Symbol,
			Price:                    item.Price,
			Change:                   item.Change,
			Tone:                     string(item.Tone),
			CurrentPrice:             e.CurrentPrice,
			PriceChangePercentage24h: e.PriceChangePercentage24h,
		})
	}
	return resp
}
