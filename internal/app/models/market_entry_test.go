package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketEntryDecodesNullChange(t *testing.T) {
	var entries []MarketEntry
	payload := `[
		{"id":"bitcoin","symbol":"btc","current_price":65000.5,"price_change_percentage_24h":1.23,"market_cap":1},
		{"id":"wrapped-steth","symbol":"wsteth","current_price":3500,"price_change_percentage_24h":null}
	]`
	require.NoError(t, json.Unmarshal([]byte(payload), &entries))

	require.Len(t, entries, 2)
	require.NotNil(t, entries[0].PriceChangePercentage24h)
	assert.Equal(t, 1.23, *entries[0].PriceChangePercentage24h)
	assert.Nil(t, entries[1].PriceChangePercentage24h)
}

func TestMarketEntryValidate(t *testing.T) {
	tests := []struct {
		name  string
		entry MarketEntry
		ok    bool
	}{
		{"valid", MarketEntry{ID: "bitcoin", Symbol: "btc", CurrentPrice: 1}, true},
		{"zero price", MarketEntry{ID: "dust", Symbol: "dst"}, true},
		{"missing id", MarketEntry{Symbol: "btc", CurrentPrice: 1}, false},
		{"missing symbol", MarketEntry{ID: "bitcoin", CurrentPrice: 1}, false},
		{"negative price", MarketEntry{ID: "bitcoin", Symbol: "btc", CurrentPrice: -1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
