package constants

import "time"

const (
	DefaultMarketsURL = "https://api.coingecko.com/api/v3/coins/markets"

	// Query sent with every markets request.
	VsCurrency = "usd"
	Order      = "market_cap_desc"
	PerPage    = 10
	Sparkline  = "false"

	// MaxEntries bounds every snapshot regardless of what the upstream returns.
	MaxEntries = PerPage

	DefaultRefreshInterval = 30 * time.Second

	SnapshotCacheKey = "price_ticker:markets:usd:top10"

	UserAgent = "trezor-suite-ticker/1.0"
)
