package schema

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/b-harvest/liquidation-dashboard-backend/stats"
)

// DomainStatsCache is the output of one aggregation pass over a source. Each
// pass replaces the previous one.
type DomainStatsCache struct {
	Domain       stats.Source           `json:"domain"`
	RunID        string                 `json:"runId"`
	HasProfit    bool                   `json:"hasProfit"`
	Daily        []stats.Aggregate      `json:"daily"`
	Weekly       []stats.Aggregate      `json:"weekly"`
	Liquidations []stats.LiquidationRow `json:"liquidations"`
	NumRecords   int                    `json:"numRecords"`
	NumMalformed int                    `json:"numMalformed"`
	// PricesUnavailable is set when valuations fell back to zero.
	PricesUnavailable bool      `json:"pricesUnavailable"`
	UpstreamError     string    `json:"upstreamError,omitempty"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type RankingCache struct {
	Board     string                                 `json:"board"`
	TokenID   string                                 `json:"tokenId,omitempty"`
	Ranks     []stats.AccountSeries[int]             `json:"ranks"`
	Balances  []stats.AccountSeries[decimal.Decimal] `json:"balances"`
	UpdatedAt time.Time                              `json:"updatedAt"`
}
