package schema

import (
	"time"

	"github.com/b-harvest/liquidation-dashboard-backend/stats"
)

type StatusResponse struct {
	Domains []DomainStatus `json:"domains"`
}

type DomainStatus struct {
	Domain     stats.Source `json:"domain"`
	Ready      bool         `json:"ready"`
	NumRecords int          `json:"numRecords"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

const (
	BucketDay  = "day"
	BucketWeek = "week"
)

type StatsRequest struct {
	Domain string `param:"domain"`
	Bucket string `query:"bucket"`
}

type StatsResponse struct {
	Domain            stats.Source      `json:"domain"`
	Bucket            string            `json:"bucket"`
	HasProfit         bool              `json:"hasProfit"`
	Aggregates        []stats.Aggregate `json:"aggregates"`
	PricesUnavailable bool              `json:"pricesUnavailable"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

type LiquidationsRequest struct {
	Domain    string `param:"domain"`
	Sort      string `query:"sort"`
	PrevSort  string `query:"prev_sort"`
	PrevOrder string `query:"prev_order"`
	Limit     int    `query:"limit"`
}

type LiquidationsResponse struct {
	Domain    stats.Source           `json:"domain"`
	Sort      string                 `json:"sort"`
	Order     string                 `json:"order"`
	Total     int                    `json:"total"`
	Rows      []stats.LiquidationRow `json:"rows"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

type RankingRequest struct {
	Board string `param:"board"`
}
