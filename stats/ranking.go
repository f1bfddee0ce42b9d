package stats

import (
	"sort"

	"github.com/shopspring/decimal"
)

type Entry[T any] struct {
	AccountID string
	Metric    T
}

// Period is one ranking snapshot. Time is in seconds.
type Period[T any] struct {
	Time    int64
	Entries []Entry[T]
}

// Point is one sample of a series. A nil Value marks an account absent from that period.
type Point[T any] struct {
	Time  int64 `json:"time"`
	Value *T    `json:"value"`
}

type AccountSeries[T any] struct {
	AccountID string     `json:"accountId"`
	Points    []Point[T] `json:"points"`
}

// BuildSeries turns time-ordered snapshots into one series per account. Every
// series has one point per period. Series are ordered by account id. If an
// account appears twice in a period, the first entry wins.
func BuildSeries[T any](periods []Period[T]) []AccountSeries[T] {
	accounts := make(map[string]struct{})
	for _, p := range periods {
		for _, e := range p.Entries {
			accounts[e.AccountID] = struct{}{}
		}
	}
	ids := make([]string, 0, len(accounts))
	for id := range accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	index := make(map[string]int, len(ids))
	series := make([]AccountSeries[T], len(ids))
	for i, id := range ids {
		index[id] = i
		series[i] = AccountSeries[T]{AccountID: id, Points: make([]Point[T], len(periods))}
	}
	for k, p := range periods {
		for i := range series {
			series[i].Points[k].Time = p.Time
		}
		for _, e := range p.Entries {
			pt := &series[index[e.AccountID]].Points[k]
			if pt.Value != nil {
				continue
			}
			m := e.Metric
			pt.Value = &m
		}
	}
	return series
}

// BuildRankSeries builds position series; lower ranks are better.
func BuildRankSeries(periods []Period[int]) []AccountSeries[int] {
	return BuildSeries(periods)
}

// BuildBalanceSeries builds holdings series.
func BuildBalanceSeries(periods []Period[decimal.Decimal]) []AccountSeries[decimal.Decimal] {
	return BuildSeries(periods)
}
