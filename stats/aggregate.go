package stats

import (
	"sort"

	"github.com/shopspring/decimal"
)

type CountSplit struct {
	Total     int `json:"total"`
	Team      int `json:"team"`
	Community int `json:"community"`
}

func (s *CountSplit) add(c ActorClass, n int) {
	s.Total += n
	if c == Team {
		s.Team += n
	} else {
		s.Community += n
	}
}

func (s CountSplit) Plus(o CountSplit) CountSplit {
	return CountSplit{s.Total + o.Total, s.Team + o.Team, s.Community + o.Community}
}

// ValueSplit holds USD sums. Values keep full precision and marshal as decimal strings.
type ValueSplit struct {
	Total     decimal.Decimal `json:"total"`
	Team      decimal.Decimal `json:"team"`
	Community decimal.Decimal `json:"community"`
}

func (s *ValueSplit) add(c ActorClass, v decimal.Decimal) {
	s.Total = s.Total.Add(v)
	if c == Team {
		s.Team = s.Team.Add(v)
	} else {
		s.Community = s.Community.Add(v)
	}
}

func (s ValueSplit) Plus(o ValueSplit) ValueSplit {
	return ValueSplit{s.Total.Add(o.Total), s.Team.Add(o.Team), s.Community.Add(o.Community)}
}

func plusOptional(a, b *ValueSplit) *ValueSplit {
	switch {
	case a == nil && b == nil:
		return nil
	case a == nil:
		v := *b
		return &v
	case b == nil:
		v := *a
		return &v
	}
	v := a.Plus(*b)
	return &v
}

// Aggregate is one bucket of liquidation statistics. Daily buckets carry a date,
// weekly buckets a "<start> ~ <end>" label. Profit splits are nil for sources
// that do not report profit.
type Aggregate struct {
	Date             string      `json:"date"`
	Count            CountSplit  `json:"count"`
	LiquidationValue ValueSplit  `json:"liquidationValue"`
	LiquidatorProfit *ValueSplit `json:"liquidatorProfit,omitempty"`
	ProtocolProfit   *ValueSplit `json:"protocolProfit,omitempty"`
	ForceCloseCount  CountSplit  `json:"forceCloseCount"`
	ForceCloseValue  ValueSplit  `json:"forceCloseValue"`
}

// Plus sums every field of a and o. The date is left to the caller.
func (a Aggregate) Plus(o Aggregate) Aggregate {
	return Aggregate{
		Date:             a.Date,
		Count:            a.Count.Plus(o.Count),
		LiquidationValue: a.LiquidationValue.Plus(o.LiquidationValue),
		LiquidatorProfit: plusOptional(a.LiquidatorProfit, o.LiquidatorProfit),
		ProtocolProfit:   plusOptional(a.ProtocolProfit, o.ProtocolProfit),
		ForceCloseCount:  a.ForceCloseCount.Plus(o.ForceCloseCount),
		ForceCloseValue:  a.ForceCloseValue.Plus(o.ForceCloseValue),
	}
}

func (a *Aggregate) add(r Record, cls Class, v Valuation) {
	value := v.Value(r.Assets)
	a.Count.add(cls.Actor, 1)
	a.LiquidationValue.add(cls.Actor, value)
	if r.Source.HasProfit() {
		if a.LiquidatorProfit == nil {
			a.LiquidatorProfit = &ValueSplit{}
		}
		if a.ProtocolProfit == nil {
			a.ProtocolProfit = &ValueSplit{}
		}
		a.LiquidatorProfit.add(cls.Actor, v.Value(r.LiquidatorProfit))
		a.ProtocolProfit.add(cls.Actor, v.Value(r.ProtocolProfit))
	}
	if cls.ForceClose {
		a.ForceCloseCount.add(cls.Actor, 1)
		a.ForceCloseValue.add(cls.Actor, value)
	}
}

// AggregateDaily buckets records by UTC day and returns one Aggregate per day in
// ascending date order. Malformed records and the sentinel bucket are dropped.
func AggregateDaily(records []Record, c *Classifier, v Valuation) []Aggregate {
	byDate := make(map[string]*Aggregate)
	for _, r := range records {
		if !r.Valid() {
			continue
		}
		key := r.Time.BucketKey()
		if key == SentinelBucket {
			continue
		}
		agg, ok := byDate[key]
		if !ok {
			agg = &Aggregate{Date: key}
			byDate[key] = agg
		}
		agg.add(r, c.Classify(r), v)
	}
	res := make([]Aggregate, 0, len(byDate))
	for _, agg := range byDate {
		res = append(res, *agg)
	}
	SortByDate(res)
	return res
}

// SortByDate orders aggregates by their zero-padded date string.
func SortByDate(aggs []Aggregate) {
	sort.SliceStable(aggs, func(i, j int) bool {
		return aggs[i].Date < aggs[j].Date
	})
}
