package stats

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Sort keys of LiquidationRow.
const (
	SortKeyTime       = "time"
	SortKeyValue      = "value"
	SortKeyAccount    = "account"
	SortKeyLiquidator = "liquidator"
	SortKeyKind       = "kind"
)

var LiquidationSortKeys = []string{SortKeyTime, SortKeyValue, SortKeyAccount, SortKeyLiquidator, SortKeyKind}

type AssetValue struct {
	TokenID  string          `json:"tokenId"`
	Symbol   string          `json:"symbol"`
	Amount   decimal.Decimal `json:"amount"`
	USDValue decimal.Decimal `json:"usdValue"`
}

// LiquidationRow is one record as shown in a liquidation table.
type LiquidationRow struct {
	Source     Source          `json:"source"`
	Account    string          `json:"account"`
	Liquidator string          `json:"liquidator"`
	Timestamp  int64           `json:"timestamp"`
	Date       string          `json:"date"`
	Kind       string          `json:"kind"`
	Team       bool            `json:"team"`
	ForceClose bool            `json:"forceClose"`
	Value      decimal.Decimal `json:"value"`
	Assets     []AssetValue    `json:"assets"`
}

func (r LiquidationRow) SortField(key string) SortField {
	switch key {
	case SortKeyTime:
		return SortField{Text: strconv.FormatInt(r.Timestamp, 10), Numeric: true}
	case SortKeyValue:
		return SortField{Text: r.Value.String(), Numeric: true}
	case SortKeyAccount:
		return SortField{Text: r.Account}
	case SortKeyLiquidator:
		return SortField{Text: r.Liquidator}
	case SortKeyKind:
		return SortField{Text: r.Kind}
	}
	return SortField{}
}

// Rows converts records into table rows in input order. Malformed records and
// records without a timestamp are skipped.
func Rows(records []Record, c *Classifier, v Valuation) []LiquidationRow {
	rows := make([]LiquidationRow, 0, len(records))
	for _, r := range records {
		if !r.Valid() || r.Time.BucketKey() == SentinelBucket {
			continue
		}
		cls := c.Classify(r)
		row := LiquidationRow{
			Source:     r.Source,
			Account:    r.Account,
			Liquidator: r.Actor,
			Timestamp:  r.Time.Unix(),
			Date:       r.Time.BucketKey(),
			Kind:       r.Kind,
			Team:       cls.Actor == Team,
			ForceClose: cls.ForceClose,
			Value:      decimal.Zero,
		}
		for _, a := range r.Assets {
			amount, usd := NormalizeDecimal(a.Amount, v.Decimals(a.TokenID), v.Prices[a.TokenID])
			sym := a.TokenID
			if md, ok := v.Metadata[a.TokenID]; ok && md.Symbol != "" {
				sym = md.Symbol
			}
			row.Assets = append(row.Assets, AssetValue{
				TokenID:  a.TokenID,
				Symbol:   sym,
				Amount:   amount,
				USDValue: usd,
			})
			row.Value = row.Value.Add(usd)
		}
		rows = append(rows, row)
	}
	return rows
}
