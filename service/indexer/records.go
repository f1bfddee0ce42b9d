package indexer

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/b-harvest/liquidation-dashboard-backend/stats"
)

var ErrMalformedRecord = errors.New("malformed record")

// MainRegularLog is a liquidation from the main lending market.
type MainRegularLog struct {
	AccountID            string `json:"account_id"`
	LiquidationAccountID string `json:"liquidation_account_id"`
	CreatedAt            Int64  `json:"createdAt"`
	LiquidatedAssets     Assets `json:"LiquidatedAssets"`
	LiquidationType      string `json:"liquidation_type"`
}

func (l MainRegularLog) Record() (stats.Record, error) {
	return checked(stats.Record{
		Source:  stats.MainRegular,
		Account: l.LiquidationAccountID,
		Actor:   l.AccountID,
		Time:    timestamp(l.CreatedAt, stats.Seconds),
		Kind:    l.LiquidationType,
		Assets:  l.LiquidatedAssets,
	})
}

// MainMarginLog is a margin position liquidation from the main market.
type MainMarginLog struct {
	AccountID            string `json:"account_id"`
	LiquidationAccountID string `json:"liquidation_account_id"`
	BlockTimestamp       Int64  `json:"block_timestamp"`
	LiquidatedAssets     Assets `json:"LiquidatedAssets"`
	LiquidatorProfit     Assets `json:"liquidator_profit"`
	ProtocolProfit       Assets `json:"protocol_profit"`
	LiquidationType      string `json:"liquidation_type"`
}

func (l MainMarginLog) Record() (stats.Record, error) {
	return checked(stats.Record{
		Source:           stats.MainMargin,
		Account:          l.AccountID,
		Actor:            l.LiquidationAccountID,
		Time:             timestamp(l.BlockTimestamp, stats.Seconds),
		Kind:             l.LiquidationType,
		Assets:           l.LiquidatedAssets,
		LiquidatorProfit: l.LiquidatorProfit,
		ProtocolProfit:   l.ProtocolProfit,
	})
}

// MemeRegularLog is a liquidation from the meme market. Timestamps are in nanoseconds.
type MemeRegularLog struct {
	AccountID        string `json:"account_id"`
	LiquidatorID     string `json:"liquidator_id"`
	Timestamp        Int64  `json:"timestamp"`
	LiquidatedAssets Assets `json:"LiquidatedAssets"`
	LiquidationType  string `json:"liquidation_type"`
}

func (l MemeRegularLog) Record() (stats.Record, error) {
	return checked(stats.Record{
		Source:  stats.MemeRegular,
		Account: l.AccountID,
		Actor:   l.LiquidatorID,
		Time:    timestamp(l.Timestamp, stats.Nanoseconds),
		Kind:    l.LiquidationType,
		Assets:  l.LiquidatedAssets,
	})
}

// MemeMarginLog is a margin position liquidation from the meme market.
type MemeMarginLog struct {
	AccountID        string `json:"account_id"`
	LiquidatorID     string `json:"liquidator_id"`
	BlockTimestamp   Int64  `json:"block_timestamp"`
	Debt             Assets `json:"debt"`
	LiquidatorProfit Assets `json:"liquidator_profit"`
	ProtocolProfit   Assets `json:"protocol_profit"`
	PosType          string `json:"pos_type"`
}

func (l MemeMarginLog) Record() (stats.Record, error) {
	return checked(stats.Record{
		Source:           stats.MemeMargin,
		Account:          l.AccountID,
		Actor:            l.LiquidatorID,
		Time:             timestamp(l.BlockTimestamp, stats.Nanoseconds),
		Kind:             l.PosType,
		Assets:           l.Debt,
		LiquidatorProfit: l.LiquidatorProfit,
		ProtocolProfit:   l.ProtocolProfit,
	})
}

type recordAdapter interface {
	Record() (stats.Record, error)
}

func timestamp(v Int64, unit stats.Unit) stats.Timestamp {
	if !v.Valid {
		return stats.Timestamp{Unit: unit}
	}
	return stats.NewTimestamp(v.Value, unit)
}

func checked(r stats.Record) (stats.Record, error) {
	if !r.Valid() {
		return r, fmt.Errorf("%w: asset without token id", ErrMalformedRecord)
	}
	return r, nil
}

// AdaptRecords decodes a source's payload and adapts every entry. Entries that
// fail to decode or name no token are skipped and counted as malformed; entries
// without a usable timestamp are kept and counted.
func AdaptRecords(src stats.Source, payload []byte) (records []stats.Record, malformed int, err error) {
	switch src {
	case stats.MainRegular:
		return adapt[MainRegularLog](payload)
	case stats.MainMargin:
		return adapt[MainMarginLog](payload)
	case stats.MemeRegular:
		return adapt[MemeRegularLog](payload)
	case stats.MemeMargin:
		return adapt[MemeMarginLog](payload)
	}
	return nil, 0, fmt.Errorf("unknown source %q", src)
}

func adapt[T recordAdapter](payload []byte) ([]stats.Record, int, error) {
	var raws []jsoniter.RawMessage
	if err := decodeList(payload, &raws); err != nil {
		return nil, 0, fmt.Errorf("decode records: %w", err)
	}
	records := make([]stats.Record, 0, len(raws))
	malformed := 0
	for _, raw := range raws {
		var l T
		if err := json.Unmarshal(raw, &l); err != nil {
			malformed++
			continue
		}
		r, err := l.Record()
		if err != nil {
			malformed++
			continue
		}
		if !r.Time.Valid {
			malformed++
		}
		records = append(records, r)
	}
	return records, malformed, nil
}
