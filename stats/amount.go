package stats

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultDecimals is assumed for tokens whose metadata could not be resolved.
const DefaultDecimals = 24

// TokenMetadata describes how a token's raw integer amounts are scaled.
type TokenMetadata struct {
	TokenID  string `json:"tokenId"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

// ParseRawAmount parses a raw fixed-point amount. Empty or malformed input yields zero.
func ParseRawAmount(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Readable shifts a raw amount by -decimals digits without going through float64.
func Readable(raw string, decimals int) decimal.Decimal {
	return ParseRawAmount(raw).Shift(int32(-decimals))
}

// PriceDecimal converts a USD price into a decimal. Non-finite prices count as unknown (zero).
func PriceDecimal(price float64) decimal.Decimal {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(price)
}

// NormalizeDecimal returns the readable amount and its USD value at full precision.
func NormalizeDecimal(raw string, decimals int, price float64) (readable, usdValue decimal.Decimal) {
	readable = Readable(raw, decimals)
	usdValue = readable.Mul(PriceDecimal(price))
	return
}

// Normalize is NormalizeDecimal rounded to float64 for display. An unknown price
// (zero) yields a zero USD value.
func Normalize(raw string, decimals int, price float64) (readable, usdValue float64) {
	r, v := NormalizeDecimal(raw, decimals, price)
	readable, _ = r.Float64()
	usdValue, _ = v.Float64()
	return
}

// Valuation prices asset collections with the metadata and prices resolved for one pass.
type Valuation struct {
	Metadata map[string]TokenMetadata
	Prices   map[string]float64
}

// Decimals returns the token's decimals, falling back to DefaultDecimals.
func (v Valuation) Decimals(tokenID string) int {
	if md, ok := v.Metadata[tokenID]; ok {
		return md.Decimals
	}
	return DefaultDecimals
}

// Value sums the USD value of every asset. The result does not depend on asset order.
func (v Valuation) Value(assets []Asset) decimal.Decimal {
	sum := decimal.Zero
	for _, a := range assets {
		_, usd := NormalizeDecimal(a.Amount, v.Decimals(a.TokenID), v.Prices[a.TokenID])
		sum = sum.Add(usd)
	}
	return sum
}
