package stats

import "fmt"

// Source identifies an upstream liquidation log.
type Source string

const (
	MainRegular Source = "main-regular"
	MainMargin  Source = "main-margin"
	MemeRegular Source = "meme-regular"
	MemeMargin  Source = "meme-margin"
)

// Sources returns every known source.
func Sources() []Source {
	return []Source{MainRegular, MainMargin, MemeRegular, MemeMargin}
}

// ParseSource converts a configured source name, rejecting unknown ones.
func ParseSource(s string) (Source, error) {
	src := Source(s)
	if !src.Valid() {
		return "", fmt.Errorf("unknown source %q", s)
	}
	return src, nil
}

// Valid reports whether s is one of the known sources.
func (s Source) Valid() bool {
	switch s {
	case MainRegular, MainMargin, MemeRegular, MemeMargin:
		return true
	}
	return false
}

// ForceCloseTag is the type tag a source uses for forced closes.
func (s Source) ForceCloseTag() string {
	switch s {
	case MemeRegular, MemeMargin:
		return "force_close"
	default:
		return "ForceClose"
	}
}

// HasProfit reports whether the source carries liquidator and protocol profit.
func (s Source) HasProfit() bool {
	return s == MainMargin || s == MemeMargin
}

// Asset is a raw amount of one token.
type Asset struct {
	TokenID string `json:"tokenId"`
	Amount  string `json:"amount"`
}

// Record is a liquidation log entry after source-specific adaptation.
type Record struct {
	Source           Source
	Account          string
	Actor            string
	Time             Timestamp
	Kind             string
	Assets           []Asset
	LiquidatorProfit []Asset
	ProtocolProfit   []Asset
}

// TokenIDs returns the distinct token ids referenced by the record.
func (r Record) TokenIDs() []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, as := range [][]Asset{r.Assets, r.LiquidatorProfit, r.ProtocolProfit} {
		for _, a := range as {
			if _, ok := seen[a.TokenID]; ok {
				continue
			}
			seen[a.TokenID] = struct{}{}
			ids = append(ids, a.TokenID)
		}
	}
	return ids
}

// Valid reports whether every asset names a token.
func (r Record) Valid() bool {
	for _, as := range [][]Asset{r.Assets, r.LiquidatorProfit, r.ProtocolProfit} {
		for _, a := range as {
			if a.TokenID == "" {
				return false
			}
		}
	}
	return true
}

// CollectTokenIDs returns the distinct token ids referenced by records, in first-seen order.
func CollectTokenIDs(records []Record) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, r := range records {
		for _, id := range r.TokenIDs() {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}
