package indexer

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/b-harvest/liquidation-dashboard-backend/stats"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var null = []byte("null")

// Int64 accepts a JSON number or a numeric string. Absent, null, empty or
// unparseable values leave Valid false.
type Int64 struct {
	Value int64
	Valid bool
}

func (i *Int64) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, null) {
		*i = Int64{}
		return nil
	}
	s := strings.Trim(string(b), `"`)
	if s == "" {
		*i = Int64{}
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Some indexers emit integral floats such as "1.7e9".
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			*i = Int64{}
			return nil
		}
		v = int64(f)
	}
	*i = Int64{Value: v, Valid: true}
	return nil
}

// Float64 accepts a JSON number or a numeric string.
type Float64 float64

func (f *Float64) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, null) {
		*f = 0
		return nil
	}
	s := strings.Trim(string(b), `"`)
	if s == "" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse float %q: %w", s, err)
	}
	*f = Float64(v)
	return nil
}

// Amount keeps the literal text of a raw amount given as a string or a number.
type Amount string

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, null) {
		*a = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	*a = Amount(b)
	return nil
}

type rawAsset struct {
	TokenID string `json:"token_id"`
	Amount  Amount `json:"amount"`
}

// Assets decodes either a list of {token_id, amount} or a {token_id: amount} object.
type Assets []stats.Asset

func (as *Assets) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, null) || len(b) == 0:
		*as = nil
		return nil
	case b[0] == '[':
		var raw []rawAsset
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		res := make(Assets, 0, len(raw))
		for _, r := range raw {
			res = append(res, stats.Asset{TokenID: r.TokenID, Amount: string(r.Amount)})
		}
		*as = res
		return nil
	case b[0] == '{':
		var raw map[string]Amount
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		res := make(Assets, 0, len(raw))
		for id, amt := range raw {
			res = append(res, stats.Asset{TokenID: id, Amount: string(amt)})
		}
		sort.Slice(res, func(i, j int) bool { return res[i].TokenID < res[j].TokenID })
		*as = res
		return nil
	}
	return fmt.Errorf("unexpected asset collection: %.32s", b)
}

// decodeList decodes a bare JSON array or one wrapped in {"data": [...]}.
func decodeList(b []byte, v interface{}) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var env struct {
			Data jsoniter.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(b, &env); err != nil {
			return err
		}
		if len(env.Data) == 0 {
			return nil
		}
		b = env.Data
	}
	return json.Unmarshal(b, v)
}
