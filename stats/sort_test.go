package stats

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testRows() []LiquidationRow {
	return []LiquidationRow{
		{Account: "a", Timestamp: 3, Value: decimal.RequireFromString("9007199254740993")},
		{Account: "b", Timestamp: 1, Value: decimal.RequireFromString("9007199254740992")},
		{Account: "c", Timestamp: 2, Value: decimal.RequireFromString("9007199254740993")},
		{Account: "d", Timestamp: 2, Value: decimal.RequireFromString("0.5")},
	}
}

func accounts(rows []LiquidationRow) []string {
	var res []string
	for _, r := range rows {
		res = append(res, r.Account)
	}
	return res
}

func TestSortBy_PreciseNumbers(t *testing.T) {
	sorted := SortBy(testRows(), SortKeyValue, Ascending)
	require.Equal(t, []string{"d", "b", "a", "c"}, accounts(sorted))
}

func TestSortBy_DescendingIsReverse(t *testing.T) {
	asc := accounts(SortBy(testRows(), SortKeyTime, Ascending))
	desc := accounts(SortBy(testRows(), SortKeyTime, Descending))
	require.Equal(t, []string{"b", "c", "d", "a"}, asc)
	require.Equal(t, []string{"a", "d", "c", "b"}, desc)
}

func TestSorter_Toggle(t *testing.T) {
	s := NewSorter(Descending)
	rows := testRows()

	first := SortWith(s, rows, SortKeyTime)
	require.Equal(t, []string{"a", "d", "c", "b"}, accounts(first))
	require.Equal(t, Descending, s.Direction())

	second := SortWith(s, rows, SortKeyTime)
	require.Equal(t, []string{"b", "c", "d", "a"}, accounts(second))
	require.Equal(t, Ascending, s.Direction())

	third := SortWith(s, rows, SortKeyAccount)
	require.Equal(t, []string{"d", "c", "b", "a"}, accounts(third))
	require.Equal(t, SortKeyAccount, s.Key())
	require.Equal(t, Descending, s.Direction())

	require.Equal(t, []string{"a", "b", "c", "d"}, accounts(rows))
}

func TestRestoreSorter(t *testing.T) {
	s := RestoreSorter(Descending, SortKeyValue, Descending)
	require.Equal(t, Ascending, s.Toggle(SortKeyValue))
}

func TestRows(t *testing.T) {
	v := testValuation()
	rows := Rows([]Record{
		{Source: MainRegular, Account: "acc", Actor: "bot", Kind: "ForceClose",
			Time: NewTimestamp(1700000000, Seconds), Assets: []Asset{{"usdt", "2000000000000000000000000"}}},
		{Source: MainRegular, Account: "nots", Time: Timestamp{}, Assets: []Asset{{"usdt", "1"}}},
	}, NewClassifier([]string{"bot"}), v)
	require.Len(t, rows, 1)
	require.True(t, rows[0].Team)
	require.True(t, rows[0].ForceClose)
	require.Equal(t, "2023-11-14", rows[0].Date)
	require.Equal(t, "USDT", rows[0].Assets[0].Symbol)
	requireDecimal(t, "2", rows[0].Value)
}
