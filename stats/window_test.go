package stats

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func daysWithCounts(counts ...int) []Aggregate {
	var days []Aggregate
	for i, c := range counts {
		days = append(days, Aggregate{
			Date:  fmt.Sprintf("2024-01-%02d", i+1),
			Count: CountSplit{Total: c, Community: c},
		})
	}
	return days
}

func TestRollToWeeks(t *testing.T) {
	weeks := RollToWeeks(daysWithCounts(1, 1, 1, 1, 1, 1, 1, 2, 2, 2), WeekSize)
	require.Len(t, weeks, 2)
	require.Equal(t, 7, weeks[0].Count.Total)
	require.Equal(t, 6, weeks[1].Count.Total)
	require.Equal(t, "2024-01-01 ~ 2024-01-07", weeks[0].Date)
	require.Equal(t, "2024-01-08 ~ 2024-01-10", weeks[1].Date)
}

func TestRollToWeeks_PreservesMass(t *testing.T) {
	for n := 1; n <= 30; n++ {
		counts := make([]int, n)
		sum := 0
		for i := range counts {
			counts[i] = i*3 + 1
			sum += counts[i]
		}
		weekSum := 0
		for _, w := range RollToWeeks(daysWithCounts(counts...), WeekSize) {
			weekSum += w.Count.Total
		}
		require.Equal(t, sum, weekSum, "n=%d", n)
	}
}

func TestRollToWeeks_Profit(t *testing.T) {
	days := daysWithCounts(1, 1)
	days[1].LiquidatorProfit = &ValueSplit{}
	weeks := RollToWeeks(days, WeekSize)
	require.Len(t, weeks, 1)
	require.NotNil(t, weeks[0].LiquidatorProfit)
	require.Nil(t, weeks[0].ProtocolProfit)
}

func TestKeepLast(t *testing.T) {
	require.Equal(t, []int{3, 4, 5}, KeepLast([]int{1, 2, 3, 4, 5}, 3))
	require.Equal(t, []int{1, 2}, KeepLast([]int{1, 2}, 7))
	require.Empty(t, KeepLast([]int(nil), 7))
}
