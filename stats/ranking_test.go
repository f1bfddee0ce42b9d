package stats

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestBuildRankSeries(t *testing.T) {
	periods := []Period[int]{
		{Time: 100, Entries: []Entry[int]{{"carol", 1}, {"alice", 2}}},
		{Time: 200, Entries: []Entry[int]{{"alice", 1}, {"bob", 2}}},
		{Time: 300, Entries: nil},
	}
	series := BuildRankSeries(periods)
	require.Len(t, series, 3)
	require.Equal(t, "alice", series[0].AccountID)
	require.Equal(t, "bob", series[1].AccountID)
	require.Equal(t, "carol", series[2].AccountID)
	for _, s := range series {
		require.Len(t, s.Points, len(periods))
		for k, pt := range s.Points {
			require.Equal(t, periods[k].Time, pt.Time)
		}
	}
	require.Equal(t, 2, *series[0].Points[0].Value)
	require.Equal(t, 1, *series[0].Points[1].Value)
	require.Nil(t, series[0].Points[2].Value)
	require.Nil(t, series[1].Points[0].Value)
	require.Nil(t, series[2].Points[1].Value)
}

func TestBuildSeries_OrderIndependent(t *testing.T) {
	a := BuildRankSeries([]Period[int]{{Time: 1, Entries: []Entry[int]{{"x", 1}, {"y", 2}}}})
	b := BuildRankSeries([]Period[int]{{Time: 1, Entries: []Entry[int]{{"y", 2}, {"x", 1}}}})
	require.Equal(t, a, b)
}

func TestBuildBalanceSeries_ZeroIsNotAbsent(t *testing.T) {
	series := BuildBalanceSeries([]Period[decimal.Decimal]{
		{Time: 1, Entries: []Entry[decimal.Decimal]{{"x", decimal.Zero}}},
		{Time: 2, Entries: []Entry[decimal.Decimal]{{"y", decimal.NewFromInt(5)}}},
	})
	require.Len(t, series, 2)
	require.NotNil(t, series[0].Points[0].Value)
	require.True(t, series[0].Points[0].Value.IsZero())
	require.Nil(t, series[0].Points[1].Value)
}
