package stats

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBucketKey(t *testing.T) {
	for i, tc := range []struct {
		ts       int64
		unit     Unit
		expected string
	}{
		{1700000000, Seconds, "2023-11-14"},
		{1700000000123456789, Nanoseconds, "2023-11-14"},
		{1699920000, Seconds, "2023-11-14"},
		{1699919999, Seconds, "2023-11-13"},
		{0, Seconds, SentinelBucket},
		{-5, Nanoseconds, SentinelBucket},
	} {
		require.Equalf(t, tc.expected, BucketKey(tc.ts, tc.unit), "tc #%d", i)
	}
}

func TestBucketKey_UnitsAgree(t *testing.T) {
	secs := int64(1704067199)
	require.Equal(t, BucketKey(secs, Seconds), BucketKey(secs*1_000_000_000+999_999_999, Nanoseconds))
}

func TestTimestamp_Invalid(t *testing.T) {
	var ts Timestamp
	require.Equal(t, SentinelBucket, ts.BucketKey())
	require.Zero(t, ts.Unix())
}
