package stats

import "time"

// SentinelBucket collects records without a usable timestamp. It never reaches output.
const SentinelBucket = "-"

const DateLayout = "2006-01-02"

type Unit int

const (
	Seconds Unit = iota
	Nanoseconds
)

// Timestamp is a raw timestamp tagged with its unit at ingestion.
type Timestamp struct {
	Value int64
	Unit  Unit
	Valid bool
}

func NewTimestamp(v int64, unit Unit) Timestamp {
	return Timestamp{Value: v, Unit: unit, Valid: v > 0}
}

// Time converts the timestamp to UTC. Nanoseconds are truncated to milliseconds first.
func (t Timestamp) Time() (time.Time, bool) {
	if !t.Valid || t.Value <= 0 {
		return time.Time{}, false
	}
	switch t.Unit {
	case Seconds:
		return time.Unix(t.Value, 0).UTC(), true
	case Nanoseconds:
		return time.UnixMilli(t.Value / 1_000_000).UTC(), true
	}
	return time.Time{}, false
}

// Unix returns the timestamp in seconds, or 0 if it is not valid.
func (t Timestamp) Unix() int64 {
	tm, ok := t.Time()
	if !ok {
		return 0
	}
	return tm.Unix()
}

func (t Timestamp) BucketKey() string {
	tm, ok := t.Time()
	if !ok {
		return SentinelBucket
	}
	return tm.Format(DateLayout)
}

// BucketKey returns the UTC calendar day of ts as "YYYY-MM-DD".
func BucketKey(ts int64, unit Unit) string {
	return NewTimestamp(ts, unit).BucketKey()
}
