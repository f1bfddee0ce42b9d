package stats

// WeekSize is the number of daily buckets in a weekly bucket.
const WeekSize = 7

// RollToWeeks merges consecutive, non-overlapping chunks of size daily
// aggregates. The last chunk may be shorter. Input must be date-ascending.
func RollToWeeks(days []Aggregate, size int) []Aggregate {
	if size <= 0 {
		size = WeekSize
	}
	var weeks []Aggregate
	for start := 0; start < len(days); start += size {
		end := start + size
		if end > len(days) {
			end = len(days)
		}
		chunk := days[start:end]
		week := Aggregate{}
		for _, d := range chunk {
			week = week.Plus(d)
		}
		week.Date = chunk[0].Date + " ~ " + chunk[len(chunk)-1].Date
		weeks = append(weeks, week)
	}
	return weeks
}

// KeepLast returns the last n elements of xs.
func KeepLast[T any](xs []T, n int) []T {
	if n < 0 || len(xs) <= n {
		return xs
	}
	return xs[len(xs)-n:]
}
