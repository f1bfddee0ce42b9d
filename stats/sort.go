package stats

import (
	"fmt"
	"sort"
	"strings"
)

type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

func (d Direction) Flip() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "asc", "":
		return Ascending, nil
	case "desc":
		return Descending, nil
	}
	return 0, fmt.Errorf("unknown sort order %q", s)
}

// SortField is a column value. Numeric fields compare as arbitrary-precision decimals.
type SortField struct {
	Text    string
	Numeric bool
}

type Sortable interface {
	SortField(key string) SortField
}

func compareFields(a, b SortField) int {
	if a.Numeric && b.Numeric {
		return ParseRawAmount(a.Text).Cmp(ParseRawAmount(b.Text))
	}
	return strings.Compare(a.Text, b.Text)
}

// SortBy returns a sorted copy of rows. Descending order is the exact reverse of
// the stable ascending order.
func SortBy[T Sortable](rows []T, key string, dir Direction) []T {
	out := make([]T, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return compareFields(out[i].SortField(key), out[j].SortField(key)) < 0
	})
	if dir == Descending {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// Sorter remembers the last sort key. Sorting again by the same key flips the
// direction; a new key starts over at the default direction.
type Sorter struct {
	key       string
	dir       Direction
	defaultTo Direction
}

func NewSorter(defaultTo Direction) *Sorter {
	return &Sorter{dir: defaultTo, defaultTo: defaultTo}
}

// RestoreSorter rebuilds a sorter from a previously reported state.
func RestoreSorter(defaultTo Direction, key string, dir Direction) *Sorter {
	return &Sorter{key: key, dir: dir, defaultTo: defaultTo}
}

func (s *Sorter) Key() string          { return s.key }
func (s *Sorter) Direction() Direction { return s.dir }

// Toggle records a sort request for key and returns the direction to use.
func (s *Sorter) Toggle(key string) Direction {
	if key == s.key {
		s.dir = s.dir.Flip()
	} else {
		s.key = key
		s.dir = s.defaultTo
	}
	return s.dir
}

func SortWith[T Sortable](s *Sorter, rows []T, key string) []T {
	return SortBy(rows, key, s.Toggle(key))
}
