package model

import (
	"math"
	"sort"
)

var typeRank = map[EventKind]int{
	KindTiming:       0,
	KindTap:          1,
	KindHold:         2,
	KindArc:          3,
	KindCamera:       4,
	KindSceneControl: 5,
}

func rank(e Event) int {
	if r, ok := typeRank[e.Kind()]; ok {
		return r
	}
	return math.MaxInt32
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareLane(a, b Lane) int {
	if a.Fractional() && b.Fractional() {
		return cmpFloat(*a.TrackF, *b.TrackF)
	}
	return cmpInt(a.Track, b.Track)
}

// Compare orders by timing, then by a key that depends on the variant:
// end timing for arcs and holds, lane for taps and holds. Events of different
// variants at the same timing compare equal.
func Compare(a, b Event) int {
	if c := cmpInt(a.Start(), b.Start()); c != 0 {
		return c
	}
	switch x := a.(type) {
	case *Tap:
		if y, ok := b.(*Tap); ok {
			return compareLane(x.Lane, y.Lane)
		}
	case *Hold:
		if y, ok := b.(*Hold); ok {
			if c := cmpInt(x.EndTiming, y.EndTiming); c != 0 {
				return c
			}
			return compareLane(x.Lane, y.Lane)
		}
	case *Arc:
		if y, ok := b.(*Arc); ok {
			return cmpInt(x.EndTiming, y.EndTiming)
		}
	}
	return 0
}

// CompareByType is Compare with event type rank breaking timing ties first.
func CompareByType(a, b Event) int {
	if c := cmpInt(a.Start(), b.Start()); c != 0 {
		return c
	}
	if c := cmpInt(rank(a), rank(b)); c != 0 {
		return c
	}
	return Compare(a, b)
}

// SortEvents sorts in place. The sort is stable so equal events keep the
// order they were read in.
func SortEvents(events []Event, st SortType) {
	cmp := Compare
	if st == SortByType {
		cmp = CompareByType
	}
	sort.SliceStable(events, func(i, j int) bool {
		return cmp(events[i], events[j]) < 0
	})
}
