package content

import (
	"cmp"
	"slices"

	"git.home.luguber.info/inful/photofolio/internal/util/sets"
)

// SortWorks orders works by year descending, then slug ascending (byte-wise).
func SortWorks(works []Work) {
	slices.SortStableFunc(works, compareWorks)
}

func compareWorks(a, b Work) int {
	if a.Year != b.Year {
		return cmp.Compare(b.Year, a.Year)
	}
	return cmp.Compare(a.Slug, b.Slug)
}

// Years returns the distinct years of works, newest first.
func Years(works []Work) []int {
	seen := sets.New[int]()
	for _, w := range works {
		seen.Add(w.Year)
	}
	years := sets.Sorted(seen)
	slices.Reverse(years)
	return years
}

// YearSelection is the gallery filter: every year, or exactly one.
type YearSelection struct {
	year int
	one  bool
}

// AllYears selects every work.
func AllYears() YearSelection { return YearSelection{} }

// OnlyYear selects works from year y.
func OnlyYear(y int) YearSelection { return YearSelection{year: y, one: true} }

// All reports whether the selection is unfiltered.
func (s YearSelection) All() bool { return !s.one }

// Year returns the selected year; it is meaningless when All() is true.
func (s YearSelection) Year() int { return s.year }

// Matches is the gallery predicate: all years, or the work's year equals the selection.
func (s YearSelection) Matches(w Work) bool {
	return s.All() || w.Year == s.year
}

// Filter returns the works matching sel, preserving order.
func Filter(works []Work, sel YearSelection) []Work {
	out := make([]Work, 0, len(works))
	for _, w := range works {
		if sel.Matches(w) {
			out = append(out, w)
		}
	}
	return out
}
