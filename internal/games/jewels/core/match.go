package core

import "slices"

// FindRepeats returns the maximal runs of at least minLength consecutive,
// equal, non-zero values in seq, as ascending index lists. Zero values
// break runs and never belong to one.
func FindRepeats[T comparable](seq []T, minLength int) [][]int {
	var (
		zero    T
		current T
		run     []int
		runs    [][]int
	)

	flush := func() {
		if len(run) >= minLength {
			runs = append(runs, run)
		}
		run = nil
	}

	for i, v := range seq {
		switch {
		case v == zero:
			flush()
		case len(run) > 0 && v == current:
			run = append(run, i)
		default:
			flush()
			run = []int{i}
			current = v
		}
	}
	flush()

	return runs
}

// Match is a run of cells holding identical tokens, in scan order.
type Match []Coord

// Equal reports whether two matches cover the same cells in the same order.
func (m Match) Equal(o Match) bool {
	return slices.Equal(m, o)
}

// Contains reports whether c is part of the match.
func (m Match) Contains(c Coord) bool {
	return slices.Contains(m, c)
}

func containsMatch(set []Match, m Match) bool {
	for _, s := range set {
		if s.Equal(m) {
			return true
		}
	}
	return false
}
