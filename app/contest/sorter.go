package contest

import "sort"

type Sorter struct{}

func NewSorter() *Sorter {
	return &Sorter{}
}

// Run orders contests in place and returns the slice. When both contests
// carry a start time the order is ascending by start; when at least one
// does not, coding contests float to the front and ended contests sink to
// the back. Everything else keeps its input order (stable sort).
func (s *Sorter) Run(contests []Contest) []Contest {
	sort.SliceStable(contests, func(i, j int) bool {
		return s.less(contests[i], contests[j])
	})
	return contests
}

func (s *Sorter) less(a, b Contest) bool {
	if a.StartAt != nil && b.StartAt != nil {
		return a.StartAt.Before(*b.StartAt)
	}

	if a.Phase == PhaseCoding && b.Phase != PhaseCoding {
		return true
	}
	if b.Phase == PhaseCoding && a.Phase != PhaseCoding {
		return false
	}

	if a.Phase == PhaseEnded && b.Phase != PhaseEnded {
		return false
	}
	if b.Phase == PhaseEnded && a.Phase != PhaseEnded {
		return true
	}

	return false
}

// Cap truncates contests to the effective count: the requested count when
// explicitly supplied and positive, otherwise the configured default.
func Cap(contests []Contest, requested, fallback int) []Contest {
	count := fallback
	if requested > 0 {
		count = requested
	}
	if count <= 0 || count >= len(contests) {
		return contests
	}
	return contests[:count]
}
