// Package timerange holds the overlap policy used to detect double-booked doctors.
package timerange

// Range is a closed interval of epoch milliseconds. Both ends belong to the range.
type Range struct {
	Begin int64
	End   int64
}

func New(begin, end int64) Range {
	return Range{Begin: begin, End: end}
}

// Conflicts reports whether candidate collides with existing. Ranges that
// merely touch (existing.End == candidate.Begin) are a conflict.
func Conflicts(existing, candidate Range) bool {
	s1, e1 := existing.Begin, existing.End
	s2, e2 := candidate.Begin, candidate.End

	between := s1 <= s2 && e2 <= e1
	overlapAll := s2 <= s1 && e1 <= e2
	overlapEnd := s1 <= s2 && s2 <= e1 && e1 <= e2
	overlapBeginning := s2 <= s1 && s1 <= e2 && e2 <= e1

	return between || overlapAll || overlapEnd || overlapBeginning
}

// ConflictsAny reports whether candidate collides with any of the existing ranges.
func ConflictsAny(existing []Range, candidate Range) bool {
	for _, r := range existing {
		if Conflicts(r, candidate) {
			return true
		}
	}
	return false
}
