package rich

// MarksEqual compares two mark sets in order, including attributes.
func MarksEqual(left, right []Mark) bool {
	if len(left) != len(right) {
		return false
	}
	for i := range left {
		if !MarkEqual(left[i], right[i]) {
			return false
		}
	}
	return true
}

// MarkEqual compares two marks. Link marks compare href and title.
func MarkEqual(left, right Mark) bool {
	if left.Type != right.Type {
		return false
	}
	if len(left.Attrs) != len(right.Attrs) {
		return false
	}
	for key, value := range left.Attrs {
		other, ok := right.Attrs[key]
		if !ok || other != value {
			return false
		}
	}
	return true
}

// MarkRank orders marks for canonical nesting. Unknown marks sort last.
func MarkRank(markType string) int {
	switch markType {
	case MarkLink:
		return 0
	case MarkStrong:
		return 1
	case MarkEm:
		return 2
	case MarkStrike:
		return 3
	case MarkCode:
		return 4
	default:
		return 5
	}
}

// IsKnownMark reports whether the mark type is part of the rich model.
func IsKnownMark(markType string) bool {
	return MarkRank(markType) < 5
}

// AddMark returns marks with mark inserted at its canonical position,
// replacing any existing mark of the same type.
func AddMark(marks []Mark, mark Mark) []Mark {
	out := make([]Mark, 0, len(marks)+1)
	inserted := false
	for _, existing := range marks {
		if existing.Type == mark.Type {
			continue
		}
		if !inserted && MarkRank(mark.Type) < MarkRank(existing.Type) {
			out = append(out, mark.Clone())
			inserted = true
		}
		out = append(out, existing)
	}
	if !inserted {
		out = append(out, mark.Clone())
	}
	return out
}

// RemoveMark returns marks without any mark of the given type.
func RemoveMark(marks []Mark, markType string) []Mark {
	var out []Mark
	for _, existing := range marks {
		if existing.Type != markType {
			out = append(out, existing)
		}
	}
	return out
}
