package schedule

import (
	"regexp"
	"strconv"
)

// ShiftWindow is a parsed shift: start and end hour. End stays in 0-23 for
// same-day shifts and moves to 24-47 when the shift crosses midnight.
type ShiftWindow struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// CrossesMidnight reports whether the shift ends on the following calendar day.
func (w ShiftWindow) CrossesMidnight() bool {
	return w.End >= 24
}

// nonWorkingMarkers are the schedule cell values that mean "no shift".
// Exact, case-sensitive matches; the vocabulary comes from the HR export
// and must not be normalized.
var nonWorkingMarkers = map[string]bool{
	"REPOS":           true,
	"ABSENCE":         true,
	"OFF":             true,
	"MALADIE":         true,
	"CONGÉ PAYÉ":      true,
	"CONGÉ MATERNITÉ": true,
}

var (
	// Everything that is not a digit, the hour marker, whitespace or a
	// separator glyph gets stripped before matching.
	cellNoisePattern = regexp.MustCompile(`[^0-9h\s\-à]`)
	spacePattern     = regexp.MustCompile(`\s+`)
	// Hour, optional marker with optional minutes, separator, same again.
	// Minutes are parsed past but ignored: courses run on whole hours.
	shiftPattern = regexp.MustCompile(`(\d{1,2})\s*(?:h\s*\d{0,2})?\s*[-à]\s*(\d{1,2})\s*(?:h\s*\d{0,2})?`)
)

// ParseShiftCell extracts the shift window from one free-text schedule cell.
// It returns ok=false for empty cells, non-working markers and text with no
// recognizable hour range; none of those are errors, they just mean no shift
// that day.
//
// The first match wins. Cells with three-digit numbers or several candidate
// ranges are resolved by that rule; the source sheets are too messy for
// anything stricter.
func ParseShiftCell(cell string) (ShiftWindow, bool) {
	if cell == "" || nonWorkingMarkers[cell] {
		return ShiftWindow{}, false
	}

	normalized := cellNoisePattern.ReplaceAllString(cell, "")
	normalized = spacePattern.ReplaceAllString(normalized, " ")

	m := shiftPattern.FindStringSubmatch(normalized)
	if m == nil {
		return ShiftWindow{}, false
	}

	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])

	// "22h-6h" is a night shift ending the next morning, not a shift that
	// ends before it starts. An end before noon is read as next-day.
	if end < start && end < 12 {
		end += 24
	}
	if end < start {
		return ShiftWindow{}, false
	}

	return ShiftWindow{Start: start, End: end}, true
}

// IsNonWorkingMarker reports whether the cell is one of the recognized
// rest/absence markers.
func IsNonWorkingMarker(cell string) bool {
	return nonWorkingMarkers[cell]
}
