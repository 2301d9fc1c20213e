package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"navette-backend/internal/models"
)

// DateMap maps a weekday label to its resolved calendar date, formatted
// dd/mm/yyyy. It always covers all seven weekdays and is built once per
// schedule load; every consumer (classifier, ledger, report) reads the same
// map so dates cannot drift between them.
type DateMap map[string]string

var headerDatePattern = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})`)

// ResolveDates builds the DateMap for one loaded schedule. hints holds the
// free text of the per-weekday header cells in Monday..Sunday order; it may
// be nil or shorter than seven when the sheet has no date row. A column with
// no dd/mm pattern falls back to the next occurrence of that weekday.
func ResolveDates(hints []string, now time.Time) DateMap {
	dates := make(DateMap, len(models.Weekdays))
	for i, day := range models.Weekdays {
		hint := ""
		if i < len(hints) {
			hint = hints[i]
		}
		if d, ok := dateFromHint(hint, now); ok {
			dates[day] = d
		} else {
			dates[day] = NextOccurrence(day, now)
		}
	}
	return dates
}

// dateFromHint extracts dd/mm from a header cell. The sheets never carry a
// year, so the current year is assumed, bumped by one when the month is
// already past, which is how a December sheet for the first week of January
// resolves.
func dateFromHint(hint string, now time.Time) (string, bool) {
	m := headerDatePattern.FindStringSubmatch(hint)
	if m == nil {
		return "", false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])

	year := now.Year()
	if month < int(now.Month()) {
		year++
	}
	return fmt.Sprintf("%02d/%02d/%d", day, month, year), true
}

// NextOccurrence returns the date of the next occurrence of the given
// weekday, counting today as a candidate: asked for Wednesday on a
// Wednesday, it returns today.
func NextOccurrence(day string, now time.Time) string {
	target := models.DayIndex(day)
	if target < 0 {
		return now.Format("02/01/2006")
	}
	// time.Weekday counts Sunday=0; shift to Monday=0.
	today := (int(now.Weekday()) + 6) % 7
	offset := (target - today + 7) % 7
	return now.AddDate(0, 0, offset).Format("02/01/2006")
}
