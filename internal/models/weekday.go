package models

// DayAll is the day-scope value meaning "every weekday".
const DayAll = "All"

// Weekdays lists the weekday labels in fixed order, Monday first.
// Classification and reporting sort by this order regardless of locale.
var Weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// DayIndex returns the order index of a weekday label (Monday=0 .. Sunday=6),
// or -1 for an unknown label.
func DayIndex(day string) int {
	for i, d := range Weekdays {
		if d == day {
			return i
		}
	}
	return -1
}

// IsWeekday reports whether day is one of the seven known labels.
func IsWeekday(day string) bool {
	return DayIndex(day) >= 0
}
