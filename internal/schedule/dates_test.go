package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navette-backend/internal/models"
)

func TestResolveDatesFromHints(t *testing.T) {
	// Wednesday 15/10/2025.
	now := time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC)

	hints := []string{
		"Lundi 13/10", "mar 14-10", "15/10", "jeudi 16/10",
		"17/10", "18/10", "19/10",
	}
	dates := ResolveDates(hints, now)

	require.Len(t, dates, 7)
	assert.Equal(t, "13/10/2025", dates["Monday"])
	assert.Equal(t, "14/10/2025", dates["Tuesday"]) // dash separator
	assert.Equal(t, "19/10/2025", dates["Sunday"])
}

func TestResolveDatesYearRollover(t *testing.T) {
	// A sheet loaded in December carrying January dates belongs to next year.
	now := time.Date(2025, 12, 29, 9, 0, 0, 0, time.UTC)

	dates := ResolveDates([]string{"29/12", "30/12", "31/12", "01/01", "02/01", "03/01", "04/01"}, now)

	assert.Equal(t, "29/12/2025", dates["Monday"])
	assert.Equal(t, "01/01/2026", dates["Thursday"])
	assert.Equal(t, "04/01/2026", dates["Sunday"])
}

func TestResolveDatesFallback(t *testing.T) {
	// Wednesday 15/10/2025, no usable header.
	now := time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC)

	dates := ResolveDates(nil, now)

	require.Len(t, dates, 7)
	// Today counts: Wednesday resolves to today, not next week.
	assert.Equal(t, "15/10/2025", dates["Wednesday"])
	assert.Equal(t, "16/10/2025", dates["Thursday"])
	assert.Equal(t, "19/10/2025", dates["Sunday"])
	// Days already past this week land on next week's occurrence.
	assert.Equal(t, "20/10/2025", dates["Monday"])
	assert.Equal(t, "21/10/2025", dates["Tuesday"])
}

func TestResolveDatesMixedHints(t *testing.T) {
	now := time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC)

	// Only Monday has a parsable hint; the rest fall back.
	dates := ResolveDates([]string{"13/10", "férié", ""}, now)

	assert.Equal(t, "13/10/2025", dates["Monday"])
	assert.Equal(t, "21/10/2025", dates["Tuesday"])
	for _, day := range models.Weekdays {
		assert.NotEmpty(t, dates[day], day)
	}
}

func TestNextOccurrenceSameDay(t *testing.T) {
	// Sunday edge: time.Weekday counts Sunday=0 but our week starts Monday.
	sunday := time.Date(2025, 10, 19, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "19/10/2025", NextOccurrence("Sunday", sunday))
	assert.Equal(t, "20/10/2025", NextOccurrence("Monday", sunday))
}
