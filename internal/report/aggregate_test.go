package report

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navette-backend/internal/models"
)

func record(driver, worker, company, day, hour, date string, typ models.TransportType) models.Assignment {
	return models.Assignment{
		ID:         fmt.Sprintf("%s-%s-%s-%s", driver, worker, day, hour),
		Driver:     driver,
		HourLabel:  hour,
		Worker:     worker,
		Address:    "12 rue du Port",
		Company:    company,
		Type:       typ,
		Day:        day,
		CourseDate: date,
		UnitPrice:  25,
	}
}

func TestAggregateEmptyLedger(t *testing.T) {
	report := Aggregate(nil, models.DayAll, Pricing{})

	assert.Empty(t, report.Rows)
	assert.Zero(t, report.TotalCourses)
	assert.Zero(t, report.TotalPassengers)
	assert.Empty(t, report.Drivers)
	assert.Empty(t, report.Companies)
	assert.Nil(t, report.GrandTotal)
}

func TestAggregateCompanyBreakdown(t *testing.T) {
	records := []models.Assignment{
		record("Karim", "W1", "A", "Monday", "7h", "13/10/2025", models.TransportPickup),
		record("Karim", "W2", "B", "Monday", "7h", "13/10/2025", models.TransportPickup),
		record("Karim", "W3", "B", "Monday", "7h", "13/10/2025", models.TransportPickup),
	}

	report := Aggregate(records, models.DayAll, Pricing{})

	require.Equal(t, 1, report.TotalCourses)
	require.Len(t, report.Rows, 4) // 3 worker lines + 1 breakdown line

	breakdown := report.Rows[3]
	assert.Equal(t, "RÉPARTITION COURSE (3 pers.)", breakdown.Label)
	assert.Equal(t, "33% A + 67% B", breakdown.Destination)

	// Worker rows carry the lower-cased type and the course date.
	assert.Equal(t, "pickup", report.Rows[0].Type)
	assert.Equal(t, "13/10/2025", report.Rows[0].Date)
}

func TestAggregateBreakdownSumsToWhole(t *testing.T) {
	// 7 passengers over 3 companies: rounded shares still hover at 100.
	records := []models.Assignment{
		record("Karim", "W1", "A", "Monday", "7h", "13/10/2025", models.TransportPickup),
		record("Karim", "W2", "A", "Monday", "7h", "13/10/2025", models.TransportPickup),
		record("Karim", "W3", "A", "Monday", "7h", "13/10/2025", models.TransportPickup),
		record("Karim", "W4", "B", "Monday", "7h", "13/10/2025", models.TransportPickup),
		record("Karim", "W5", "B", "Monday", "7h", "13/10/2025", models.TransportPickup),
		record("Karim", "W6", "C", "Monday", "7h", "13/10/2025", models.TransportPickup),
		record("Karim", "W7", "C", "Monday", "7h", "13/10/2025", models.TransportPickup),
	}

	report := Aggregate(records, models.DayAll, Pricing{})

	breakdown := report.Rows[len(report.Rows)-1].Destination
	total := 0
	for _, part := range strings.Split(breakdown, " + ") {
		var pct int
		var company string
		_, err := fmt.Sscanf(part, "%d%% %s", &pct, &company)
		require.NoError(t, err)
		total += pct
	}
	assert.InDelta(t, 100, total, 1)
}

func TestAggregateGroupingAndOrder(t *testing.T) {
	records := []models.Assignment{
		record("Karim", "W4", "A", "Tuesday", "6h", "14/10/2025", models.TransportPickup),
		record("Karim", "W1", "A", "Monday", "7h", "13/10/2025", models.TransportPickup),
		record("Ali", "W2", "A", "Monday", "7h", "13/10/2025", models.TransportPickup),
		record("Karim", "W3", "A", "Monday", "16h", "13/10/2025", models.TransportDropoff),
	}

	report := Aggregate(records, models.DayAll, Pricing{})

	require.Equal(t, 4, report.TotalCourses)

	// Expected order: Monday Ali 7h, Monday Karim 7h, Monday Karim 16h,
	// Tuesday Karim 6h comes first: sorted by (date, weekday, driver, hour).
	var workers []string
	for _, row := range report.Rows {
		if !strings.HasPrefix(row.Label, "RÉPARTITION") {
			workers = append(workers, row.Label)
		}
	}
	assert.Equal(t, []string{"W2", "W1", "W3", "W4"}, workers)
}

func TestAggregateSameHourSameDriverSameTypeMerges(t *testing.T) {
	records := []models.Assignment{
		record("Karim", "W1", "A", "Monday", "7h", "13/10/2025", models.TransportPickup),
		record("Karim", "W2", "A", "Monday", "7h", "13/10/2025", models.TransportPickup),
	}

	report := Aggregate(records, models.DayAll, Pricing{})
	assert.Equal(t, 1, report.TotalCourses)
	assert.Equal(t, 2, report.TotalPassengers)
}

func TestAggregateTaxiSplitsByDate(t *testing.T) {
	// Same driver/hour/day label across two calendar weeks: a taxi keeps the
	// two courses apart, a standard driver would merge them.
	records := []models.Assignment{
		record("Taxi Jaune", "W1", "A", "Monday", "7h", "13/10/2025", models.TransportPickup),
		record("Taxi Jaune", "W2", "A", "Monday", "7h", "20/10/2025", models.TransportPickup),
	}

	report := Aggregate(records, models.DayAll, Pricing{})
	assert.Equal(t, 2, report.TotalCourses)

	standard := []models.Assignment{
		record("Karim", "W1", "A", "Monday", "7h", "13/10/2025", models.TransportPickup),
		record("Karim", "W2", "A", "Monday", "7h", "20/10/2025", models.TransportPickup),
	}
	report = Aggregate(standard, models.DayAll, Pricing{})
	assert.Equal(t, 1, report.TotalCourses)
}

func TestAggregateDayScope(t *testing.T) {
	records := []models.Assignment{
		record("Karim", "W1", "A", "Monday", "7h", "13/10/2025", models.TransportPickup),
		record("Karim", "W2", "A", "Tuesday", "7h", "14/10/2025", models.TransportPickup),
	}

	report := Aggregate(records, "Tuesday", Pricing{})
	require.Equal(t, 1, report.TotalCourses)
	assert.Equal(t, "W2", report.Rows[0].Label)
}

func TestAggregateCategoryLocalPercentages(t *testing.T) {
	records := []models.Assignment{
		record("Karim", "W1", "A", "Monday", "7h", "13/10/2025", models.TransportPickup),
		record("Karim", "W2", "A", "Tuesday", "7h", "14/10/2025", models.TransportPickup),
		record("Ali", "W3", "A", "Monday", "8h", "13/10/2025", models.TransportPickup),
		record("Taxi Jaune", "W4", "A", "Monday", "9h", "13/10/2025", models.TransportPickup),
	}

	report := Aggregate(records, models.DayAll, Pricing{})

	stats := make(map[string]DriverStat)
	for _, s := range report.Drivers {
		stats[s.Driver] = s
	}

	// Standard category holds 3 courses: Karim 2/3, Ali 1/3.
	assert.InDelta(t, 66.67, stats["Karim"].Percent, 0.01)
	assert.InDelta(t, 33.33, stats["Ali"].Percent, 0.01)
	// The taxi category holds exactly one course: 100%, not 25% of global.
	assert.InDelta(t, 100, stats["Taxi Jaune"].Percent, 0.01)
}

func TestAggregateMonetaryTotals(t *testing.T) {
	pricing := Pricing{Enabled: true, Standard: 25, Taxi: 40}

	records := []models.Assignment{
		record("Karim", "W1", "A", "Monday", "7h", "13/10/2025", models.TransportPickup),
		record("Karim", "W2", "A", "Tuesday", "7h", "14/10/2025", models.TransportPickup),
		record("Taxi Jaune", "W3", "A", "Monday", "9h", "13/10/2025", models.TransportPickup),
	}

	report := Aggregate(records, models.DayAll, pricing)

	stats := make(map[string]DriverStat)
	for _, s := range report.Drivers {
		stats[s.Driver] = s
	}

	require.NotNil(t, stats["Karim"].Total)
	assert.Equal(t, 50.0, *stats["Karim"].Total) // 2 courses x 25
	require.NotNil(t, stats["Taxi Jaune"].Total)
	assert.Equal(t, 40.0, *stats["Taxi Jaune"].Total) // 1 course x 40

	require.NotNil(t, report.GrandTotal)
	assert.Equal(t, 90.0, *report.GrandTotal)

	// Worker rows expose the per-record price column.
	require.NotNil(t, report.Rows[0].Price)
	assert.Equal(t, 25.0, *report.Rows[0].Price)
}

func TestAggregateCompanyStats(t *testing.T) {
	records := []models.Assignment{
		record("Karim", "W1", "Platinium", "Monday", "7h", "13/10/2025", models.TransportPickup),
		record("Karim", "W2", "Platinium", "Monday", "7h", "13/10/2025", models.TransportPickup),
		record("Karim", "W3", "Intelcia", "Monday", "7h", "13/10/2025", models.TransportPickup),
	}

	report := Aggregate(records, models.DayAll, Pricing{})

	require.Len(t, report.Companies, 2)
	assert.Equal(t, "Platinium", report.Companies[0].Company)
	assert.Equal(t, 2, report.Companies[0].Passengers)
	assert.InDelta(t, 66.67, report.Companies[0].Percent, 0.01)
	assert.InDelta(t, 33.33, report.Companies[1].Percent, 0.01)
}
