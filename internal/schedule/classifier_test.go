package schedule

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navette-backend/internal/models"
)

func testProfiles(byName map[string]models.WorkerProfile) ProfileLookup {
	return ProfileLookupFunc(func(name string) models.WorkerProfile {
		if p, ok := byName[name]; ok {
			return p
		}
		return models.UnknownProfile(name)
	})
}

func testDates() DateMap {
	return ResolveDates(
		[]string{"13/10", "14/10", "15/10", "16/10", "17/10", "18/10", "19/10"},
		time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC),
	)
}

func weekRow(worker string, cells map[string]string) Row {
	row := Row{Worker: worker}
	for day, cell := range cells {
		row.Cells[models.DayIndex(day)] = cell
	}
	return row
}

func TestAdjustHour(t *testing.T) {
	for h := 0; h < 48; h++ {
		assert.Equal(t, AdjustHour(h, false)-1, AdjustHour(h, true))
		assert.Equal(t, h, AdjustHour(h, false))
	}
	// No floor clamp: midnight shifts below zero and matches nothing.
	assert.Equal(t, -1, AdjustHour(0, true))
}

func TestClassifyDayShift(t *testing.T) {
	rows := []Row{weekRow("Durand Marie", map[string]string{"Monday": "7h-16h"})}
	profiles := testProfiles(map[string]models.WorkerProfile{
		"Durand Marie": {Name: "Durand Marie", Address: "3 rue des Lilas", Phone: "0601020304", Company: "Platinium"},
	})

	pickups, dropoffs := Classify(rows, testDates(), profiles, ClassifyOptions{
		Day:          models.DayAll,
		PickupHours:  []int{7},
		DropoffHours: []int{16},
	})

	require.Len(t, pickups, 1)
	require.Len(t, dropoffs, 1)

	p := pickups[0]
	assert.Equal(t, "Durand Marie", p.Worker)
	assert.Equal(t, "Monday", p.Day)
	assert.Equal(t, 7, p.Hour)
	assert.Equal(t, 7, p.DisplayHour)
	assert.Equal(t, "7h", p.HourLabel)
	assert.Equal(t, "3 rue des Lilas", p.Address)
	assert.Equal(t, "13/10/2025", p.Date)

	d := dropoffs[0]
	assert.Equal(t, 16, d.Hour)
	assert.Equal(t, 16, d.DisplayHour)
	assert.Equal(t, models.TransportDropoff, d.Type)
}

func TestClassifyNightShiftDropoff(t *testing.T) {
	rows := []Row{weekRow("Nguyen Paul", map[string]string{"Friday": "22h-6h"})}
	profiles := testProfiles(nil)

	pickups, dropoffs := Classify(rows, testDates(), profiles, ClassifyOptions{
		Day:          models.DayAll,
		PickupHours:  []int{22},
		DropoffHours: []int{6},
	})

	require.Len(t, pickups, 1)
	require.Len(t, dropoffs, 1)

	d := dropoffs[0]
	// Internal hour stays 30 for ordering; the event belongs to the shift's
	// start weekday, not Saturday.
	assert.Equal(t, 30, d.Hour)
	assert.Equal(t, 6, d.DisplayHour)
	assert.Equal(t, "6h", d.HourLabel)
	assert.Equal(t, "Friday", d.Day)
	assert.Equal(t, "17/10/2025", d.Date)
}

func TestClassifyDSTShiftsBothBounds(t *testing.T) {
	rows := []Row{weekRow("Nguyen Paul", map[string]string{"Monday": "7h-16h"})}
	profiles := testProfiles(nil)

	// With DST active the 7h start presents as 6h and the 16h end as 15h.
	pickups, dropoffs := Classify(rows, testDates(), profiles, ClassifyOptions{
		DSTActive:    true,
		Day:          models.DayAll,
		PickupHours:  []int{6},
		DropoffHours: []int{15},
	})
	require.Len(t, pickups, 1)
	require.Len(t, dropoffs, 1)
	assert.Equal(t, 6, pickups[0].Hour)
	assert.Equal(t, 15, dropoffs[0].Hour)

	// The unadjusted hours no longer match.
	pickups, dropoffs = Classify(rows, testDates(), profiles, ClassifyOptions{
		DSTActive:    true,
		Day:          models.DayAll,
		PickupHours:  []int{7},
		DropoffHours: []int{16},
	})
	assert.Empty(t, pickups)
	assert.Empty(t, dropoffs)
}

func TestClassifyDSTMidnightStartMatchesNothing(t *testing.T) {
	rows := []Row{weekRow("Nguyen Paul", map[string]string{"Monday": "0h-8h"})}
	profiles := testProfiles(nil)

	pickups, _ := Classify(rows, testDates(), profiles, ClassifyOptions{
		DSTActive:   true,
		Day:         models.DayAll,
		PickupHours: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 23},
	})
	assert.Empty(t, pickups)
}

func TestClassifySkipsSelfTransporting(t *testing.T) {
	rows := []Row{
		weekRow("Durand Marie", map[string]string{"Monday": "7h-16h"}),
		weekRow("Petit Jean", map[string]string{"Monday": "7h-16h"}),
	}
	profiles := testProfiles(map[string]models.WorkerProfile{
		"Petit Jean": {Name: "Petit Jean", Address: "a", Phone: "b", Company: "c", HasOwnCar: true},
	})

	pickups, _ := Classify(rows, testDates(), profiles, ClassifyOptions{
		Day:         models.DayAll,
		PickupHours: []int{7},
	})

	require.Len(t, pickups, 1)
	assert.Equal(t, "Durand Marie", pickups[0].Worker)
}

func TestClassifyDayFilter(t *testing.T) {
	rows := []Row{weekRow("Durand Marie", map[string]string{
		"Monday":  "7h-16h",
		"Tuesday": "7h-16h",
	})}
	profiles := testProfiles(nil)

	pickups, _ := Classify(rows, testDates(), profiles, ClassifyOptions{
		Day:         "Tuesday",
		PickupHours: []int{7},
	})

	require.Len(t, pickups, 1)
	assert.Equal(t, "Tuesday", pickups[0].Day)
}

func TestClassifyUnknownWorkerGetsPlaceholders(t *testing.T) {
	rows := []Row{weekRow("Inconnu", map[string]string{"Monday": "7h-16h"})}

	pickups, _ := Classify(rows, testDates(), testProfiles(nil), ClassifyOptions{
		Day:         models.DayAll,
		PickupHours: []int{7},
	})

	require.Len(t, pickups, 1)
	assert.Equal(t, models.PlaceholderAddress, pickups[0].Address)
	assert.Equal(t, models.PlaceholderPhone, pickups[0].Phone)
	assert.Equal(t, models.PlaceholderCompany, pickups[0].Company)
}

func TestClassifySortOrder(t *testing.T) {
	rows := []Row{
		weekRow("C", map[string]string{"Sunday": "6h-14h"}),
		weekRow("A", map[string]string{"Monday": "8h-17h"}),
		weekRow("B", map[string]string{"Monday": "6h-14h"}),
	}
	profiles := testProfiles(nil)

	pickups, _ := Classify(rows, testDates(), profiles, ClassifyOptions{
		Day:         models.DayAll,
		PickupHours: []int{6, 8},
	})

	require.Len(t, pickups, 3)
	assert.Equal(t, []string{"B", "A", "C"}, []string{pickups[0].Worker, pickups[1].Worker, pickups[2].Worker})

	sorted := sort.SliceIsSorted(pickups, func(i, j int) bool {
		di, dj := models.DayIndex(pickups[i].Day), models.DayIndex(pickups[j].Day)
		if di != dj {
			return di < dj
		}
		return pickups[i].Hour < pickups[j].Hour
	})
	assert.True(t, sorted)

	// Re-sorting an already sorted list is a no-op.
	before := make([]models.DispatchEvent, len(pickups))
	copy(before, pickups)
	SortEvents(pickups)
	assert.Equal(t, before, pickups)
}
