package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"navette-backend/internal/models"
)

// Pricing controls the monetary part of the report. When Enabled is false
// the report carries counts and percentages only.
type Pricing struct {
	Enabled  bool    `json:"enabled"`
	Standard float64 `json:"standard"`
	Taxi     float64 `json:"taxi"`
}

// Row is one logical report line:
// [worker_or_label, hour, driver, destination_or_text, company, type, date]
// plus a price when pricing is enabled. The renderer (spreadsheet, PDF) is
// someone else's problem; this is the row shape it consumes.
type Row struct {
	Label       string   `json:"label"`
	Hour        string   `json:"hour"`
	Driver      string   `json:"driver"`
	Destination string   `json:"destination"`
	Company     string   `json:"company"`
	Type        string   `json:"type"`
	Date        string   `json:"date"`
	Price       *float64 `json:"price,omitempty"`
}

// DriverStat is one driver's share of the courses in their own category.
// Percent is relative to the category total (standard vs taxi), not the
// global course count. That is a user-facing accounting figure and must
// stay category-local.
type DriverStat struct {
	Driver   string   `json:"driver"`
	Category string   `json:"category"`
	Courses  int      `json:"courses"`
	Percent  float64  `json:"percent"`
	Total    *float64 `json:"total,omitempty"`
}

// CompanyStat counts transported passengers per company.
type CompanyStat struct {
	Company    string  `json:"company"`
	Passengers int     `json:"passengers"`
	Percent    float64 `json:"percent"`
}

// Report is the aggregated course report: ordered rows followed by global
// statistics.
type Report struct {
	Day             string        `json:"day"`
	Rows            []Row         `json:"rows"`
	TotalCourses    int           `json:"total_courses"`
	TotalPassengers int           `json:"total_passengers"`
	Drivers         []DriverStat  `json:"drivers"`
	Companies       []CompanyStat `json:"companies"`
	GrandTotal      *float64      `json:"grand_total,omitempty"`
}

// courseKey identifies one course: one driver, one hour, one day, one type.
// Taxi drivers additionally carry the resolved date so the same driver/hour
// across different weeks never merges into one course.
type courseKey struct {
	Day    string
	Driver string
	Hour   string
	Type   models.TransportType
	Date   string
}

const (
	categoryStandard = "standard"
	categoryTaxi     = "taxi"
)

// Aggregate groups the ledger into courses and computes the report for the
// requested day scope (models.DayAll or one weekday). An empty ledger yields
// an empty report, not an error.
func Aggregate(records []models.Assignment, day string, pricing Pricing) Report {
	report := Report{Day: day, Rows: []Row{}, Drivers: []DriverStat{}, Companies: []CompanyStat{}}

	var filtered []models.Assignment
	for _, rec := range records {
		if day == models.DayAll || rec.Day == day {
			filtered = append(filtered, rec)
		}
	}
	if len(filtered) == 0 {
		return report
	}

	groups := make(map[courseKey][]models.Assignment)
	var keys []courseKey
	for _, rec := range filtered {
		key := courseKey{Day: rec.Day, Driver: rec.Driver, Hour: rec.HourLabel, Type: rec.Type}
		if models.IsTaxiDriver(rec.Driver) {
			key.Date = rec.CourseDate
		}
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], rec)
	}

	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		da, db := dateSortKey(groups[a][0].CourseDate), dateSortKey(groups[b][0].CourseDate)
		if da != db {
			return da < db
		}
		if wa, wb := models.DayIndex(a.Day), models.DayIndex(b.Day); wa != wb {
			return wa < wb
		}
		if a.Driver != b.Driver {
			return a.Driver < b.Driver
		}
		return hourSortKey(a.Hour) < hourSortKey(b.Hour)
	})

	courseCount := make(map[string]int)
	companyCount := make(map[string]int)
	var companyOrder []string

	for _, key := range keys {
		course := groups[key]
		courseCount[key.Driver]++

		// One line per transported worker, then the company breakdown.
		perCompany := make(map[string]int)
		var courseCompanies []string
		for _, rec := range course {
			if perCompany[rec.Company] == 0 {
				courseCompanies = append(courseCompanies, rec.Company)
			}
			perCompany[rec.Company]++

			if companyCount[rec.Company] == 0 {
				companyOrder = append(companyOrder, rec.Company)
			}
			companyCount[rec.Company]++

			row := Row{
				Label:       rec.Worker,
				Hour:        rec.HourLabel,
				Driver:      rec.Driver,
				Destination: rec.Address,
				Company:     rec.Company,
				Type:        strings.ToLower(string(rec.Type)),
				Date:        rec.CourseDate,
			}
			if pricing.Enabled {
				price := rec.UnitPrice
				row.Price = &price
			}
			report.Rows = append(report.Rows, row)
		}

		report.Rows = append(report.Rows, Row{
			Label:       fmt.Sprintf("RÉPARTITION COURSE (%d pers.)", len(course)),
			Destination: breakdownText(courseCompanies, perCompany, len(course)),
		})
	}

	report.TotalCourses = len(keys)
	report.TotalPassengers = len(filtered)

	// Category-local totals: a driver's percentage is relative to the
	// courses of their own category.
	categoryTotals := map[string]int{}
	for driver, n := range courseCount {
		categoryTotals[driverCategory(driver)] += n
	}

	for driver, n := range courseCount {
		category := driverCategory(driver)
		stat := DriverStat{
			Driver:   driver,
			Category: category,
			Courses:  n,
			Percent:  percent(n, categoryTotals[category]),
		}
		if pricing.Enabled {
			total := float64(n) * pricing.Standard
			if category == categoryTaxi {
				total = float64(n) * pricing.Taxi
			}
			stat.Total = &total
		}
		report.Drivers = append(report.Drivers, stat)
	}
	sort.SliceStable(report.Drivers, func(i, j int) bool {
		if report.Drivers[i].Courses != report.Drivers[j].Courses {
			return report.Drivers[i].Courses > report.Drivers[j].Courses
		}
		return report.Drivers[i].Driver < report.Drivers[j].Driver
	})

	for _, company := range companyOrder {
		report.Companies = append(report.Companies, CompanyStat{
			Company:    company,
			Passengers: companyCount[company],
			Percent:    percent(companyCount[company], len(filtered)),
		})
	}
	sort.SliceStable(report.Companies, func(i, j int) bool {
		if report.Companies[i].Passengers != report.Companies[j].Passengers {
			return report.Companies[i].Passengers > report.Companies[j].Passengers
		}
		return report.Companies[i].Company < report.Companies[j].Company
	})

	if pricing.Enabled {
		grand := 0.0
		for _, stat := range report.Drivers {
			grand += *stat.Total
		}
		report.GrandTotal = &grand
	}

	return report
}

// breakdownText renders the per-course company split, whole percents joined
// with " + ": "33% A + 67% B". Companies appear in first-passenger order.
func breakdownText(companies []string, counts map[string]int, courseSize int) string {
	parts := make([]string, 0, len(companies))
	for _, company := range companies {
		share := float64(counts[company]) / float64(courseSize) * 100
		parts = append(parts, fmt.Sprintf("%.0f%% %s", share, company))
	}
	return strings.Join(parts, " + ")
}

func driverCategory(driver string) string {
	if models.IsTaxiDriver(driver) {
		return categoryTaxi
	}
	return categoryStandard
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

// dateSortKey turns dd/mm/yyyy into a chronologically sortable integer.
// Unparsable dates sort first.
func dateSortKey(date string) int {
	parts := strings.Split(date, "/")
	if len(parts) != 3 {
		return 0
	}
	d, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	y, _ := strconv.Atoi(parts[2])
	return y*10000 + m*100 + d
}

// hourSortKey orders hour labels like "7h" and "23h" numerically.
func hourSortKey(label string) int {
	trimmed := strings.TrimSuffix(label, "h")
	if n, err := strconv.Atoi(trimmed); err == nil {
		return n
	}
	return 0
}
