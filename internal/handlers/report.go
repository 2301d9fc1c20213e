package handlers

import (
	"log"
	"net/http"

	"navette-backend/internal/ledger"
	"navette-backend/internal/models"
	"navette-backend/internal/report"
	"navette-backend/pkg/utils"
)

// GetCourseReport aggregates the ledger into the course report. Query
// parameters: day ("All" or one weekday, default "All") and pricing
// ("true" to include monetary columns).
func GetCourseReport(lg *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day := r.URL.Query().Get("day")
		if day == "" {
			day = models.DayAll
		}
		if day != models.DayAll && !models.IsWeekday(day) {
			utils.RespondError(w, http.StatusBadRequest, "Unknown day: "+day)
			return
		}

		prices := PricesFromEnv()
		pricing := report.Pricing{
			Enabled:  r.URL.Query().Get("pricing") == "true",
			Standard: prices.Standard,
			Taxi:     prices.Taxi,
		}

		records, err := lg.List()
		if err != nil {
			log.Printf("❌ Error fetching assignments for report: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to build report")
			return
		}

		result := report.Aggregate(records, day, pricing)

		log.Printf("✅ Report built: day=%s, %d courses, %d passengers", day, result.TotalCourses, result.TotalPassengers)
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"report":  result,
		})
	}
}
