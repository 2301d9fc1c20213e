package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"navette-backend/internal/database"
	"navette-backend/internal/models"
	"navette-backend/internal/schedule"
	"navette-backend/pkg/utils"
)

type LoadScheduleRequest struct {
	Rows      []schedule.Row `json:"rows"`
	DateHints []string       `json:"date_hints"`
}

// LoadSchedule replaces the in-memory planning grid with a freshly uploaded
// one. Column dates come from the header hints when present and fall back to
// the next occurrence of each weekday.
func LoadSchedule(store *schedule.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoadScheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		log.Printf("📥 Loading schedule: %d rows, %d date hints", len(req.Rows), len(req.DateHints))

		if err := store.Load(req.Rows, req.DateHints, time.Now()); err != nil {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}

		log.Printf("✅ Schedule loaded: %d workers", len(req.Rows))
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"workers": len(req.Rows),
			"dates":   store.Dates(),
		})
	}
}

// GetScheduleDates returns the resolved calendar date of each weekday column
func GetScheduleDates(store *schedule.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"loaded":  store.Loaded(),
			"dates":   store.Dates(),
		})
	}
}

type ClassifyRequest struct {
	DSTActive    bool   `json:"dst_active"`
	Day          string `json:"day"`
	PickupHours  []int  `json:"pickup_hours"`
	DropoffHours []int  `json:"dropoff_hours"`
}

// Classify runs the dispatch classification over the loaded grid and returns
// the pickup and dropoff candidates matching the hour filters.
func Classify(store *schedule.Store, profiles *database.ProfileStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ClassifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if !store.Loaded() {
			utils.RespondError(w, http.StatusConflict, "No schedule loaded")
			return
		}
		if req.Day != models.DayAll && !models.IsWeekday(req.Day) {
			utils.RespondError(w, http.StatusBadRequest, "Unknown day: "+req.Day)
			return
		}

		pickups, dropoffs := store.Classify(profiles, schedule.ClassifyOptions{
			DSTActive:    req.DSTActive,
			Day:          req.Day,
			PickupHours:  req.PickupHours,
			DropoffHours: req.DropoffHours,
		})

		log.Printf("✅ Classified: %d pickups, %d dropoffs (day=%s, dst=%v)", len(pickups), len(dropoffs), req.Day, req.DSTActive)
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success":  true,
			"pickups":  pickups,
			"dropoffs": dropoffs,
		})
	}
}

// HourGroup is one hour block of a printable transport list
type HourGroup struct {
	Day       string                 `json:"day"`
	Date      string                 `json:"date"`
	HourLabel string                 `json:"hour_label"`
	Workers   []models.DispatchEvent `json:"workers"`
}

// PrintableLists returns pickups and dropoffs grouped by (day, hour) in
// board order, ready for printing.
func PrintableLists(store *schedule.Store, profiles *database.ProfileStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ClassifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if !store.Loaded() {
			utils.RespondError(w, http.StatusConflict, "No schedule loaded")
			return
		}

		pickups, dropoffs := store.Classify(profiles, schedule.ClassifyOptions{
			DSTActive:    req.DSTActive,
			Day:          req.Day,
			PickupHours:  req.PickupHours,
			DropoffHours: req.DropoffHours,
		})

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success":  true,
			"pickups":  groupByHour(pickups),
			"dropoffs": groupByHour(dropoffs),
		})
	}
}

func groupByHour(events []models.DispatchEvent) []HourGroup {
	groups := []HourGroup{}
	for _, ev := range events {
		n := len(groups)
		if n > 0 && groups[n-1].Day == ev.Day && groups[n-1].HourLabel == ev.HourLabel {
			groups[n-1].Workers = append(groups[n-1].Workers, ev)
			continue
		}
		groups = append(groups, HourGroup{
			Day:       ev.Day,
			Date:      ev.Date,
			HourLabel: ev.HourLabel,
			Workers:   []models.DispatchEvent{ev},
		})
	}
	return groups
}
