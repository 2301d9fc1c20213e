package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"

	"navette-backend/internal/database"
	"navette-backend/internal/ledger"
	"navette-backend/internal/models"
	"navette-backend/internal/schedule"
	"navette-backend/internal/services"
	"navette-backend/internal/websocket"
	"navette-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

const (
	defaultStandardPrice = 25.0
	defaultTaxiPrice     = 40.0
)

// PricesFromEnv reads the course rates, falling back to the standard tariff
func PricesFromEnv() ledger.Prices {
	prices := ledger.Prices{Standard: defaultStandardPrice, Taxi: defaultTaxiPrice}
	if v := os.Getenv("COURSE_PRICE_STANDARD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			prices.Standard = f
		}
	}
	if v := os.Getenv("COURSE_PRICE_TAXI"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			prices.Taxi = f
		}
	}
	return prices
}

// GetAssignments returns the full assignment ledger
func GetAssignments(lg *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := lg.List()
		if err != nil {
			log.Printf("❌ Error fetching assignments: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch assignments")
			return
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success":     true,
			"assignments": records,
		})
	}
}

type CreateAssignmentsRequest struct {
	Driver        string   `json:"driver"`
	HourLabel     string   `json:"hour_label"`
	Workers       []string `json:"workers"`
	Type          string   `json:"type"`
	Day           string   `json:"day"`
	ExplicitPrice *float64 `json:"explicit_price,omitempty"`
}

// CreateAssignments appends one course batch to the ledger. The whole batch
// commits or none of it does. Workers with incomplete profiles block the
// batch with a needs-completion outcome, already assigned workers with a
// conflict.
func CreateAssignments(db *sqlx.DB, lg *ledger.Ledger, store *schedule.Store, profiles *database.ProfileStore, hub *websocket.Hub, fcm *services.FCMService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateAssignmentsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Driver == "" || len(req.Workers) == 0 {
			utils.RespondError(w, http.StatusBadRequest, "driver and workers are required")
			return
		}
		if req.Type != string(models.TransportPickup) && req.Type != string(models.TransportDropoff) {
			utils.RespondError(w, http.StatusBadRequest, "type must be 'Pickup' or 'Dropoff'")
			return
		}
		if !models.IsWeekday(req.Day) {
			utils.RespondError(w, http.StatusBadRequest, "Unknown day: "+req.Day)
			return
		}

		log.Printf("📥 Assigning %d worker(s) to %s (%s %s)", len(req.Workers), req.Driver, req.Day, req.HourLabel)

		outcome, err := lg.Append(ledger.AppendRequest{
			Driver:        req.Driver,
			HourLabel:     req.HourLabel,
			Workers:       req.Workers,
			Type:          models.TransportType(req.Type),
			Day:           req.Day,
			CourseDate:    store.DateFor(req.Day),
			ExplicitPrice: req.ExplicitPrice,
		}, profiles.Profiles(req.Workers), PricesFromEnv())
		if err != nil {
			log.Printf("❌ Error appending to ledger: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to save assignments")
			return
		}

		if len(outcome.IncompleteWorkers) > 0 {
			utils.RespondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"success":            false,
				"needs_completion":   true,
				"incomplete_workers": outcome.IncompleteWorkers,
			})
			return
		}
		if len(outcome.AlreadyAssigned) > 0 {
			utils.RespondJSON(w, http.StatusConflict, map[string]interface{}{
				"success":          false,
				"already_assigned": outcome.AlreadyAssigned,
			})
			return
		}

		log.Printf("✅ Course saved: %s %s %s, %d passenger(s)", req.Driver, req.Day, req.HourLabel, len(outcome.Records))

		hub.BroadcastBoardUpdate("assignment_created", map[string]interface{}{
			"driver":      req.Driver,
			"day":         req.Day,
			"hour_label":  req.HourLabel,
			"assignments": outcome.Records,
		})

		if fcm != nil {
			tokens, err := DriverTokens(db, req.Driver)
			if err != nil {
				log.Printf("⚠️ Could not load device tokens for %s: %v", req.Driver, err)
			} else if err := fcm.SendCourseAssignedNotification(tokens, req.Driver, req.Day, req.HourLabel, len(outcome.Records)); err != nil {
				log.Printf("⚠️ FCM notification failed: %v", err)
			}
		}

		utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
			"success":     true,
			"assignments": outcome.Records,
		})
	}
}

// DeleteAssignment removes a single passenger from the ledger
func DeleteAssignment(db *sqlx.DB, lg *ledger.Ledger, hub *websocket.Hub, fcm *services.FCMService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		record, err := lg.Get(id)
		if err != nil {
			log.Printf("❌ Error fetching assignment: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to delete assignment")
			return
		}
		if record == nil {
			utils.RespondError(w, http.StatusNotFound, "Assignment not found")
			return
		}

		if _, err := lg.Remove(id); err != nil {
			log.Printf("❌ Error deleting assignment: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to delete assignment")
			return
		}

		log.Printf("✅ Assignment removed: %s (%s)", record.Worker, record.Driver)

		hub.BroadcastBoardUpdate("assignment_removed", map[string]interface{}{
			"id":     id,
			"worker": record.Worker,
			"driver": record.Driver,
		})

		if fcm != nil {
			tokens, err := DriverTokens(db, record.Driver)
			if err == nil {
				if err := fcm.SendCourseCancelledNotification(tokens, record.Driver, record.Day, record.HourLabel); err != nil {
					log.Printf("⚠️ FCM notification failed: %v", err)
				}
			}
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
		})
	}
}

// ClearAssignments wipes the whole ledger. Admin only.
func ClearAssignments(lg *ledger.Ledger, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		removed, err := lg.Clear()
		if err != nil {
			log.Printf("❌ Error clearing assignments: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to clear assignments")
			return
		}

		log.Printf("✅ Ledger cleared: %d assignments removed", removed)

		hub.BroadcastBoardUpdate("assignments_cleared", map[string]interface{}{
			"removed": removed,
		})

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"removed": removed,
		})
	}
}

type UpdatePaymentRequest struct {
	Status string `json:"status"`
}

// UpdatePaymentStatus marks one ledger entry paid or unpaid
func UpdatePaymentStatus(lg *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req UpdatePaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Status != models.PaymentStatusPaid && req.Status != models.PaymentStatusUnpaid {
			utils.RespondError(w, http.StatusBadRequest, "status must be 'paid' or 'unpaid'")
			return
		}

		found, err := lg.UpdatePaymentStatus(id, req.Status)
		if err != nil {
			log.Printf("❌ Error updating payment status: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to update payment status")
			return
		}
		if !found {
			utils.RespondError(w, http.StatusNotFound, "Assignment not found")
			return
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
		})
	}
}

// GetAvailableWorkers classifies the loaded grid and strips out everyone who
// already sits in the ledger, leaving the workers still waiting for a seat.
func GetAvailableWorkers(lg *ledger.Ledger, store *schedule.Store, profiles *database.ProfileStore) http.HandlerFunc {
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

		assigned, err := lg.AssignedWorkers()
		if err != nil {
			log.Printf("❌ Error fetching assigned workers: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch assigned workers")
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
			"pickups":  ledger.FilterAvailable(pickups, assigned),
			"dropoffs": ledger.FilterAvailable(dropoffs, assigned),
		})
	}
}
