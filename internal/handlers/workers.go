package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"navette-backend/internal/models"
	"navette-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// GetWorkers returns the full worker info list
func GetWorkers(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workers := []models.Worker{}
		if err := db.Select(&workers, `SELECT * FROM workers ORDER BY name`); err != nil {
			log.Printf("❌ Error fetching workers: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch workers")
			return
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"workers": workers,
		})
	}
}

type UpsertWorkerRequest struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	HasOwnCar bool   `json:"has_own_car"`
}

// UpsertWorker creates or updates one entry of the worker info list, keyed by
// name since the planning grid only carries names.
func UpsertWorker(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpsertWorkerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			utils.RespondError(w, http.StatusBadRequest, "Worker name is required")
			return
		}

		log.Printf("📥 Upserting worker: %s", req.Name)

		var worker models.Worker
		err := db.Get(&worker, `
			INSERT INTO workers (id, name, address, phone, company, has_own_car)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (name)
			DO UPDATE SET
				address = EXCLUDED.address,
				phone = EXCLUDED.phone,
				company = EXCLUDED.company,
				has_own_car = EXCLUDED.has_own_car,
				updated_at = EXTRACT(EPOCH FROM NOW())::BIGINT
			RETURNING *`,
			uuid.New().String(), req.Name, req.Address, req.Phone, req.Company, req.HasOwnCar,
		)
		if err != nil {
			log.Printf("❌ Error upserting worker: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to save worker")
			return
		}

		log.Printf("✅ Worker saved: %s", worker.Name)
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"worker":  worker,
		})
	}
}

// DeleteWorker removes one worker from the info list
func DeleteWorker(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		result, err := db.Exec(`DELETE FROM workers WHERE id = $1`, id)
		if err != nil {
			log.Printf("❌ Error deleting worker: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to delete worker")
			return
		}

		rows, _ := result.RowsAffected()
		if rows == 0 {
			utils.RespondError(w, http.StatusNotFound, "Worker not found")
			return
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
		})
	}
}
