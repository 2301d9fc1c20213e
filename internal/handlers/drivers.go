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

// GetDrivers returns the shuttle driver roster
func GetDrivers(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		drivers := []models.Driver{}
		if err := db.Select(&drivers, `SELECT * FROM drivers ORDER BY name`); err != nil {
			log.Printf("❌ Error fetching drivers: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch drivers")
			return
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"drivers": drivers,
		})
	}
}

type CreateDriverRequest struct {
	Name    string `json:"name"`
	Vehicle string `json:"vehicle"`
}

// CreateDriver adds a driver to the roster. A name containing "taxi" marks a
// taxi partner and switches the driver to the taxi rate.
func CreateDriver(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateDriverRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			utils.RespondError(w, http.StatusBadRequest, "Driver name is required")
			return
		}

		driver := models.Driver{
			ID:      uuid.New().String(),
			Name:    req.Name,
			Vehicle: req.Vehicle,
		}

		err := db.Get(&driver, `
			INSERT INTO drivers (id, name, vehicle) VALUES ($1, $2, $3)
			RETURNING *`,
			driver.ID, driver.Name, driver.Vehicle,
		)
		if err != nil {
			log.Printf("❌ Error creating driver: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create driver")
			return
		}

		log.Printf("✅ Driver created: %s (taxi: %v)", driver.Name, models.IsTaxiDriver(driver.Name))
		utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"driver":  driver,
		})
	}
}

// DeleteDriver removes a driver from the roster
func DeleteDriver(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		result, err := db.Exec(`DELETE FROM drivers WHERE id = $1`, id)
		if err != nil {
			log.Printf("❌ Error deleting driver: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to delete driver")
			return
		}

		rows, _ := result.RowsAffected()
		if rows == 0 {
			utils.RespondError(w, http.StatusNotFound, "Driver not found")
			return
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
		})
	}
}

type RegisterDeviceTokenRequest struct {
	DriverName string `json:"driver_name"`
	Token      string `json:"token"`
	DeviceType string `json:"device_type"`
}

// RegisterDeviceToken stores an FCM device token for a driver so course
// notifications can reach their phone.
func RegisterDeviceToken(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterDeviceTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.DriverName == "" || req.Token == "" {
			utils.RespondError(w, http.StatusBadRequest, "driver_name and token are required")
			return
		}
		if req.DeviceType != "ios" && req.DeviceType != "android" {
			utils.RespondError(w, http.StatusBadRequest, "device_type must be 'ios' or 'android'")
			return
		}

		_, err := db.Exec(`
			INSERT INTO driver_tokens (driver_name, token, device_type)
			VALUES ($1, $2, $3)
			ON CONFLICT (token)
			DO UPDATE SET
				driver_name = EXCLUDED.driver_name,
				device_type = EXCLUDED.device_type,
				updated_at = EXTRACT(EPOCH FROM NOW())::BIGINT`,
			req.DriverName, req.Token, req.DeviceType,
		)
		if err != nil {
			log.Printf("❌ Error registering device token: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to register device token")
			return
		}

		log.Printf("✅ Device token registered for driver %s (%s)", req.DriverName, req.DeviceType)
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
		})
	}
}

// DriverTokens returns all registered device tokens for one driver name
func DriverTokens(db *sqlx.DB, driverName string) ([]string, error) {
	tokens := []string{}
	err := db.Select(&tokens, `SELECT token FROM driver_tokens WHERE driver_name = $1`, driverName)
	return tokens, err
}
