package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"navette-backend/internal/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Standalone maintenance runner: applies the schema and optionally bulk-loads
// a worker info list from a JSON file (first argument).
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := database.Connect(dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully")

	if len(os.Args) > 1 {
		workersPath := os.Args[1]
		data, err := os.ReadFile(workersPath)
		if err != nil {
			log.Fatalf("Failed to read worker list: %v", err)
		}

		var workers []struct {
			Name      string `json:"name"`
			Address   string `json:"address"`
			Phone     string `json:"phone"`
			Company   string `json:"company"`
			HasOwnCar bool   `json:"has_own_car"`
		}
		if err := json.Unmarshal(data, &workers); err != nil {
			log.Fatalf("Failed to parse worker list: %v", err)
		}

		log.Printf("Loading %d workers from %s", len(workers), workersPath)
		for _, w := range workers {
			if w.Name == "" {
				continue
			}
			_, err := db.Exec(`
				INSERT INTO workers (id, name, address, phone, company, has_own_car)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (name)
				DO UPDATE SET
					address = EXCLUDED.address,
					phone = EXCLUDED.phone,
					company = EXCLUDED.company,
					has_own_car = EXCLUDED.has_own_car,
					updated_at = EXTRACT(EPOCH FROM NOW())::BIGINT`,
				uuid.New().String(), w.Name, w.Address, w.Phone, w.Company, w.HasOwnCar,
			)
			if err != nil {
				log.Fatalf("Failed to upsert worker %s: %v", w.Name, err)
			}
		}
	}

	var summary struct {
		Workers     int `db:"workers"`
		Incomplete  int `db:"incomplete"`
		Drivers     int `db:"drivers"`
		Assignments int `db:"assignments"`
	}

	query := `
		SELECT
			(SELECT COUNT(*) FROM workers) AS workers,
			(SELECT COUNT(*) FROM workers
				WHERE address = '' OR phone = '' OR company = '') AS incomplete,
			(SELECT COUNT(*) FROM drivers) AS drivers,
			(SELECT COUNT(*) FROM assignments) AS assignments
	`
	if err := db.Get(&summary, query); err != nil {
		log.Fatalf("Failed to query summary: %v", err)
	}

	fmt.Println("\n============================================================")
	fmt.Println("DATABASE SUMMARY")
	fmt.Println("============================================================")
	fmt.Printf("Workers:                 %d\n", summary.Workers)
	fmt.Printf("Incomplete profiles:     %d\n", summary.Incomplete)
	fmt.Printf("Drivers:                 %d\n", summary.Drivers)
	fmt.Printf("Ledger entries:          %d\n", summary.Assignments)
	fmt.Println("============================================================")
}
