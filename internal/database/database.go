package database

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"navette-backend/internal/models"
)

func Connect(dbURL string) (*sqlx.DB, error) {
	log.Println("🔌 Connecting to database...")

	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("✅ Database connection established")
	return db, nil
}

func Migrate(db *sqlx.DB) error {
	migrations := []string{
		// Dispatcher accounts
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			name TEXT NOT NULL,
			role TEXT NOT NULL CHECK(role IN ('dispatcher', 'admin')),
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Worker info list (address/phone/company per staff member)
		`CREATE TABLE IF NOT EXISTS workers (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			address TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			company TEXT NOT NULL DEFAULT '',
			has_own_car BOOLEAN NOT NULL DEFAULT FALSE,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Shuttle driver roster
		`CREATE TABLE IF NOT EXISTS drivers (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			vehicle TEXT NOT NULL DEFAULT '',
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// The assignment ledger: the durable state of the system
		`CREATE TABLE IF NOT EXISTS assignments (
			id TEXT PRIMARY KEY,
			driver TEXT NOT NULL,
			hour_label TEXT NOT NULL,
			worker TEXT NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			company TEXT NOT NULL DEFAULT '',
			transport_type TEXT NOT NULL CHECK(transport_type IN ('Pickup', 'Dropoff')),
			day TEXT NOT NULL,
			course_date TEXT NOT NULL,
			unit_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			payment_status TEXT NOT NULL DEFAULT 'unpaid',
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// FCM device tokens per driver, for course-assigned notifications
		`CREATE TABLE IF NOT EXISTS driver_tokens (
			id SERIAL PRIMARY KEY,
			driver_name TEXT NOT NULL,
			token TEXT NOT NULL UNIQUE,
			device_type TEXT NOT NULL CHECK(device_type IN ('ios', 'android')),
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		`CREATE INDEX IF NOT EXISTS idx_assignments_worker ON assignments(worker)`,
		`CREATE INDEX IF NOT EXISTS idx_assignments_day ON assignments(day)`,
		`CREATE INDEX IF NOT EXISTS idx_driver_tokens_name ON driver_tokens(driver_name)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}

// ProfileStore resolves worker profiles out of the workers table. It is the
// single profile source shared by classification and the ledger, so the two
// can never disagree about a worker.
type ProfileStore struct {
	db *sqlx.DB
}

func NewProfileStore(db *sqlx.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// Profile returns the resolved profile for one worker name. An unknown name
// yields a placeholder profile, never an error: one missing info row must
// not abort a classification pass.
func (s *ProfileStore) Profile(name string) models.WorkerProfile {
	var worker models.Worker
	err := s.db.Get(&worker, `SELECT * FROM workers WHERE name = $1`, name)
	if err != nil {
		return models.UnknownProfile(name)
	}
	return models.ProfileFromWorker(worker)
}

// Profiles resolves a batch of names in request order.
func (s *ProfileStore) Profiles(names []string) []models.WorkerProfile {
	profiles := make([]models.WorkerProfile, len(names))
	for i, name := range names {
		profiles[i] = s.Profile(name)
	}
	return profiles
}
