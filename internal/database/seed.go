package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// SeedUsers creates the default dispatcher and admin accounts if the users
// table is empty.
func SeedUsers(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM users`); err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		log.Println("ℹ️  Users already seeded, skipping")
		return nil
	}

	users := []struct {
		Email    string
		Password string
		Name     string
		Role     string
	}{
		{"dispatcher@navette.local", "dispatcher123", "Dispatcher", "dispatcher"},
		{"admin@navette.local", "admin123", "Admin", "admin"},
	}

	for _, u := range users {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", u.Email, err)
		}

		_, err = db.Exec(
			`INSERT INTO users (id, email, password, name, role) VALUES ($1, $2, $3, $4, $5)`,
			uuid.New().String(), u.Email, string(hashed), u.Name, u.Role,
		)
		if err != nil {
			return fmt.Errorf("failed to insert user %s: %w", u.Email, err)
		}
		log.Printf("✅ Seeded user %s (%s)", u.Email, u.Role)
	}

	return nil
}

// SeedDrivers inserts a handful of demo shuttle drivers, including one taxi
// partner so the taxi rate path is exercised out of the box.
func SeedDrivers(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM drivers`); err != nil {
		return fmt.Errorf("failed to count drivers: %w", err)
	}
	if count > 0 {
		log.Println("ℹ️  Drivers already seeded, skipping")
		return nil
	}

	drivers := []struct {
		Name    string
		Vehicle string
	}{
		{"Karim", "Renault Trafic"},
		{"Ali", "Peugeot Expert"},
		{"Taxi Jaune", "Skoda Octavia"},
	}

	for _, d := range drivers {
		_, err := db.Exec(
			`INSERT INTO drivers (id, name, vehicle) VALUES ($1, $2, $3)`,
			uuid.New().String(), d.Name, d.Vehicle,
		)
		if err != nil {
			return fmt.Errorf("failed to insert driver %s: %w", d.Name, err)
		}
	}

	log.Printf("✅ Seeded %d drivers", len(drivers))
	return nil
}
