package models

import "strings"

// Driver is a member of the shuttle roster a dispatcher can assign courses
// to. Vehicle is free text from the info list.
type Driver struct {
	ID        string `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	Vehicle   string `json:"vehicle" db:"vehicle"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
}

// IsTaxiDriver reports whether a driver is billed at the taxi rate. The
// roster marks taxis by name ("Taxi Jaune", "M. Durand (taxi)"), so the
// check is a case-insensitive substring match.
func IsTaxiDriver(name string) bool {
	return strings.Contains(strings.ToLower(name), "taxi")
}
