package models

import "fmt"

// DispatchEvent is one pickup or drop-off requirement derived from the
// loaded schedule. Events are recomputed on every classification pass and
// never persisted.
//
// Hour is the internal event hour: for a drop-off after midnight it stays
// >= 24 so next-day courses sort after same-day ones. DisplayHour is always
// 0-23.
type DispatchEvent struct {
	Worker      string        `json:"worker"`
	Day         string        `json:"day"`
	Type        TransportType `json:"transport_type"`
	Hour        int           `json:"hour"`
	DisplayHour int           `json:"display_hour"`
	HourLabel   string        `json:"hour_label"`
	Address     string        `json:"address"`
	Phone       string        `json:"phone"`
	Company     string        `json:"company"`
	HasOwnCar   bool          `json:"has_own_car"`
	Date        string        `json:"date"`
}

// HourLabelFor formats an hour the way dispatch sheets write it ("7h").
func HourLabelFor(hour int) string {
	return fmt.Sprintf("%dh", hour)
}
