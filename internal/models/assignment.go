package models

// TransportType distinguishes the two kinds of course.
type TransportType string

const (
	TransportPickup  TransportType = "Pickup"  // ramassage: shift start
	TransportDropoff TransportType = "Dropoff" // départ: shift end
)

// Payment statuses. Every new assignment starts unpaid.
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// Assignment is one driver-to-worker course booking. It is the only durable
// entity: the full set of assignments is the ledger persisted across
// sessions.
type Assignment struct {
	ID            string        `json:"id" db:"id"`
	Driver        string        `json:"driver" db:"driver"`
	HourLabel     string        `json:"hour_label" db:"hour_label"`
	Worker        string        `json:"worker" db:"worker"`
	Address       string        `json:"address" db:"address"`
	Phone         string        `json:"phone" db:"phone"`
	Company       string        `json:"company" db:"company"`
	Type          TransportType `json:"transport_type" db:"transport_type"`
	Day           string        `json:"day" db:"day"`
	CourseDate    string        `json:"course_date" db:"course_date"`
	UnitPrice     float64       `json:"unit_price" db:"unit_price"`
	PaymentStatus string        `json:"payment_status" db:"payment_status"`
	CreatedAt     int64         `json:"created_at" db:"created_at"`
}
