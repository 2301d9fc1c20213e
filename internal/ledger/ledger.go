package ledger

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"navette-backend/internal/models"
)

// Prices holds the configured unit prices per driver category.
type Prices struct {
	Standard float64
	Taxi     float64
}

// ResolveUnitPrice picks the price for one assignment batch: an explicit
// price always wins, otherwise taxi drivers get the taxi rate and everyone
// else the standard rate.
func ResolveUnitPrice(driver string, explicit *float64, prices Prices) float64 {
	if explicit != nil {
		return *explicit
	}
	if models.IsTaxiDriver(driver) {
		return prices.Taxi
	}
	return prices.Standard
}

// Ledger owns the durable set of assignment records. It is handed explicitly
// to every handler that mutates or reads assignments; persistence is the
// assignments table behind the sqlx handle.
type Ledger struct {
	db *sqlx.DB

	// RequireCompleteProfiles escalates missing worker profile fields from a
	// display concern to a blocking validation failure on append.
	RequireCompleteProfiles bool
}

// New builds a ledger over the given database handle.
func New(db *sqlx.DB, requireCompleteProfiles bool) *Ledger {
	return &Ledger{db: db, RequireCompleteProfiles: requireCompleteProfiles}
}

// AppendRequest is one batch booking: a driver takes the listed workers at
// one hour on one weekday, as pickup or drop-off.
type AppendRequest struct {
	Driver        string
	HourLabel     string
	Workers       []string
	Type          models.TransportType
	Day           string
	CourseDate    string
	ExplicitPrice *float64
}

// AppendOutcome reports what happened to an append. Exactly one of the three
// shapes occurs: Records set (success), IncompleteWorkers set (profiles need
// completion first), or AlreadyAssigned set (hard uniqueness: a worker can
// hold at most one active assignment).
type AppendOutcome struct {
	Records           []models.Assignment
	IncompleteWorkers []string
	AlreadyAssigned   []string
}

// Ok reports whether the append wrote records.
func (o AppendOutcome) Ok() bool {
	return len(o.IncompleteWorkers) == 0 && len(o.AlreadyAssigned) == 0
}

// ValidateBatch checks the worker profiles of a batch and returns the names
// whose required fields are missing. Pure: callers feed it resolved
// profiles.
func ValidateBatch(profiles []models.WorkerProfile) []string {
	var incomplete []string
	for _, p := range profiles {
		if !p.Complete() {
			incomplete = append(incomplete, p.Name)
		}
	}
	return incomplete
}

// Append books one batch. No partial writes: any incomplete profile (when
// required) or already-assigned worker rejects the whole batch and writes
// nothing. On success one record per worker is inserted in a single
// transaction.
func (l *Ledger) Append(req AppendRequest, profiles []models.WorkerProfile, prices Prices) (AppendOutcome, error) {
	if req.Driver == "" || req.HourLabel == "" || len(req.Workers) == 0 {
		return AppendOutcome{}, fmt.Errorf("driver, hour and at least one worker are required")
	}
	if len(profiles) != len(req.Workers) {
		return AppendOutcome{}, fmt.Errorf("profile count %d does not match worker count %d", len(profiles), len(req.Workers))
	}

	if l.RequireCompleteProfiles {
		if incomplete := ValidateBatch(profiles); len(incomplete) > 0 {
			return AppendOutcome{IncompleteWorkers: incomplete}, nil
		}
	}

	var taken []string
	query := `SELECT DISTINCT worker FROM assignments WHERE worker = ANY($1)`
	if err := l.db.Select(&taken, query, pq.Array(req.Workers)); err != nil {
		return AppendOutcome{}, fmt.Errorf("failed to check existing assignments: %w", err)
	}
	if len(taken) > 0 {
		return AppendOutcome{AlreadyAssigned: taken}, nil
	}

	price := ResolveUnitPrice(req.Driver, req.ExplicitPrice, prices)
	now := time.Now().Unix()

	tx, err := l.db.Beginx()
	if err != nil {
		return AppendOutcome{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	records := make([]models.Assignment, 0, len(req.Workers))
	for i, worker := range req.Workers {
		profile := profiles[i]
		record := models.Assignment{
			ID:            uuid.New().String(),
			Driver:        req.Driver,
			HourLabel:     req.HourLabel,
			Worker:        worker,
			Address:       profile.Address,
			Phone:         profile.Phone,
			Company:       profile.Company,
			Type:          req.Type,
			Day:           req.Day,
			CourseDate:    req.CourseDate,
			UnitPrice:     price,
			PaymentStatus: models.PaymentStatusUnpaid,
			CreatedAt:     now,
		}

		_, err := tx.NamedExec(`
			INSERT INTO assignments (
				id, driver, hour_label, worker, address, phone, company,
				transport_type, day, course_date, unit_price, payment_status, created_at
			) VALUES (
				:id, :driver, :hour_label, :worker, :address, :phone, :company,
				:transport_type, :day, :course_date, :unit_price, :payment_status, :created_at
			)
		`, record)
		if err != nil {
			return AppendOutcome{}, fmt.Errorf("failed to insert assignment for %s: %w", worker, err)
		}
		records = append(records, record)
	}

	if err := tx.Commit(); err != nil {
		return AppendOutcome{}, fmt.Errorf("failed to commit assignments: %w", err)
	}

	return AppendOutcome{Records: records}, nil
}

// Remove deletes exactly one record by ID. Returns false when no record had
// that ID.
func (l *Ledger) Remove(id string) (bool, error) {
	res, err := l.db.Exec(`DELETE FROM assignments WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete assignment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Clear empties the ledger.
func (l *Ledger) Clear() (int64, error) {
	res, err := l.db.Exec(`DELETE FROM assignments`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear assignments: %w", err)
	}
	return res.RowsAffected()
}

// List returns every assignment, oldest first. An empty ledger is an empty
// list, never an error.
func (l *Ledger) List() ([]models.Assignment, error) {
	records := []models.Assignment{}
	err := l.db.Select(&records, `SELECT * FROM assignments ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return records, nil
}

// AssignedWorkers returns the set of workers currently holding an
// assignment. Used as the read-side filter for "available workers".
func (l *Ledger) AssignedWorkers() (map[string]bool, error) {
	var names []string
	if err := l.db.Select(&names, `SELECT DISTINCT worker FROM assignments`); err != nil {
		return nil, fmt.Errorf("failed to list assigned workers: %w", err)
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set, nil
}

// UpdatePaymentStatus sets the free-text payment status of one record.
func (l *Ledger) UpdatePaymentStatus(id, status string) (bool, error) {
	res, err := l.db.Exec(`UPDATE assignments SET payment_status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return false, fmt.Errorf("failed to update payment status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Get fetches one record by ID.
func (l *Ledger) Get(id string) (*models.Assignment, error) {
	var record models.Assignment
	err := l.db.Get(&record, `SELECT * FROM assignments WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	return &record, nil
}

// FilterAvailable removes already-assigned workers from an event list.
func FilterAvailable(events []models.DispatchEvent, assigned map[string]bool) []models.DispatchEvent {
	available := make([]models.DispatchEvent, 0, len(events))
	for _, ev := range events {
		if !assigned[ev.Worker] {
			available = append(available, ev)
		}
	}
	return available
}
