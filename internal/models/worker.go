package models

// Worker is a staff member appearing on the weekly schedule.
// Address/phone/company come from the dispatcher-maintained info list and
// may be empty until completed.
type Worker struct {
	ID        string `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	Address   string `json:"address" db:"address"`
	Phone     string `json:"phone" db:"phone"`
	Company   string `json:"company" db:"company"`
	HasOwnCar bool   `json:"has_own_car" db:"has_own_car"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
	UpdatedAt int64  `json:"updated_at" db:"updated_at"`
}

// Display placeholders used when a worker has no usable profile data.
// Kept in French to match the wire format the dispatch sheets always used.
const (
	PlaceholderAddress = "Adresse non renseignée"
	PlaceholderPhone   = "Tél non renseigné"
	PlaceholderCompany = "Société non renseignée"
)

// WorkerProfile is the resolved profile for one worker. Missing lists the
// field names that have no value; an empty Missing means the profile is
// complete. Callers branch on Complete() instead of comparing placeholder
// strings.
type WorkerProfile struct {
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Phone     string   `json:"phone"`
	Company   string   `json:"company"`
	HasOwnCar bool     `json:"has_own_car"`
	Missing   []string `json:"missing,omitempty"`
}

// Complete reports whether every required profile field has a value.
func (p WorkerProfile) Complete() bool {
	return len(p.Missing) == 0
}

// ProfileFromWorker builds the profile for a known worker row, recording
// which required fields are still empty.
func ProfileFromWorker(w Worker) WorkerProfile {
	p := WorkerProfile{
		Name:      w.Name,
		Address:   w.Address,
		Phone:     w.Phone,
		Company:   w.Company,
		HasOwnCar: w.HasOwnCar,
	}
	if w.Address == "" {
		p.Address = PlaceholderAddress
		p.Missing = append(p.Missing, "address")
	}
	if w.Phone == "" {
		p.Phone = PlaceholderPhone
		p.Missing = append(p.Missing, "phone")
	}
	if w.Company == "" {
		p.Company = PlaceholderCompany
		p.Missing = append(p.Missing, "company")
	}
	return p
}

// UnknownProfile is the profile used when a worker has no row at all.
// Classification keeps going with placeholders; only the ledger treats the
// missing fields as blocking.
func UnknownProfile(name string) WorkerProfile {
	return WorkerProfile{
		Name:    name,
		Address: PlaceholderAddress,
		Phone:   PlaceholderPhone,
		Company: PlaceholderCompany,
		Missing: []string{"address", "phone", "company"},
	}
}
