package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"navette-backend/internal/models"
)

func TestResolveUnitPrice(t *testing.T) {
	prices := Prices{Standard: 25, Taxi: 40}

	assert.Equal(t, 25.0, ResolveUnitPrice("Karim", nil, prices))
	assert.Equal(t, 40.0, ResolveUnitPrice("Taxi Jaune", nil, prices))
	assert.Equal(t, 40.0, ResolveUnitPrice("M. Durand (TAXI)", nil, prices))

	explicit := 12.5
	assert.Equal(t, 12.5, ResolveUnitPrice("Taxi Jaune", &explicit, prices))
}

func TestValidateBatch(t *testing.T) {
	complete := models.WorkerProfile{Name: "A", Address: "x", Phone: "y", Company: "z"}
	incomplete := models.ProfileFromWorker(models.Worker{Name: "B", Address: "x"})
	unknown := models.UnknownProfile("C")

	assert.Empty(t, ValidateBatch([]models.WorkerProfile{complete}))
	assert.Equal(t, []string{"B", "C"}, ValidateBatch([]models.WorkerProfile{complete, incomplete, unknown}))
}

func TestProfileMissingFields(t *testing.T) {
	p := models.ProfileFromWorker(models.Worker{Name: "B", Address: "x"})
	assert.False(t, p.Complete())
	assert.Equal(t, []string{"phone", "company"}, p.Missing)
	// Placeholders stand in for the missing values so display keeps working.
	assert.Equal(t, models.PlaceholderPhone, p.Phone)
	assert.Equal(t, models.PlaceholderCompany, p.Company)
	assert.Equal(t, "x", p.Address)
}

func TestAppendOutcomeOk(t *testing.T) {
	assert.True(t, AppendOutcome{Records: []models.Assignment{{}}}.Ok())
	assert.False(t, AppendOutcome{IncompleteWorkers: []string{"A"}}.Ok())
	assert.False(t, AppendOutcome{AlreadyAssigned: []string{"A"}}.Ok())
}

func TestFilterAvailable(t *testing.T) {
	events := []models.DispatchEvent{
		{Worker: "A"}, {Worker: "B"}, {Worker: "C"},
	}

	available := FilterAvailable(events, map[string]bool{"B": true})
	assert.Len(t, available, 2)
	assert.Equal(t, "A", available[0].Worker)
	assert.Equal(t, "C", available[1].Worker)

	assert.Equal(t, events, FilterAvailable(events, nil))
	assert.Empty(t, FilterAvailable(nil, nil))
}
