package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShiftCell(t *testing.T) {
	tests := []struct {
		name  string
		cell  string
		want  ShiftWindow
		found bool
	}{
		{"day shift", "7h-16h", ShiftWindow{7, 16}, true},
		{"night shift crosses midnight", "22h-6h", ShiftWindow{22, 30}, true},
		{"separator à", "7h à 16h", ShiftWindow{7, 16}, true},
		{"no hour marker", "7-16", ShiftWindow{7, 16}, true},
		{"minutes ignored", "7h30-16h15", ShiftWindow{7, 16}, true},
		{"noise around range", "Matin 7h-16h (équipe A)", ShiftWindow{7, 16}, true},
		{"short next-morning shift", "23h-1h", ShiftWindow{23, 25}, true},
		{"empty", "", ShiftWindow{}, false},
		{"rest day", "REPOS", ShiftWindow{}, false},
		{"absence", "ABSENCE", ShiftWindow{}, false},
		{"off", "OFF", ShiftWindow{}, false},
		{"sick leave", "MALADIE", ShiftWindow{}, false},
		{"paid leave", "CONGÉ PAYÉ", ShiftWindow{}, false},
		{"maternity leave", "CONGÉ MATERNITÉ", ShiftWindow{}, false},
		{"lowercase repos is not a marker and has no hours", "repos", ShiftWindow{}, false},
		{"free text without range", "formation", ShiftWindow{}, false},
		{"single hour is not a range", "7h", ShiftWindow{}, false},
		{"end before start in afternoon discarded", "23h-12h", ShiftWindow{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseShiftCell(tt.cell)
			require.Equal(t, tt.found, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseShiftCellFirstMatchWins(t *testing.T) {
	// Two candidate ranges in one cell: the first one is the shift.
	got, ok := ParseShiftCell("7h-16h puis 18h-20h")
	require.True(t, ok)
	assert.Equal(t, ShiftWindow{7, 16}, got)
}

func TestShiftWindowCrossesMidnight(t *testing.T) {
	w, ok := ParseShiftCell("22h-6h")
	require.True(t, ok)
	assert.True(t, w.CrossesMidnight())

	w, ok = ParseShiftCell("7h-16h")
	require.True(t, ok)
	assert.False(t, w.CrossesMidnight())
}
