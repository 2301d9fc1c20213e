package schedule

import (
	"sort"

	"navette-backend/internal/models"
)

// ProfileLookup resolves a worker name to their profile. Lookups never fail:
// an unknown worker yields a placeholder profile.
type ProfileLookup interface {
	Profile(name string) models.WorkerProfile
}

// ProfileLookupFunc adapts a plain function to ProfileLookup.
type ProfileLookupFunc func(name string) models.WorkerProfile

func (f ProfileLookupFunc) Profile(name string) models.WorkerProfile { return f(name) }

// AdjustHour applies the daylight-saving shift: one hour earlier when
// active. No clamping: a start of 0 becomes -1, which simply matches no
// positive hour filter.
func AdjustHour(hour int, dstActive bool) int {
	if dstActive {
		return hour - 1
	}
	return hour
}

// ClassifyOptions are the caller-supplied filters for one classification
// pass. They are never stored; every pass recomputes from scratch.
type ClassifyOptions struct {
	DSTActive    bool
	Day          string // models.DayAll or one weekday label
	PickupHours  []int
	DropoffHours []int
}

// Classify walks the loaded schedule rows and derives the pickup and
// drop-off event lists. Workers flagged as self-transporting are skipped
// entirely; a row whose cells parse to nothing contributes nothing. One bad
// row never aborts the pass.
//
// Both returned lists are sorted by (weekday order, event hour).
func Classify(rows []Row, dates DateMap, profiles ProfileLookup, opts ClassifyOptions) (pickups, dropoffs []models.DispatchEvent) {
	pickupSet := hourSet(opts.PickupHours)
	dropoffSet := hourSet(opts.DropoffHours)

	days := models.Weekdays
	if opts.Day != models.DayAll {
		days = []string{opts.Day}
	}

	for _, row := range rows {
		profile := profiles.Profile(row.Worker)
		if profile.HasOwnCar {
			continue
		}

		for _, day := range days {
			idx := models.DayIndex(day)
			if idx < 0 {
				continue
			}

			window, ok := ParseShiftCell(row.Cells[idx])
			if !ok {
				continue
			}

			start := AdjustHour(window.Start, opts.DSTActive)
			end := AdjustHour(window.End, opts.DSTActive)

			if pickupSet[start] {
				pickups = append(pickups, models.DispatchEvent{
					Worker:      row.Worker,
					Day:         day,
					Type:        models.TransportPickup,
					Hour:        start,
					DisplayHour: start,
					HourLabel:   models.HourLabelFor(start),
					Address:     profile.Address,
					Phone:       profile.Phone,
					Company:     profile.Company,
					HasOwnCar:   profile.HasOwnCar,
					Date:        dates[day],
				})
			}

			// Drop-offs compare modulo 24 but keep the internal hour >= 24
			// so after-midnight courses order after same-day ones. A
			// DST-shifted end of -1 stays negative and matches no filter.
			displayEnd := end
			if displayEnd >= 24 {
				displayEnd -= 24
			}
			if dropoffSet[displayEnd] {
				dropoffs = append(dropoffs, models.DispatchEvent{
					Worker:      row.Worker,
					Day:         day,
					Type:        models.TransportDropoff,
					Hour:        end,
					DisplayHour: displayEnd,
					HourLabel:   models.HourLabelFor(displayEnd),
					Address:     profile.Address,
					Phone:       profile.Phone,
					Company:     profile.Company,
					HasOwnCar:   profile.HasOwnCar,
					Date:        dates[day],
				})
			}
		}
	}

	SortEvents(pickups)
	SortEvents(dropoffs)
	return pickups, dropoffs
}

// SortEvents orders events by (weekday order, internal event hour). The sort
// is stable, so re-sorting an already sorted list changes nothing.
func SortEvents(events []models.DispatchEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		di, dj := models.DayIndex(events[i].Day), models.DayIndex(events[j].Day)
		if di != dj {
			return di < dj
		}
		return events[i].Hour < events[j].Hour
	})
}

func hourSet(hours []int) map[int]bool {
	set := make(map[int]bool, len(hours))
	for _, h := range hours {
		set[h] = true
	}
	return set
}
