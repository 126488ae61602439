package engine

import (
	"sort"

	"github.com/openfleet/fleetlens/pkg/booking"
)

// Overlap is a pair of bookings for the same vehicle whose intervals
// intersect. Previous is the chronologically preceding booking; Current
// starts before Previous ends.
type Overlap struct {
	VehicleIDNorm string
	Previous      booking.Record
	Current       booking.Record
}

// DetectOverlaps finds double-booked vehicles. Per vehicle, records are
// sorted by start time (source row breaks ties, so repeated runs pair
// identically) and each record is compared against its immediate
// predecessor only. A triple overlap therefore reports two adjacent
// pairs, never a merged (first, third) pair; collapsing them would change
// the reported counts.
func DetectOverlaps(records []booking.Record) []Overlap {
	byVehicle := make(map[string][]booking.Record)
	for _, r := range records {
		if !r.PlatePlausible || !r.IntervalParsed {
			continue
		}
		byVehicle[r.VehicleIDNorm] = append(byVehicle[r.VehicleIDNorm], r)
	}

	plates := make([]string, 0, len(byVehicle))
	for plate := range byVehicle {
		plates = append(plates, plate)
	}
	sort.Strings(plates)

	var overlaps []Overlap
	for _, plate := range plates {
		group := byVehicle[plate]
		sort.Slice(group, func(i, j int) bool {
			if !group[i].StartAt.Equal(group[j].StartAt) {
				return group[i].StartAt.Before(group[j].StartAt)
			}
			return group[i].ID < group[j].ID
		})
		for i := 1; i < len(group); i++ {
			if group[i].StartAt.Before(group[i-1].EndAt) {
				overlaps = append(overlaps, Overlap{
					VehicleIDNorm: plate,
					Previous:      group[i-1],
					Current:       group[i],
				})
			}
		}
	}
	return overlaps
}
