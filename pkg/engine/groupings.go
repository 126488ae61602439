package engine

import (
	"sort"

	"github.com/openfleet/fleetlens/pkg/booking"
)

// The groupings below feed the presentation layer's charts and the report
// export: monthly usage, per-vehicle frequency, heaviest requesters and
// cost by department.

// VehicleUsage is a per-plate trip count.
type VehicleUsage struct {
	PlateNorm string
	Trips     int
}

// RequesterUsage is a per-person booked-hours total.
type RequesterUsage struct {
	Name  string
	Hours float64
}

// HoursByMonth buckets booked hours by the trip's start month (YYYY-MM).
// Rows without a parsed interval carry zero hours and no month, so they
// are skipped.
func HoursByMonth(records []booking.Record) map[string]float64 {
	out := make(map[string]float64)
	for _, r := range records {
		if !r.IntervalParsed {
			continue
		}
		out[r.StartAt.Format("2006-01")] += r.DurationHours
	}
	return out
}

// TopVehiclesByTrips returns the n busiest plates by trip count,
// descending, ties broken alphabetically for stable output.
func TopVehiclesByTrips(records []booking.Record, n int) []VehicleUsage {
	counts := make(map[string]int)
	for _, r := range records {
		if r.PlatePlausible {
			counts[r.VehicleIDNorm]++
		}
	}
	out := make([]VehicleUsage, 0, len(counts))
	for plate, c := range counts {
		out = append(out, VehicleUsage{PlateNorm: plate, Trips: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Trips != out[j].Trips {
			return out[i].Trips > out[j].Trips
		}
		return out[i].PlateNorm < out[j].PlateNorm
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// TopRequestersByHours returns the n heaviest users by booked hours.
func TopRequestersByHours(records []booking.Record, n int) []RequesterUsage {
	hours := make(map[string]float64)
	for _, r := range records {
		if r.Requester == "" {
			continue
		}
		hours[r.Requester] += r.DurationHours
	}
	out := make([]RequesterUsage, 0, len(hours))
	for name, h := range hours {
		out = append(out, RequesterUsage{Name: name, Hours: h})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Hours != out[j].Hours {
			return out[i].Hours > out[j].Hours
		}
		return out[i].Name < out[j].Name
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// CostByDepartment sums trip cost per department.
func CostByDepartment(records []booking.Record) map[string]float64 {
	out := make(map[string]float64)
	for _, r := range records {
		if r.Cost > 0 {
			out[r.Department] += r.Cost
		}
	}
	return out
}

// CountsByStatus tallies records per canonical status.
func CountsByStatus(records []booking.Record) map[booking.Status]int {
	out := make(map[booking.Status]int)
	for _, r := range records {
		out[r.Status]++
	}
	return out
}
