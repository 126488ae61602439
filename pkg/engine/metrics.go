package engine

import (
	"github.com/openfleet/fleetlens/pkg/booking"
	"github.com/openfleet/fleetlens/pkg/config"
)

// Metrics is the aggregate KPI summary over a (possibly filtered) record
// set. It is recomputed on every filter change and never persisted as
// state; pkg/store snapshots it per run.
type Metrics struct {
	TotalTrips int
	TotalHours float64

	// FleetSize is the configured fleet size, or, when the configuration
	// leaves it at zero, the count of distinct plausible normalized
	// plates observed in the record set.
	FleetSize     int
	CapacityHours float64

	OccupancyRate    float64
	CompletionRate   float64
	CancellationRate float64
	OverlapRate      float64
	OverlapCount     int

	StatusCounts map[booking.Status]int
}

// Compute aggregates the cleaned record set into KPIs. Every rate is
// exactly zero when its denominator is zero; no NaN escapes.
func Compute(records []booking.Record, overlaps []Overlap, cap config.CapacityConfig) Metrics {
	m := Metrics{
		StatusCounts: make(map[booking.Status]int),
		OverlapCount: len(overlaps),
		FleetSize:    cap.FleetSize,
	}

	distinct := make(map[string]bool)
	for _, r := range records {
		m.TotalTrips++
		m.TotalHours += r.DurationHours
		m.StatusCounts[r.Status]++
		if r.PlatePlausible {
			distinct[r.VehicleIDNorm] = true
		}
	}

	if m.FleetSize == 0 {
		m.FleetSize = len(distinct)
	}
	m.CapacityHours = float64(m.FleetSize) * float64(cap.PeriodDays) * float64(cap.HoursPerDay)

	if m.CapacityHours > 0 {
		m.OccupancyRate = m.TotalHours / m.CapacityHours * 100
	}
	if m.TotalTrips > 0 {
		completed := m.StatusCounts[booking.StatusApproved] + m.StatusCounts[booking.StatusClosed]
		cancelled := m.StatusCounts[booking.StatusCancelled] + m.StatusCounts[booking.StatusRejected]
		m.CompletionRate = float64(completed) / float64(m.TotalTrips) * 100
		m.CancellationRate = float64(cancelled) / float64(m.TotalTrips) * 100
		m.OverlapRate = float64(m.OverlapCount) / float64(m.TotalTrips) * 100
	}
	return m
}
