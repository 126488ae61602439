package engine

import (
	"time"

	"github.com/openfleet/fleetlens/pkg/booking"
)

// Filter restricts the record set before KPI recomputation, mirroring the
// dashboard sidebar: a start-date window and a plate allow-list. Zero
// times mean unbounded; an empty plate list means all vehicles.
type Filter struct {
	From   time.Time
	To     time.Time
	Plates []string
}

// Apply returns the records matching the filter. Date bounds compare the
// trip's start date; records without a parsed interval cannot satisfy a
// date bound and are excluded while one is set.
func Apply(records []booking.Record, f Filter) []booking.Record {
	dateBound := !f.From.IsZero() || !f.To.IsZero()
	allow := make(map[string]bool, len(f.Plates))
	for _, p := range f.Plates {
		allow[p] = true
	}

	var out []booking.Record
	for _, r := range records {
		if dateBound {
			if !r.IntervalParsed {
				continue
			}
			day := r.StartAt.Truncate(24 * time.Hour)
			if !f.From.IsZero() && day.Before(f.From.Truncate(24*time.Hour)) {
				continue
			}
			if !f.To.IsZero() && day.After(f.To.Truncate(24*time.Hour)) {
				continue
			}
		}
		if len(allow) > 0 && !allow[r.VehicleIDNorm] {
			continue
		}
		out = append(out, r)
	}
	return out
}
