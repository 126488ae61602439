package booking

import (
	"strings"
	"time"

	"github.com/openfleet/fleetlens/pkg/schema"
)

// Status is the canonical request status of a trip.
type Status string

const (
	StatusApproved  Status = "Approved"
	StatusClosed    Status = "Closed"
	StatusCancelled Status = "Cancelled"
	StatusRejected  Status = "Rejected"
	StatusUnknown   Status = "Unknown"
)

// ScopeClass classifies a trip by route reach.
type ScopeClass string

const (
	ScopeLocal     ScopeClass = "Local"
	ScopeIntercity ScopeClass = "Intercity"
)

// SessionClass classifies a trip by booked duration.
type SessionClass string

const (
	SessionHalfDay SessionClass = "HalfDay"
	SessionFullDay SessionClass = "FullDay"
)

// Record is one trip. It is created by the record builder, enriched in
// place by the directory join, and read-only afterwards.
type Record struct {
	// ID is the 1-based source row number inside the booking sheet. It is
	// stable across runs and breaks start-time ties in overlap detection.
	ID int

	VehicleIDRaw  string
	VehicleIDNorm string
	// PlatePlausible is false for empty cells and values that fail the
	// plausibility checks; such rows stay in count aggregates but are
	// excluded from vehicle-keyed ones.
	PlatePlausible bool

	StartAt time.Time
	EndAt   time.Time
	// IntervalParsed is false when either endpoint failed to parse; the
	// duration is then zero and the row is excluded from hour aggregates.
	IntervalParsed bool
	DurationHours  float64

	Requester  string
	Driver     string
	Department string
	Company    string
	Site       string
	RouteText  string

	Scope   ScopeClass
	Session SessionClass
	Status  Status

	Cost       float64
	DistanceKm float64

	// FleetOwned is true when the vehicle belongs to the fleet rather
	// than being an ad hoc rental; set by the directory join.
	FleetOwned bool
}

// ParseStatus maps free-text request statuses (Vietnamese or English)
// onto the canonical set. Unmatched text is Unknown, never an error.
func ParseStatus(raw string) Status {
	s := schema.FoldText(raw)
	if s == "" {
		return StatusUnknown
	}
	switch {
	case strings.Contains(s, "huy") || strings.Contains(s, "cancel"):
		return StatusCancelled
	case strings.Contains(s, "tu choi") || strings.Contains(s, "reject"):
		return StatusRejected
	case strings.Contains(s, "hoan thanh") || strings.Contains(s, "da dong") ||
		strings.Contains(s, "close") || strings.Contains(s, "complete") || strings.Contains(s, "done"):
		return StatusClosed
	case strings.Contains(s, "duyet") || strings.Contains(s, "approve") || strings.Contains(s, "confirm"):
		return StatusApproved
	}
	return StatusUnknown
}
