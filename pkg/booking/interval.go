package booking

import (
	"strconv"
	"strings"
	"time"

	"github.com/openfleet/fleetlens/pkg/config"
	"github.com/openfleet/fleetlens/pkg/schema"
	"github.com/openfleet/fleetlens/pkg/sheet"
)

// BuildStats counts the row-level recoveries made while building records.
// Nothing is dropped silently; every recovery is observable here.
type BuildStats struct {
	RowsTotal           int
	RowsUnparseable     int
	RowsMissingVehicle  int
	IdentifiersRejected int
}

// excel serial day zero (the 1900 date system, with its phantom leap day
// already absorbed).
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2006/01/02",
	"02.01.2006",
	"2006-01-02 15:04:05",
	"01-02-06",
}

var clockLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04:05 PM",
}

// BuildRecords turns the booking sheet's data region into typed records:
// date and time cells are combined into start/end instants, overnight
// rollovers are corrected, and the duration is derived. Malformed cells
// degrade the affected row, never the run.
func BuildRecords(s sheet.RawSheet, headerRow int, cols schema.ColumnMap, rules config.RuleConfig) ([]Record, BuildStats) {
	var records []Record
	var stats BuildStats

	for i := headerRow + 1; i < len(s.Rows); i++ {
		row := s.Rows[i]
		if emptyRow(row) {
			continue
		}
		stats.RowsTotal++

		rec := Record{ID: i + 1}

		rec.VehicleIDRaw = strings.TrimSpace(cell(row, cols, schema.FieldVehicleID))
		rec.VehicleIDNorm = schema.NormalizePlate(rec.VehicleIDRaw)
		switch {
		case rec.VehicleIDRaw == "":
			stats.RowsMissingVehicle++
		case !schema.PlausiblePlate(rec.VehicleIDRaw):
			stats.IdentifiersRejected++
		default:
			rec.PlatePlausible = true
		}

		rec.Requester = strings.TrimSpace(cell(row, cols, schema.FieldRequesterName))
		rec.Driver = strings.TrimSpace(cell(row, cols, schema.FieldDriverName))
		rec.Department = strings.TrimSpace(cell(row, cols, schema.FieldDepartment))
		rec.Company = strings.TrimSpace(cell(row, cols, schema.FieldCompany))
		rec.Site = strings.TrimSpace(cell(row, cols, schema.FieldSite))
		rec.RouteText = strings.TrimSpace(cell(row, cols, schema.FieldRouteText))
		rec.Status = ParseStatus(cell(row, cols, schema.FieldRequestStatus))
		rec.Cost = parseNumber(cell(row, cols, schema.FieldCost))
		rec.DistanceKm = parseNumber(cell(row, cols, schema.FieldDistanceKm))
		rec.Scope = classifyScope(rec.RouteText, rules.IntercityKeywords)

		date, dateOK := parseDate(cell(row, cols, schema.FieldTripDate))
		start, startOK := parseClock(cell(row, cols, schema.FieldStartTime))
		end, endOK := parseClock(cell(row, cols, schema.FieldEndTime))

		if dateOK && startOK && endOK {
			rec.StartAt = date.Add(start)
			rec.EndAt = date.Add(end)
			// Overnight correction: an end time earlier than the start on
			// the same nominal date rolls into the next calendar day.
			if rec.EndAt.Before(rec.StartAt) {
				rec.EndAt = rec.EndAt.AddDate(0, 0, 1)
			}
			rec.DurationHours = rec.EndAt.Sub(rec.StartAt).Hours()
			if rec.DurationHours < 0 {
				rec.DurationHours = 0
			}
			rec.IntervalParsed = true
		} else {
			stats.RowsUnparseable++
		}

		if rec.DurationHours <= rules.HalfDayMaxHours {
			rec.Session = SessionHalfDay
		} else {
			rec.Session = SessionFullDay
		}

		records = append(records, rec)
	}

	return records, stats
}

func cell(row []string, cols schema.ColumnMap, f schema.Field) string {
	idx, ok := cols[f]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func emptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	// Bare serial numbers survive in cells with no date format applied.
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		t := serialEpoch.Add(time.Duration(serial * 24 * float64(time.Hour)))
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

func parseClock(raw string) (time.Duration, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, true
		}
	}
	// A fractional serial is the time-of-day share of a 24h day.
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial >= 0 && serial < 1 {
		return time.Duration(serial * 24 * float64(time.Hour)).Round(time.Minute), true
	}
	return 0, false
}

// parseNumber reads a cost or distance cell, tolerating thousand
// separators. Anything unreadable is zero.
func parseNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	// Vietnamese exports write thousands with dots: 1.500.000
	if strings.Count(s, ".") > 1 {
		s = strings.ReplaceAll(s, ".", "")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func classifyScope(route string, intercityKeywords []string) ScopeClass {
	folded := schema.FoldText(route)
	for _, kw := range intercityKeywords {
		kw = schema.FoldText(kw)
		if kw != "" && strings.Contains(folded, kw) {
			return ScopeIntercity
		}
	}
	return ScopeLocal
}
