package booking

import (
	"strings"

	"github.com/openfleet/fleetlens/pkg/schema"
)

// VehicleEntry is one row of the vehicle registry after normalization.
type VehicleEntry struct {
	PlateNorm     string
	PlateRaw      string
	DefaultDriver string
}

// PersonEntry is one row of the personnel directory.
type PersonEntry struct {
	FullName   string
	Company    string
	Department string
	Site       string
}

// BuildVehicleDirectory indexes registry rows by normalized plate.
// Duplicate plates keep the last-seen row; the registry is maintained by
// appending corrections, so later rows supersede earlier ones.
func BuildVehicleDirectory(rows [][]string, headerRow int, cols schema.ColumnMap) map[string]VehicleEntry {
	dir := make(map[string]VehicleEntry)
	for i := headerRow + 1; i < len(rows); i++ {
		raw := strings.TrimSpace(fieldValue(rows[i], cols, schema.FieldVehicleID))
		if raw == "" || !schema.PlausiblePlate(raw) {
			continue
		}
		dir[schema.NormalizePlate(raw)] = VehicleEntry{
			PlateNorm:     schema.NormalizePlate(raw),
			PlateRaw:      raw,
			DefaultDriver: strings.TrimSpace(fieldValue(rows[i], cols, schema.FieldDriverName)),
		}
	}
	return dir
}

// BuildPersonDirectory indexes personnel rows by exact full name.
// Duplicate names keep the first-seen row, the opposite of the vehicle
// rule: a person's first directory entry is their primary assignment,
// later duplicates are secondary postings.
func BuildPersonDirectory(rows [][]string, headerRow int, cols schema.ColumnMap) map[string]PersonEntry {
	dir := make(map[string]PersonEntry)
	for i := headerRow + 1; i < len(rows); i++ {
		name := strings.TrimSpace(fieldValue(rows[i], cols, schema.FieldFullName))
		if name == "" {
			continue
		}
		if _, seen := dir[name]; seen {
			continue
		}
		dir[name] = PersonEntry{
			FullName:   name,
			Company:    strings.TrimSpace(fieldValue(rows[i], cols, schema.FieldCompany)),
			Department: strings.TrimSpace(fieldValue(rows[i], cols, schema.FieldDepartment)),
			Site:       strings.TrimSpace(fieldValue(rows[i], cols, schema.FieldSite)),
		}
	}
	return dir
}

func fieldValue(row []string, cols schema.ColumnMap, f schema.Field) string {
	idx, ok := cols[f]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
