package schema

import (
	"fmt"
	"strings"
)

// ColumnMap maps a canonical field to the source column position that
// supplies it. At most one column per field.
type ColumnMap map[Field]int

// Warning is a non-fatal schema problem surfaced to the caller.
type Warning struct {
	Field   Field
	Message string
}

// mappingRule matches a folded header by substring. Rank breaks ties when
// two different columns map to the same field: the lower rank wins even
// when its column comes later, so a human-readable header ("Bộ phận")
// beats a code-style one ("Mã BU") deterministically.
type mappingRule struct {
	substr string
	field  Field
	rank   int
}

var bookingRules = []mappingRule{
	{"ngay khoi hanh", FieldTripDate, 0},
	{"trip date", FieldTripDate, 0},
	{"ngay di", FieldTripDate, 1},
	{"gio khoi hanh", FieldStartTime, 0},
	{"start time", FieldStartTime, 0},
	{"gio di", FieldStartTime, 1},
	{"gio ket thuc", FieldEndTime, 0},
	{"end time", FieldEndTime, 0},
	{"gio ve", FieldEndTime, 1},
	{"bien so xe", FieldVehicleID, 0},
	{"plate number", FieldVehicleID, 0},
	{"bien so", FieldVehicleID, 1},
	{"license plate", FieldVehicleID, 1},
	{"ten tai xe", FieldDriverName, 0},
	{"tai xe", FieldDriverName, 1},
	{"driver", FieldDriverName, 1},
	{"nguoi su dung xe", FieldRequesterName, 0},
	{"nguoi su dung", FieldRequesterName, 1},
	{"nguoi dat xe", FieldRequesterName, 1},
	{"requester", FieldRequesterName, 1},
	{"bo phan", FieldDepartment, 0},
	{"department", FieldDepartment, 0},
	{"ma bu", FieldDepartment, 5},
	{"bu code", FieldDepartment, 5},
	{"cong ty", FieldCompany, 0},
	{"company", FieldCompany, 0},
	{"dia diem", FieldSite, 0},
	{"chi nhanh", FieldSite, 1},
	{"site", FieldSite, 1},
	{"lo trinh", FieldRouteText, 0},
	{"hanh trinh", FieldRouteText, 1},
	{"route", FieldRouteText, 1},
	{"trang thai", FieldRequestStatus, 0},
	{"status", FieldRequestStatus, 0},
	{"tong chi phi", FieldCost, 0},
	{"chi phi", FieldCost, 1},
	{"cost", FieldCost, 1},
	{"quang duong", FieldDistanceKm, 0},
	{"so km", FieldDistanceKm, 1},
	{"distance", FieldDistanceKm, 1},
}

var registryRules = []mappingRule{
	{"bien so xe", FieldVehicleID, 0},
	{"plate number", FieldVehicleID, 0},
	{"bien so", FieldVehicleID, 1},
	{"ten tai xe", FieldDriverName, 0},
	{"tai xe", FieldDriverName, 1},
	{"driver", FieldDriverName, 1},
}

var personnelRules = []mappingRule{
	{"ho va ten", FieldFullName, 0},
	{"full name", FieldFullName, 0},
	{"ho ten", FieldFullName, 1},
	{"cong ty", FieldCompany, 0},
	{"company", FieldCompany, 0},
	{"bo phan", FieldDepartment, 0},
	{"department", FieldDepartment, 0},
	{"dia diem", FieldSite, 0},
	{"noi lam viec", FieldSite, 1},
	{"site", FieldSite, 1},
}

func rulesFor(role Role) []mappingRule {
	switch role {
	case RoleRegistry:
		return registryRules
	case RolePersonnel:
		return personnelRules
	default:
		return bookingRules
	}
}

// MapHeader maps a raw header row onto canonical fields for the given
// sheet role. Headers are folded before matching, so whitespace, embedded
// newlines and diacritic variants all hit the same rule. Unmapped columns
// are dropped. A required field with no mapping produces a Warning; the
// caller substitutes defaults rather than aborting.
func MapHeader(cells []string, role Role) (ColumnMap, []Warning) {
	rules := rulesFor(role)
	cols := make(ColumnMap)
	ranks := make(map[Field]int)
	var warnings []Warning

	for i, raw := range cells {
		folded := FoldText(raw)
		if folded == "" {
			continue
		}

		bestRank := -1
		var bestField Field
		for _, r := range rules {
			if !strings.Contains(folded, r.substr) {
				continue
			}
			if bestRank == -1 || r.rank < bestRank {
				bestRank = r.rank
				bestField = r.field
			}
		}
		if bestRank == -1 {
			continue
		}

		prev, taken := cols[bestField]
		switch {
		case !taken:
			cols[bestField] = i
			ranks[bestField] = bestRank
		case bestRank < ranks[bestField]:
			// A more specific header supersedes the earlier, code-style one.
			warnings = append(warnings, Warning{
				Field:   bestField,
				Message: fmt.Sprintf("columns %d and %d both map to %s; keeping column %d", prev, i, bestField, i),
			})
			cols[bestField] = i
			ranks[bestField] = bestRank
		default:
			// Leftmost column wins on equal or better rank.
			warnings = append(warnings, Warning{
				Field:   bestField,
				Message: fmt.Sprintf("columns %d and %d both map to %s; keeping column %d", prev, i, bestField, prev),
			})
		}
	}

	for _, f := range requiredFields[role] {
		if _, ok := cols[f]; !ok {
			warnings = append(warnings, Warning{
				Field:   f,
				Message: fmt.Sprintf("required field %s has no source column on %s sheet", f, role),
			})
		}
	}

	return cols, warnings
}
