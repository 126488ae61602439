package sheet

import (
	"strings"

	"github.com/openfleet/fleetlens/pkg/schema"
)

// Roles holds the sheets assigned to each logical role. Registry and
// Personnel are nil when the workbook does not carry them; only a missing
// booking sheet is fatal.
type Roles struct {
	Booking   *RawSheet
	Registry  *RawSheet
	Personnel *RawSheet
}

// Discover assigns workbook sheets to logical roles by case-insensitive,
// diacritic-folded substring match on the sheet name. A single-sheet
// workbook (the CSV path included) is always the booking sheet, whatever
// it is named.
func Discover(sheets []RawSheet, bookingHints, registryHints, personnelHints []string) (Roles, error) {
	if len(sheets) == 0 {
		return Roles{}, ErrEmptyWorkbook
	}
	if len(sheets) == 1 {
		return Roles{Booking: &sheets[0]}, nil
	}

	var roles Roles
	claimed := make(map[int]bool)

	pick := func(hints []string) *RawSheet {
		for i := range sheets {
			if claimed[i] {
				continue
			}
			if nameMatches(sheets[i].Name, hints) {
				claimed[i] = true
				return &sheets[i]
			}
		}
		return nil
	}

	roles.Booking = pick(bookingHints)
	if roles.Booking == nil {
		return Roles{}, ErrMissingBookingSheet
	}
	roles.Registry = pick(registryHints)
	roles.Personnel = pick(personnelHints)
	return roles, nil
}

func nameMatches(name string, hints []string) bool {
	folded := schema.FoldText(name)
	for _, h := range hints {
		h = schema.FoldText(h)
		if h != "" && strings.Contains(folded, h) {
			return true
		}
	}
	return false
}
