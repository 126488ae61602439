package sheet

import (
	"strings"

	"github.com/openfleet/fleetlens/pkg/schema"
)

// LocateHeader finds the true header row inside a sheet that may open
// with banner or caption rows. It scans at most maxScan leading rows and
// returns the first whose cells contain any of the folded keywords. When
// nothing matches it returns the configured fallback index instead of
// failing; downstream field mapping still validates what it finds there.
func LocateHeader(s RawSheet, keywords []string, maxScan, fallback int) int {
	folded := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if f := schema.FoldText(k); f != "" {
			folded = append(folded, f)
		}
	}

	limit := maxScan
	if limit > len(s.Rows) {
		limit = len(s.Rows)
	}
	for i := 0; i < limit; i++ {
		for _, cell := range s.Rows[i] {
			text := schema.FoldText(cell)
			if text == "" {
				continue
			}
			for _, k := range folded {
				if strings.Contains(text, k) {
					return i
				}
			}
		}
	}
	return fallback
}
