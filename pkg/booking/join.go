package booking

// unknownValue is the neutral default for unmatched text categoricals.
const unknownValue = "Unknown"

// Join left-joins booking records against the vehicle registry and the
// personnel directory, in place. Vehicle lookups go through the
// normalized plate; requester lookups are exact and case-sensitive, names
// are never fuzzy-matched. Either directory may be nil, which degrades
// that half of the join to a pass-through. Unmatched records are retained
// with neutral defaults.
func Join(records []Record, vehicles map[string]VehicleEntry, persons map[string]PersonEntry) {
	fleet := fleetKeySet(records, vehicles)

	for i := range records {
		rec := &records[i]

		if rec.PlatePlausible {
			rec.FleetOwned = fleet[rec.VehicleIDNorm]
			if v, ok := vehicles[rec.VehicleIDNorm]; ok && rec.Driver == "" {
				rec.Driver = v.DefaultDriver
			}
		}

		if p, ok := persons[rec.Requester]; ok {
			if rec.Department == "" {
				rec.Department = p.Department
			}
			if rec.Company == "" {
				rec.Company = p.Company
			}
			if rec.Site == "" {
				rec.Site = p.Site
			}
		}

		if rec.Department == "" {
			rec.Department = unknownValue
		}
		if rec.Company == "" {
			rec.Company = unknownValue
		}
		if rec.Site == "" {
			rec.Site = unknownValue
		}
	}
}

// fleetKeySet decides which plates count as fleet-owned: the union of the
// registry keys and every plate that ever had a driver assigned in the
// booking history. The union also covers workbooks without a registry
// sheet, where assignment history is the only signal.
func fleetKeySet(records []Record, vehicles map[string]VehicleEntry) map[string]bool {
	fleet := make(map[string]bool, len(vehicles))
	for plate := range vehicles {
		fleet[plate] = true
	}
	for i := range records {
		if records[i].PlatePlausible && records[i].Driver != "" {
			fleet[records[i].VehicleIDNorm] = true
		}
	}
	return fleet
}
