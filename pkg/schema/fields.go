package schema

// Field is a canonical logical column name, independent of the literal
// header text in the source workbook.
type Field string

const (
	FieldTripDate      Field = "trip_date"
	FieldStartTime     Field = "start_time"
	FieldEndTime       Field = "end_time"
	FieldVehicleID     Field = "vehicle_id"
	FieldDriverName    Field = "driver_name"
	FieldRequesterName Field = "requester_name"
	FieldDepartment    Field = "department"
	FieldCompany       Field = "company"
	FieldSite          Field = "site"
	FieldRouteText     Field = "route_text"
	FieldRequestStatus Field = "request_status"
	FieldCost          Field = "cost"
	FieldDistanceKm    Field = "distance_km"
	FieldFullName      Field = "full_name"
)

// Role identifies which logical sheet a header belongs to. Each role has
// its own mapping table and required-field set.
type Role string

const (
	RoleBooking   Role = "booking"
	RoleRegistry  Role = "registry"
	RolePersonnel Role = "personnel"
)

// requiredFields lists the fields a sheet of the given role must map for
// downstream stages to work at full fidelity. A miss degrades the run, it
// does not abort it.
var requiredFields = map[Role][]Field{
	RoleBooking:   {FieldTripDate, FieldStartTime, FieldEndTime, FieldVehicleID},
	RoleRegistry:  {FieldVehicleID},
	RolePersonnel: {FieldFullName},
}

// HeaderKeywords returns the folded keyword hints used to locate the true
// header row for a sheet role.
func HeaderKeywords(role Role) []string {
	switch role {
	case RoleBooking:
		return []string{"ngay khoi hanh", "trip date", "bien so"}
	case RoleRegistry:
		return []string{"bien so", "plate number", "tai xe", "driver"}
	case RolePersonnel:
		return []string{"ho va ten", "ho ten", "full name"}
	}
	return nil
}
