package validate

// MaintenanceRecordInput is the proposed field set for a maintenance record.
type MaintenanceRecordInput struct {
	VehicleID          uint     `json:"vehicle_id"`
	Date               string   `json:"date"`
	Description        string   `json:"description"`
	Mileage            float64  `json:"mileage"`
	Cost               float64  `json:"cost"`
	NextServiceMileage *float64 `json:"next_maintenance_mileage"`
}

// MaintenanceRecord checks required fields and numeric sanity. Cost may
// be zero.
func MaintenanceRecord(in MaintenanceRecordInput) Errors {
	var errs Errors

	if in.VehicleID == 0 {
		errs = errs.Add("vehicle_id", "is required")
	}
	errs = requireDate(errs, "date", in.Date)
	errs = requireString(errs, "description", in.Description)

	if in.Mileage < 0 {
		errs = errs.Add("mileage", "must not be negative")
	}
	if in.Cost < 0 {
		errs = errs.Add("cost", "must not be negative")
	}
	if in.NextServiceMileage != nil && *in.NextServiceMileage < 0 {
		errs = errs.Add("next_maintenance_mileage", "must not be negative")
	}

	return errs
}
