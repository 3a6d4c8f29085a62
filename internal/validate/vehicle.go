package validate

import "fleet-service/internal/model"

// VehicleInput is the proposed field set for a vehicle create or update.
type VehicleInput struct {
	Name    string              `json:"name"`
	Type    model.VehicleType   `json:"type"`
	Plate   string              `json:"plate"`
	Brand   string              `json:"brand"`
	VIN     string              `json:"vin"`
	Status  model.VehicleStatus `json:"status"`
	Year    int                 `json:"year"`
	Mileage float64             `json:"mileage"`
}

// Vehicle checks required fields, enum membership and numeric sanity.
func Vehicle(in VehicleInput) Errors {
	var errs Errors
	errs = requireString(errs, "name", in.Name)
	errs = requireString(errs, "plate", in.Plate)
	errs = requireString(errs, "brand", in.Brand)
	errs = requireString(errs, "vin", in.VIN)

	if in.Type == "" {
		errs = errs.Add("type", "is required")
	} else if !model.ValidVehicleType(in.Type) {
		errs = errs.Add("type", "is not a known vehicle type")
	}

	if in.Status == "" {
		errs = errs.Add("status", "is required")
	} else if !model.ValidVehicleStatus(in.Status) {
		errs = errs.Add("status", "must be one of active, maintenance, inactive")
	}

	if in.Year == 0 {
		errs = errs.Add("year", "is required")
	} else if in.Year < 0 {
		errs = errs.Add("year", "must be positive")
	}

	if in.Mileage < 0 {
		errs = errs.Add("mileage", "must not be negative")
	}

	return errs
}
