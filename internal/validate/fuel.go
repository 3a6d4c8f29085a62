package validate

import "fleet-service/internal/model"

// FuelRecordInput is the proposed field set for a fuel record.
type FuelRecordInput struct {
	VehicleID uint           `json:"vehicle_id"`
	Date      string         `json:"date"`
	FuelType  model.FuelType `json:"fuel_type"`
	Quantity  float64        `json:"fuel_quantity"`
	Cost      float64        `json:"fuel_cost"`
	Mileage   float64        `json:"mileage"`
	Notes     string         `json:"notes"`
}

// FuelRecord checks a fuel record against the owning vehicle's type.
func FuelRecord(in FuelRecordInput, vehicleType model.VehicleType) Errors {
	var errs Errors

	if in.VehicleID == 0 {
		errs = errs.Add("vehicle_id", "is required")
	}
	errs = requireDate(errs, "date", in.Date)

	if in.FuelType == "" {
		errs = errs.Add("fuel_type", "is required")
	} else if !model.ValidFuelType(in.FuelType) {
		errs = errs.Add("fuel_type", "is not a known fuel type")
	} else if fe := FuelCompatibility(vehicleType, in.FuelType); fe != nil {
		errs = append(errs, *fe)
	}

	if in.Quantity <= 0 {
		errs = errs.Add("fuel_quantity", "must be a positive number")
	}
	if in.Cost <= 0 {
		errs = errs.Add("fuel_cost", "must be a positive number")
	}
	if in.Mileage < 0 {
		errs = errs.Add("mileage", "must not be negative")
	}

	return errs
}

// FuelCompatibility enforces the two-way fuel class partition: diesel-class
// vehicles take diesel only, gasoline-class vehicles take octane grades only.
func FuelCompatibility(vehicleType model.VehicleType, fuelType model.FuelType) *FieldError {
	if vehicleType.RequiresDiesel() {
		if fuelType != model.FuelDiesel {
			return &FieldError{Field: "fuel_type", Message: "only diesel fuel is allowed for this vehicle type"}
		}
		return nil
	}
	if fuelType == model.FuelDiesel {
		return &FieldError{Field: "fuel_type", Message: "diesel fuel is not allowed for this vehicle type"}
	}
	return nil
}
