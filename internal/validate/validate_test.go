package validate

import (
	"testing"

	"fleet-service/internal/model"
)

func hasFieldError(errs Errors, field string) bool {
	for _, fe := range errs {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func validVehicleInput() VehicleInput {
	return VehicleInput{
		Name:    "Toyota Camry",
		Type:    model.VehicleCar,
		Plate:   "X001XX",
		Brand:   "Toyota",
		VIN:     "VIN0000000000001",
		Status:  model.StatusActive,
		Year:    2020,
		Mileage: 0,
	}
}

func TestVehicleValid(t *testing.T) {
	if errs := Vehicle(validVehicleInput()); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestVehicleRequiredFields(t *testing.T) {
	errs := Vehicle(VehicleInput{})
	for _, field := range []string{"name", "type", "plate", "brand", "vin", "status", "year"} {
		if !hasFieldError(errs, field) {
			t.Errorf("expected error on %s, got %v", field, errs)
		}
	}
}

func TestVehicleRejectsUnknownEnums(t *testing.T) {
	in := validVehicleInput()
	in.Type = "hovercraft"
	in.Status = "scrapped"
	errs := Vehicle(in)
	if !hasFieldError(errs, "type") || !hasFieldError(errs, "status") {
		t.Fatalf("expected type and status errors, got %v", errs)
	}
}

func TestVehicleRejectsNegativeMileage(t *testing.T) {
	in := validVehicleInput()
	in.Mileage = -1
	if errs := Vehicle(in); !hasFieldError(errs, "mileage") {
		t.Fatalf("expected mileage error, got %v", errs)
	}
}

func TestFuelCompatibility(t *testing.T) {
	cases := []struct {
		vehicleType model.VehicleType
		fuelType    model.FuelType
		wantErr     bool
	}{
		{model.VehicleCar, model.Fuel95Octane, false},
		{model.VehicleCar, model.FuelDiesel, true},
		{model.VehicleSUV, model.Fuel92Octane, false},
		{model.VehicleMinivan, model.Fuel98Octane, false},
		{model.VehiclePickup, model.FuelDiesel, true},
		{model.VehicleMotorcycle, model.Fuel95Octane, false},
		{model.VehicleMotorcycle, model.Fuel98Octane, false},
		{model.VehicleMotorcycle, model.FuelDiesel, true},
		{model.VehicleTruck, model.FuelDiesel, false},
		{model.VehicleTruck, model.Fuel95Octane, true},
		{model.VehicleBus, model.Fuel92Octane, true},
		{model.VehicleVan, model.FuelDiesel, false},
		{model.VehicleSpecial, model.Fuel98Octane, true},
		{model.VehicleExcavator, model.FuelDiesel, false},
		{model.VehicleBulldozer, model.Fuel95Octane, true},
		{model.VehicleCrane, model.FuelDiesel, false},
		{model.VehicleTrailer, model.Fuel92Octane, true},
	}

	for _, tc := range cases {
		fe := FuelCompatibility(tc.vehicleType, tc.fuelType)
		if (fe != nil) != tc.wantErr {
			t.Errorf("FuelCompatibility(%s, %s): got %v, wantErr=%v",
				tc.vehicleType, tc.fuelType, fe, tc.wantErr)
		}
	}
}

func TestFuelRecordRejectsNonPositiveAmounts(t *testing.T) {
	in := FuelRecordInput{
		VehicleID: 1,
		Date:      "2024-06-01",
		FuelType:  model.Fuel95Octane,
		Quantity:  0,
		Cost:      -10,
		Mileage:   -5,
	}
	errs := FuelRecord(in, model.VehicleCar)
	for _, field := range []string{"fuel_quantity", "fuel_cost", "mileage"} {
		if !hasFieldError(errs, field) {
			t.Errorf("expected error on %s, got %v", field, errs)
		}
	}
}

func TestFuelRecordRejectsBadDate(t *testing.T) {
	in := FuelRecordInput{
		VehicleID: 1,
		Date:      "01/06/2024",
		FuelType:  model.Fuel95Octane,
		Quantity:  40,
		Cost:      2000,
		Mileage:   12000,
	}
	if errs := FuelRecord(in, model.VehicleCar); !hasFieldError(errs, "date") {
		t.Fatalf("expected date error, got %v", errs)
	}
}

func TestMaintenanceRecordAllowsZeroCost(t *testing.T) {
	in := MaintenanceRecordInput{
		VehicleID:   1,
		Date:        "2024-06-01",
		Description: "Oil and filter change",
		Mileage:     42000,
		Cost:        0,
	}
	if errs := MaintenanceRecord(in); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestMaintenanceRecordRequiredFields(t *testing.T) {
	errs := MaintenanceRecord(MaintenanceRecordInput{})
	for _, field := range []string{"vehicle_id", "date", "description"} {
		if !hasFieldError(errs, field) {
			t.Errorf("expected error on %s, got %v", field, errs)
		}
	}
}

func TestRegistrationPasswordConfirmation(t *testing.T) {
	in := RegistrationInput{
		Username:        "jdoe",
		Password:        "secret123",
		ConfirmPassword: "secret124",
		Email:           "jdoe@example.com",
	}
	if errs := Registration(in); !hasFieldError(errs, "confirm_password") {
		t.Fatalf("expected confirm_password error, got %v", errs)
	}

	in.ConfirmPassword = "secret123"
	if errs := Registration(in); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestUserRoleValidation(t *testing.T) {
	in := UserInput{Username: "ops", Password: "pw", Role: "root", Email: "ops@example.com"}
	if errs := User(in, true); !hasFieldError(errs, "role") {
		t.Fatalf("expected role error, got %v", errs)
	}

	in.Role = model.RoleManager
	if errs := User(in, true); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestUserUpdateAllowsBlankPassword(t *testing.T) {
	in := UserInput{Username: "ops", Role: model.RoleUser, Email: "ops@example.com"}
	if errs := User(in, false); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if errs := User(in, true); !hasFieldError(errs, "password") {
		t.Fatalf("expected password error on create, got %v", errs)
	}
}
