package fleet

import (
	"errors"
	"testing"

	"fleet-service/internal/model"
	"fleet-service/internal/validate"
)

func fuelInput(vehicleID uint, fuelType model.FuelType) validate.FuelRecordInput {
	return validate.FuelRecordInput{
		VehicleID: vehicleID,
		Date:      "2024-06-01",
		FuelType:  fuelType,
		Quantity:  60,
		Cost:      3300,
		Mileage:   120000,
	}
}

func TestCreateFuelRecordDieselClassRejectsGasoline(t *testing.T) {
	s := newTestService(t)

	in := testVehicleInput("VIN0000000000001", "X001XX")
	in.Name = "Volvo FH16"
	in.Type = model.VehicleTruck
	truck := mustCreateVehicle(t, s, in)

	_, err := s.CreateFuelRecord(managerActor, fuelInput(truck.ID, model.Fuel95Octane))
	assertValidationError(t, err, "fuel_type")

	var count int64
	s.db.Model(&model.FuelRecord{}).Count(&count)
	if count != 0 {
		t.Fatal("rejected record must not be stored")
	}

	if _, err := s.CreateFuelRecord(managerActor, fuelInput(truck.ID, model.FuelDiesel)); err != nil {
		t.Fatalf("diesel for truck should pass: %v", err)
	}
}

func TestCreateFuelRecordGasolineClassRejectsDiesel(t *testing.T) {
	s := newTestService(t)
	car := mustCreateVehicle(t, s, testVehicleInput("VIN0000000000001", "X001XX"))

	_, err := s.CreateFuelRecord(managerActor, fuelInput(car.ID, model.FuelDiesel))
	assertValidationError(t, err, "fuel_type")
}

func TestCreateFuelRecordMotorcycleTakesGasoline(t *testing.T) {
	s := newTestService(t)

	in := testVehicleInput("VIN0000000000001", "X001XX")
	in.Name = "Honda CBR1000RR"
	in.Type = model.VehicleMotorcycle
	moto := mustCreateVehicle(t, s, in)

	if _, err := s.CreateFuelRecord(managerActor, fuelInput(moto.ID, model.Fuel98Octane)); err != nil {
		t.Fatalf("98-octane for motorcycle should pass: %v", err)
	}
	_, err := s.CreateFuelRecord(managerActor, fuelInput(moto.ID, model.FuelDiesel))
	assertValidationError(t, err, "fuel_type")
}

func TestCreateFuelRecordVehicleNotFound(t *testing.T) {
	s := newTestService(t)
	_, err := s.CreateFuelRecord(managerActor, fuelInput(999, model.Fuel95Octane))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateFuelRecordDeniedForUserRole(t *testing.T) {
	s := newTestService(t)
	car := mustCreateVehicle(t, s, testVehicleInput("VIN0000000000001", "X001XX"))

	_, err := s.CreateFuelRecord(userActor, fuelInput(car.ID, model.Fuel95Octane))
	if !errors.Is(err, ErrDenied) {
		t.Fatalf("expected ErrDenied, got %v", err)
	}
}

func TestUpdateFuelRecordKeepsVehicle(t *testing.T) {
	s := newTestService(t)
	car := mustCreateVehicle(t, s, testVehicleInput("VIN0000000000001", "X001XX"))

	record, err := s.CreateFuelRecord(managerActor, fuelInput(car.ID, model.Fuel95Octane))
	if err != nil {
		t.Fatalf("CreateFuelRecord: %v", err)
	}

	in := fuelInput(0, model.Fuel92Octane)
	in.Quantity = 45
	updated, err := s.UpdateFuelRecord(managerActor, record.ID, in)
	if err != nil {
		t.Fatalf("UpdateFuelRecord: %v", err)
	}
	if updated.VehicleID != car.ID {
		t.Fatalf("record moved to vehicle %d", updated.VehicleID)
	}
	if updated.Quantity != 45 || updated.FuelType != model.Fuel92Octane {
		t.Fatalf("update not applied: %+v", updated)
	}
}

func TestDeleteFuelRecord(t *testing.T) {
	s := newTestService(t)
	car := mustCreateVehicle(t, s, testVehicleInput("VIN0000000000001", "X001XX"))
	record, err := s.CreateFuelRecord(managerActor, fuelInput(car.ID, model.Fuel95Octane))
	if err != nil {
		t.Fatalf("CreateFuelRecord: %v", err)
	}

	if err := s.DeleteFuelRecord(managerActor, record.ID); err != nil {
		t.Fatalf("DeleteFuelRecord: %v", err)
	}
	if err := s.DeleteFuelRecord(managerActor, record.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestCreateFuelRecordsAtomic(t *testing.T) {
	s := newTestService(t)
	car := mustCreateVehicle(t, s, testVehicleInput("VIN0000000000001", "X001XX"))

	bad := fuelInput(car.ID, model.Fuel95Octane)
	bad.Quantity = -1
	_, err := s.CreateFuelRecords(managerActor, []validate.FuelRecordInput{
		fuelInput(car.ID, model.Fuel95Octane),
		bad,
	})
	assertValidationError(t, err, "records[1].fuel_quantity")

	var count int64
	s.db.Model(&model.FuelRecord{}).Count(&count)
	if count != 0 {
		t.Fatalf("bulk create must be all-or-nothing, got %d rows", count)
	}

	records, err := s.CreateFuelRecords(managerActor, []validate.FuelRecordInput{
		fuelInput(car.ID, model.Fuel95Octane),
		fuelInput(car.ID, model.Fuel92Octane),
	})
	if err != nil {
		t.Fatalf("CreateFuelRecords: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
}

func TestFuelLogDateRangeAndTotals(t *testing.T) {
	s := newTestService(t)
	car := mustCreateVehicle(t, s, testVehicleInput("VIN0000000000001", "X001XX"))

	dates := []string{"2024-05-01", "2024-06-01", "2024-07-01"}
	for _, d := range dates {
		in := fuelInput(car.ID, model.Fuel95Octane)
		in.Date = d
		if _, err := s.CreateFuelRecord(managerActor, in); err != nil {
			t.Fatalf("CreateFuelRecord(%s): %v", d, err)
		}
	}

	records, summary, err := s.FuelLog(userActor, FuelFilter{StartDate: "2024-05-15", EndDate: "2024-06-15"})
	if err != nil {
		t.Fatalf("FuelLog: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record in range, got %d", len(records))
	}
	if summary.TotalRecords != 1 || summary.TotalFuel != 60 || summary.TotalCost != 3300 {
		t.Fatalf("summary mismatch: %+v", summary)
	}
	if summary.AverageCost != 3300 {
		t.Fatalf("average mismatch: %+v", summary)
	}
}
