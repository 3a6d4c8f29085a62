package fleet

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"fleet-service/internal/model"
	"fleet-service/internal/validate"
)

func seedStatsData(t *testing.T, s *Service) *model.Vehicle {
	t.Helper()
	car := mustCreateVehicle(t, s, testVehicleInput("VIN0000000000001", "X001XX"))

	truck := testVehicleInput("VIN0000000000002", "X002XX")
	truck.Type = model.VehicleTruck
	truck.Status = model.StatusMaintenance
	mustCreateVehicle(t, s, truck)

	inactive := testVehicleInput("VIN0000000000003", "X003XX")
	inactive.Status = model.StatusInactive
	mustCreateVehicle(t, s, inactive)

	in := fuelInput(car.ID, model.Fuel95Octane)
	in.Date = "2024-06-10"
	if _, err := s.CreateFuelRecord(managerActor, in); err != nil {
		t.Fatalf("CreateFuelRecord: %v", err)
	}
	_, err := s.CreateMaintenanceRecord(managerActor, validate.MaintenanceRecordInput{
		VehicleID:   car.ID,
		Date:        "2024-06-12",
		Description: "Brake pad replacement",
		Mileage:     121000,
		Cost:        700,
	})
	if err != nil {
		t.Fatalf("CreateMaintenanceRecord: %v", err)
	}
	return car
}

func TestDashboardCountsAndTotals(t *testing.T) {
	s := newTestService(t)
	seedStatsData(t, s)

	asOf := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	summary, err := s.Dashboard(userActor, asOf)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if summary.TotalVehicles != 3 || summary.ActiveVehicles != 1 ||
		summary.MaintenanceVehicles != 1 || summary.InactiveVehicles != 1 {
		t.Fatalf("vehicle counts mismatch: %+v", summary)
	}
	if summary.MonthFuelings != 1 || summary.MonthFuelVolume != 60 {
		t.Fatalf("fuel totals mismatch: %+v", summary)
	}
	if summary.MonthMaintenance != 1 {
		t.Fatalf("maintenance count mismatch: %+v", summary)
	}
	if summary.MonthExpenses != 3300+700 {
		t.Fatalf("expenses mismatch: %+v", summary)
	}
	if len(summary.RecentFuelRecords) != 1 || len(summary.RecentMaintenanceRecords) != 1 {
		t.Fatalf("recent records mismatch: %+v", summary)
	}
}

func TestDashboardIdempotentWithoutMutation(t *testing.T) {
	s := newTestService(t)
	seedStatsData(t, s)

	asOf := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	first, err := s.Dashboard(userActor, asOf)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	second, err := s.Dashboard(userActor, asOf)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("dashboard not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestDashboardRequiresAuthenticatedActor(t *testing.T) {
	s := newTestService(t)
	_, err := s.Dashboard(Actor{}, time.Now())
	if !errors.Is(err, ErrDenied) {
		t.Fatalf("expected ErrDenied for anonymous actor, got %v", err)
	}
}

func TestProfileHidesFleetTotalsFromRegularUsers(t *testing.T) {
	s := newTestService(t)
	seedStatsData(t, s)

	asUser, err := s.Profile(userActor)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if asUser.TotalVehicles != 0 || asUser.TotalExpenses != 0 {
		t.Fatalf("regular user should not see fleet totals: %+v", asUser)
	}
	if asUser.TotalFuelings != 1 || asUser.TotalMaintenance != 1 {
		t.Fatalf("record counts mismatch: %+v", asUser)
	}

	asManager, err := s.Profile(managerActor)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if asManager.TotalVehicles != 3 || asManager.TotalExpenses != 4000 {
		t.Fatalf("manager totals mismatch: %+v", asManager)
	}
}

func TestFuelActivitySeries(t *testing.T) {
	s := newTestService(t)
	car := mustCreateVehicle(t, s, testVehicleInput("VIN0000000000001", "X001XX"))

	for _, d := range []string{"2024-06-14", "2024-06-14", "2024-06-15"} {
		in := fuelInput(car.ID, model.Fuel95Octane)
		in.Date = d
		if _, err := s.CreateFuelRecord(managerActor, in); err != nil {
			t.Fatalf("CreateFuelRecord(%s): %v", d, err)
		}
	}

	asOf := time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC)
	series, err := s.FuelActivity(userActor, asOf, 3)
	if err != nil {
		t.Fatalf("FuelActivity: %v", err)
	}
	want := []DailyPoint{
		{Date: "2024-06-13", Value: 0},
		{Date: "2024-06-14", Value: 6600},
		{Date: "2024-06-15", Value: 3300},
	}
	if !reflect.DeepEqual(series, want) {
		t.Fatalf("series mismatch:\ngot:  %+v\nwant: %+v", series, want)
	}
}

func TestMaintenanceActivitySeries(t *testing.T) {
	s := newTestService(t)
	car := mustCreateVehicle(t, s, testVehicleInput("VIN0000000000001", "X001XX"))

	for _, d := range []string{"2024-06-15", "2024-06-15"} {
		_, err := s.CreateMaintenanceRecord(managerActor, validate.MaintenanceRecordInput{
			VehicleID:   car.ID,
			Date:        d,
			Description: "Scheduled inspection",
			Mileage:     50000,
			Cost:        100,
		})
		if err != nil {
			t.Fatalf("CreateMaintenanceRecord: %v", err)
		}
	}

	asOf := time.Date(2024, 6, 16, 9, 0, 0, 0, time.UTC)
	series, err := s.MaintenanceActivity(userActor, asOf, 2)
	if err != nil {
		t.Fatalf("MaintenanceActivity: %v", err)
	}
	want := []DailyPoint{
		{Date: "2024-06-15", Value: 2},
		{Date: "2024-06-16", Value: 0},
	}
	if !reflect.DeepEqual(series, want) {
		t.Fatalf("series mismatch:\ngot:  %+v\nwant: %+v", series, want)
	}
}
