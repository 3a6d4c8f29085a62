package fleet

import (
	"time"

	"fleet-service/internal/model"
	"fleet-service/internal/validate"
)

// DashboardSummary is the read-only projection behind the landing page:
// vehicle counts by status, month-to-date totals and the most recent
// records. No mutation, so repeated calls with an unchanged store yield
// identical results.
type DashboardSummary struct {
	TotalVehicles       int64 `json:"total_vehicles"`
	ActiveVehicles      int64 `json:"active_vehicles"`
	MaintenanceVehicles int64 `json:"maintenance_vehicles"`
	InactiveVehicles    int64 `json:"inactive_vehicles"`

	MonthFuelings    int64   `json:"month_fuelings"`
	MonthFuelVolume  float64 `json:"month_fuel_volume"`
	MonthMaintenance int64   `json:"month_maintenance"`
	MonthExpenses    float64 `json:"month_expenses"`

	RecentFuelRecords        []model.FuelRecord        `json:"recent_fuel_records"`
	RecentMaintenanceRecords []model.MaintenanceRecord `json:"recent_maintenance_records"`
}

const recentRecordLimit = 5

// Dashboard builds the summary as of the given date. Month totals cover
// the calendar month containing asOf.
func (s *Service) Dashboard(actor Actor, asOf time.Time) (*DashboardSummary, error) {
	if err := s.requireActor(actor); err != nil {
		return nil, err
	}

	summary := &DashboardSummary{}

	if err := s.db.Model(&model.Vehicle{}).Count(&summary.TotalVehicles).Error; err != nil {
		return nil, persistence(err)
	}
	statusCounts := map[model.VehicleStatus]*int64{
		model.StatusActive:      &summary.ActiveVehicles,
		model.StatusMaintenance: &summary.MaintenanceVehicles,
		model.StatusInactive:    &summary.InactiveVehicles,
	}
	for status, dest := range statusCounts {
		if err := s.db.Model(&model.Vehicle{}).Where("status = ?", status).Count(dest).Error; err != nil {
			return nil, persistence(err)
		}
	}

	startOfMonth := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())

	if err := s.db.Model(&model.FuelRecord{}).Where("date >= ?", startOfMonth).
		Count(&summary.MonthFuelings).Error; err != nil {
		return nil, persistence(err)
	}
	if err := s.db.Model(&model.FuelRecord{}).Where("date >= ?", startOfMonth).
		Select("COALESCE(SUM(fuel_quantity), 0)").Scan(&summary.MonthFuelVolume).Error; err != nil {
		return nil, persistence(err)
	}
	if err := s.db.Model(&model.MaintenanceRecord{}).Where("date >= ?", startOfMonth).
		Count(&summary.MonthMaintenance).Error; err != nil {
		return nil, persistence(err)
	}

	var fuelCost, maintenanceCost float64
	if err := s.db.Model(&model.FuelRecord{}).Where("date >= ?", startOfMonth).
		Select("COALESCE(SUM(fuel_cost), 0)").Scan(&fuelCost).Error; err != nil {
		return nil, persistence(err)
	}
	if err := s.db.Model(&model.MaintenanceRecord{}).Where("date >= ?", startOfMonth).
		Select("COALESCE(SUM(cost), 0)").Scan(&maintenanceCost).Error; err != nil {
		return nil, persistence(err)
	}
	summary.MonthExpenses = fuelCost + maintenanceCost

	if err := s.db.Order("date DESC").Limit(recentRecordLimit).
		Find(&summary.RecentFuelRecords).Error; err != nil {
		return nil, persistence(err)
	}
	if err := s.db.Order("date DESC").Limit(recentRecordLimit).
		Find(&summary.RecentMaintenanceRecords).Error; err != nil {
		return nil, persistence(err)
	}

	return summary, nil
}

// ProfileSummary backs the profile page. Vehicle and expense totals are
// only revealed to admins and managers.
type ProfileSummary struct {
	TotalFuelings    int64   `json:"total_fuelings"`
	TotalMaintenance int64   `json:"total_maintenance"`
	TotalVehicles    int64   `json:"total_vehicles"`
	TotalExpenses    float64 `json:"total_expenses"`
}

// Profile builds the per-actor statistics block.
func (s *Service) Profile(actor Actor) (*ProfileSummary, error) {
	if err := s.requireActor(actor); err != nil {
		return nil, err
	}

	summary := &ProfileSummary{}
	if err := s.db.Model(&model.FuelRecord{}).Count(&summary.TotalFuelings).Error; err != nil {
		return nil, persistence(err)
	}
	if err := s.db.Model(&model.MaintenanceRecord{}).Count(&summary.TotalMaintenance).Error; err != nil {
		return nil, persistence(err)
	}

	if actor.Role == model.RoleAdmin || actor.Role == model.RoleManager {
		if err := s.db.Model(&model.Vehicle{}).Count(&summary.TotalVehicles).Error; err != nil {
			return nil, persistence(err)
		}
		var fuelCost, maintenanceCost float64
		if err := s.db.Model(&model.FuelRecord{}).
			Select("COALESCE(SUM(fuel_cost), 0)").Scan(&fuelCost).Error; err != nil {
			return nil, persistence(err)
		}
		if err := s.db.Model(&model.MaintenanceRecord{}).
			Select("COALESCE(SUM(cost), 0)").Scan(&maintenanceCost).Error; err != nil {
			return nil, persistence(err)
		}
		summary.TotalExpenses = fuelCost + maintenanceCost
	}

	return summary, nil
}

// DailyPoint is one day in an activity series.
type DailyPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// FuelActivity returns total fuel cost per day for the `days` days
// ending at asOf, oldest first. Days without records appear as zero.
func (s *Service) FuelActivity(actor Actor, asOf time.Time, days int) ([]DailyPoint, error) {
	if err := s.requireActor(actor); err != nil {
		return nil, err
	}

	start := dayStart(asOf).AddDate(0, 0, -(days - 1))
	var records []model.FuelRecord
	if err := s.db.Where("date >= ?", start).Find(&records).Error; err != nil {
		return nil, persistence(err)
	}

	totals := make(map[string]float64, days)
	for _, r := range records {
		totals[r.Date.Format(validate.DateLayout)] += r.Cost
	}
	return buildSeries(start, days, totals), nil
}

// MaintenanceActivity returns the number of service events per day for
// the `days` days ending at asOf, oldest first.
func (s *Service) MaintenanceActivity(actor Actor, asOf time.Time, days int) ([]DailyPoint, error) {
	if err := s.requireActor(actor); err != nil {
		return nil, err
	}

	start := dayStart(asOf).AddDate(0, 0, -(days - 1))
	var records []model.MaintenanceRecord
	if err := s.db.Where("date >= ?", start).Find(&records).Error; err != nil {
		return nil, persistence(err)
	}

	totals := make(map[string]float64, days)
	for _, r := range records {
		totals[r.Date.Format(validate.DateLayout)]++
	}
	return buildSeries(start, days, totals), nil
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func buildSeries(start time.Time, days int, totals map[string]float64) []DailyPoint {
	series := make([]DailyPoint, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i).Format(validate.DateLayout)
		series = append(series, DailyPoint{Date: day, Value: totals[day]})
	}
	return series
}
