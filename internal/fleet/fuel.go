package fleet

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fleet-service/internal/authz"
	"fleet-service/internal/model"
	"fleet-service/internal/validate"
)

// CreateFuelRecord validates a fuel purchase against the owning vehicle,
// including the fuel/vehicle class compatibility rule, and stores it.
func (s *Service) CreateFuelRecord(actor Actor, in validate.FuelRecordInput) (*model.FuelRecord, error) {
	if err := s.authorize(actor, authz.ActionCreateFuelRecord); err != nil {
		return nil, err
	}

	vehicle, err := s.loadVehicle(in.VehicleID)
	if err != nil {
		return nil, err
	}

	if errs := validate.FuelRecord(in, vehicle.Type); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	date, _ := validate.ParseDate(in.Date)
	record := model.FuelRecord{
		VehicleID: vehicle.ID,
		Date:      date,
		Quantity:  in.Quantity,
		Cost:      in.Cost,
		Mileage:   in.Mileage,
		FuelType:  in.FuelType,
		Notes:     in.Notes,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, storeError(err)
	}
	return &record, nil
}

// UpdateFuelRecord revalidates and applies a full update. The record
// stays attached to its original vehicle.
func (s *Service) UpdateFuelRecord(actor Actor, id uint, in validate.FuelRecordInput) (*model.FuelRecord, error) {
	if err := s.authorize(actor, authz.ActionEditFuelRecord); err != nil {
		return nil, err
	}

	var record model.FuelRecord
	if err := s.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, persistence(err)
	}

	in.VehicleID = record.VehicleID
	vehicle, err := s.loadVehicle(record.VehicleID)
	if err != nil {
		return nil, err
	}

	if errs := validate.FuelRecord(in, vehicle.Type); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	date, _ := validate.ParseDate(in.Date)
	record.Date = date
	record.Quantity = in.Quantity
	record.Cost = in.Cost
	record.Mileage = in.Mileage
	record.FuelType = in.FuelType
	record.Notes = in.Notes

	if err := s.db.Save(&record).Error; err != nil {
		return nil, storeError(err)
	}
	return &record, nil
}

// DeleteFuelRecord removes a single fuel record.
func (s *Service) DeleteFuelRecord(actor Actor, id uint) error {
	if err := s.authorize(actor, authz.ActionDeleteFuelRecord); err != nil {
		return err
	}

	var record model.FuelRecord
	if err := s.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return persistence(err)
	}
	if err := s.db.Delete(&record).Error; err != nil {
		return persistence(err)
	}
	return nil
}

// GetFuelRecord returns a single fuel record.
func (s *Service) GetFuelRecord(actor Actor, id uint) (*model.FuelRecord, error) {
	if err := s.requireActor(actor); err != nil {
		return nil, err
	}

	var record model.FuelRecord
	if err := s.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, persistence(err)
	}
	return &record, nil
}

// CreateFuelRecords stores a batch of fuel purchases in one transaction.
// Any invalid row aborts the whole batch so no partial writes are ever
// visible.
func (s *Service) CreateFuelRecords(actor Actor, inputs []validate.FuelRecordInput) ([]model.FuelRecord, error) {
	if err := s.authorize(actor, authz.ActionCreateFuelRecord); err != nil {
		return nil, err
	}

	var errs validate.Errors
	records := make([]model.FuelRecord, 0, len(inputs))
	for i, in := range inputs {
		vehicle, err := s.loadVehicle(in.VehicleID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				errs = errs.Add(fmt.Sprintf("records[%d].vehicle_id", i), "vehicle not found")
				continue
			}
			return nil, err
		}
		rowErrs := validate.FuelRecord(in, vehicle.Type)
		for _, fe := range rowErrs {
			errs = errs.Add(fmt.Sprintf("records[%d].%s", i, fe.Field), fe.Message)
		}
		if len(rowErrs) > 0 {
			continue
		}

		date, _ := validate.ParseDate(in.Date)
		records = append(records, model.FuelRecord{
			VehicleID: vehicle.ID,
			Date:      date,
			Quantity:  in.Quantity,
			Cost:      in.Cost,
			Mileage:   in.Mileage,
			FuelType:  in.FuelType,
			Notes:     in.Notes,
		})
	}
	if len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := range records {
			if err := tx.Create(&records[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}
	return records, nil
}

// FuelFilter narrows the fuel log by vehicle and date range.
type FuelFilter struct {
	VehicleID uint
	StartDate string
	EndDate   string
}

// FuelLogSummary aggregates the filtered records.
type FuelLogSummary struct {
	TotalRecords int64   `json:"total_records"`
	TotalCost    float64 `json:"total_cost"`
	TotalFuel    float64 `json:"total_fuel"`
	AverageCost  float64 `json:"average_cost"`
}

// FuelLog returns fuel records newest first plus summary totals.
func (s *Service) FuelLog(actor Actor, filter FuelFilter) ([]model.FuelRecord, *FuelLogSummary, error) {
	if err := s.requireActor(actor); err != nil {
		return nil, nil, err
	}

	q := s.db.Model(&model.FuelRecord{})
	if filter.VehicleID != 0 {
		q = q.Where("vehicle_id = ?", filter.VehicleID)
	}
	if filter.StartDate != "" {
		start, err := validate.ParseDate(filter.StartDate)
		if err != nil {
			return nil, nil, validationFailed(validate.Errors{}.Add("start_date", "must be a date in YYYY-MM-DD format"))
		}
		q = q.Where("date >= ?", start)
	}
	if filter.EndDate != "" {
		end, err := validate.ParseDate(filter.EndDate)
		if err != nil {
			return nil, nil, validationFailed(validate.Errors{}.Add("end_date", "must be a date in YYYY-MM-DD format"))
		}
		q = q.Where("date <= ?", end)
	}

	var records []model.FuelRecord
	if err := q.Order("date DESC").Find(&records).Error; err != nil {
		return nil, nil, persistence(err)
	}

	summary := &FuelLogSummary{TotalRecords: int64(len(records))}
	for _, r := range records {
		summary.TotalCost += r.Cost
		summary.TotalFuel += r.Quantity
	}
	if summary.TotalRecords > 0 {
		summary.AverageCost = summary.TotalCost / float64(summary.TotalRecords)
	}
	return records, summary, nil
}

func (s *Service) loadVehicle(id uint) (*model.Vehicle, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var vehicle model.Vehicle
	if err := s.db.First(&vehicle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, persistence(err)
	}
	return &vehicle, nil
}
