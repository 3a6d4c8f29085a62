package fleet

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fleet-service/internal/authz"
	"fleet-service/internal/model"
	"fleet-service/internal/validate"
)

// CreateMaintenanceRecord validates and stores a service event.
func (s *Service) CreateMaintenanceRecord(actor Actor, in validate.MaintenanceRecordInput) (*model.MaintenanceRecord, error) {
	if err := s.authorize(actor, authz.ActionCreateMaintenanceRecord); err != nil {
		return nil, err
	}

	if _, err := s.loadVehicle(in.VehicleID); err != nil {
		return nil, err
	}

	if errs := validate.MaintenanceRecord(in); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	date, _ := validate.ParseDate(in.Date)
	record := model.MaintenanceRecord{
		VehicleID:          in.VehicleID,
		Date:               date,
		Description:        in.Description,
		Mileage:            in.Mileage,
		Cost:               in.Cost,
		NextServiceMileage: in.NextServiceMileage,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, storeError(err)
	}
	return &record, nil
}

// UpdateMaintenanceRecord revalidates and applies a full update. The
// record stays attached to its original vehicle.
func (s *Service) UpdateMaintenanceRecord(actor Actor, id uint, in validate.MaintenanceRecordInput) (*model.MaintenanceRecord, error) {
	if err := s.authorize(actor, authz.ActionEditMaintenanceRecord); err != nil {
		return nil, err
	}

	var record model.MaintenanceRecord
	if err := s.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, persistence(err)
	}

	in.VehicleID = record.VehicleID
	if errs := validate.MaintenanceRecord(in); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	date, _ := validate.ParseDate(in.Date)
	record.Date = date
	record.Description = in.Description
	record.Mileage = in.Mileage
	record.Cost = in.Cost
	record.NextServiceMileage = in.NextServiceMileage

	if err := s.db.Save(&record).Error; err != nil {
		return nil, storeError(err)
	}
	return &record, nil
}

// DeleteMaintenanceRecord removes a single maintenance record.
func (s *Service) DeleteMaintenanceRecord(actor Actor, id uint) error {
	if err := s.authorize(actor, authz.ActionDeleteMaintenanceRecord); err != nil {
		return err
	}

	var record model.MaintenanceRecord
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

// GetMaintenanceRecord returns a single maintenance record.
func (s *Service) GetMaintenanceRecord(actor Actor, id uint) (*model.MaintenanceRecord, error) {
	if err := s.requireActor(actor); err != nil {
		return nil, err
	}

	var record model.MaintenanceRecord
	if err := s.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, persistence(err)
	}
	return &record, nil
}

// CreateMaintenanceRecords stores a batch of service events in one
// transaction; any invalid row aborts the whole batch.
func (s *Service) CreateMaintenanceRecords(actor Actor, inputs []validate.MaintenanceRecordInput) ([]model.MaintenanceRecord, error) {
	if err := s.authorize(actor, authz.ActionCreateMaintenanceRecord); err != nil {
		return nil, err
	}

	var errs validate.Errors
	records := make([]model.MaintenanceRecord, 0, len(inputs))
	for i, in := range inputs {
		if _, err := s.loadVehicle(in.VehicleID); err != nil {
			if errors.Is(err, ErrNotFound) {
				errs = errs.Add(fmt.Sprintf("records[%d].vehicle_id", i), "vehicle not found")
				continue
			}
			return nil, err
		}
		rowErrs := validate.MaintenanceRecord(in)
		for _, fe := range rowErrs {
			errs = errs.Add(fmt.Sprintf("records[%d].%s", i, fe.Field), fe.Message)
		}
		if len(rowErrs) > 0 {
			continue
		}

		date, _ := validate.ParseDate(in.Date)
		records = append(records, model.MaintenanceRecord{
			VehicleID:          in.VehicleID,
			Date:               date,
			Description:        in.Description,
			Mileage:            in.Mileage,
			Cost:               in.Cost,
			NextServiceMileage: in.NextServiceMileage,
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

// MaintenanceFilter narrows the maintenance log by vehicle and date range.
type MaintenanceFilter struct {
	VehicleID uint
	StartDate string
	EndDate   string
}

// MaintenanceLogSummary aggregates the filtered records.
type MaintenanceLogSummary struct {
	TotalRecords     int64   `json:"total_records"`
	TotalCost        float64 `json:"total_cost"`
	VehiclesServiced int64   `json:"vehicles_serviced"`
	AverageCost      float64 `json:"average_cost"`
}

// MaintenanceLog returns maintenance records newest first plus summary
// totals.
func (s *Service) MaintenanceLog(actor Actor, filter MaintenanceFilter) ([]model.MaintenanceRecord, *MaintenanceLogSummary, error) {
	if err := s.requireActor(actor); err != nil {
		return nil, nil, err
	}

	q := s.db.Model(&model.MaintenanceRecord{})
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

	var records []model.MaintenanceRecord
	if err := q.Order("date DESC").Find(&records).Error; err != nil {
		return nil, nil, persistence(err)
	}

	summary := &MaintenanceLogSummary{TotalRecords: int64(len(records))}
	seen := make(map[uint]bool)
	for _, r := range records {
		summary.TotalCost += r.Cost
		if !seen[r.VehicleID] {
			seen[r.VehicleID] = true
			summary.VehiclesServiced++
		}
	}
	if summary.TotalRecords > 0 {
		summary.AverageCost = summary.TotalCost / float64(summary.TotalRecords)
	}
	return records, summary, nil
}
