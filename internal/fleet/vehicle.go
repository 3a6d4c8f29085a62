package fleet

import (
	"errors"

	"gorm.io/gorm"

	"fleet-service/internal/authz"
	"fleet-service/internal/model"
	"fleet-service/internal/validate"
)

// CreateVehicle validates and stores a new fleet asset.
func (s *Service) CreateVehicle(actor Actor, in validate.VehicleInput) (*model.Vehicle, error) {
	if err := s.authorize(actor, authz.ActionCreateVehicle); err != nil {
		return nil, err
	}

	errs := validate.Vehicle(in)
	errs, err := s.checkVehicleUniqueness(errs, in, 0)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	vehicle := model.Vehicle{
		Name:    in.Name,
		Type:    in.Type,
		Plate:   in.Plate,
		Brand:   in.Brand,
		VIN:     in.VIN,
		Status:  in.Status,
		Year:    in.Year,
		Mileage: in.Mileage,
	}
	if err := s.db.Create(&vehicle).Error; err != nil {
		return nil, storeError(err)
	}
	return &vehicle, nil
}

// UpdateVehicle validates and applies a full field update. The status
// field moves freely between active, maintenance and inactive.
func (s *Service) UpdateVehicle(actor Actor, id uint, in validate.VehicleInput) (*model.Vehicle, error) {
	if err := s.authorize(actor, authz.ActionEditVehicle); err != nil {
		return nil, err
	}

	var vehicle model.Vehicle
	if err := s.db.First(&vehicle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, persistence(err)
	}

	errs := validate.Vehicle(in)
	errs, err := s.checkVehicleUniqueness(errs, in, id)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	vehicle.Name = in.Name
	vehicle.Type = in.Type
	vehicle.Plate = in.Plate
	vehicle.Brand = in.Brand
	vehicle.VIN = in.VIN
	vehicle.Status = in.Status
	vehicle.Year = in.Year
	vehicle.Mileage = in.Mileage

	if err := s.db.Save(&vehicle).Error; err != nil {
		return nil, storeError(err)
	}
	return &vehicle, nil
}

// DeleteVehicle removes a vehicle together with its fuel and maintenance
// records. The cascade is explicit application logic and runs in one
// transaction; a failure at any step rolls everything back.
func (s *Service) DeleteVehicle(actor Actor, id uint) error {
	if err := s.authorize(actor, authz.ActionDeleteVehicle); err != nil {
		return err
	}

	var vehicle model.Vehicle
	if err := s.db.First(&vehicle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return persistence(err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vehicle_id = ?", id).Delete(&model.FuelRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("vehicle_id = ?", id).Delete(&model.MaintenanceRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Vehicle{}, id).Error
	})
	if err != nil {
		return persistence(err)
	}
	return nil
}

// GetVehicle returns a vehicle with its fuel and maintenance history,
// newest records first.
func (s *Service) GetVehicle(actor Actor, id uint) (*model.Vehicle, error) {
	if err := s.requireActor(actor); err != nil {
		return nil, err
	}

	var vehicle model.Vehicle
	err := s.db.
		Preload("FuelRecords", func(db *gorm.DB) *gorm.DB { return db.Order("date DESC") }).
		Preload("MaintenanceRecords", func(db *gorm.DB) *gorm.DB { return db.Order("date DESC") }).
		First(&vehicle, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, persistence(err)
	}
	return &vehicle, nil
}

// VehicleFilter narrows ListVehicles. Search matches name, plate, brand
// or VIN, case-insensitively.
type VehicleFilter struct {
	Search string
	Type   model.VehicleType
	Status model.VehicleStatus
}

// ListVehicles returns vehicles matching the filter, ordered by name.
func (s *Service) ListVehicles(actor Actor, filter VehicleFilter) ([]model.Vehicle, error) {
	if err := s.requireActor(actor); err != nil {
		return nil, err
	}

	q := s.db.Model(&model.Vehicle{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(
			"name LIKE ? OR plate LIKE ? OR brand LIKE ? OR vin LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var vehicles []model.Vehicle
	if err := q.Order("name").Find(&vehicles).Error; err != nil {
		return nil, persistence(err)
	}
	return vehicles, nil
}

func (s *Service) checkVehicleUniqueness(errs validate.Errors, in validate.VehicleInput, excludeID uint) (validate.Errors, error) {
	if in.VIN != "" {
		taken, err := s.fieldTaken(&model.Vehicle{}, "vin", in.VIN, excludeID)
		if err != nil {
			return nil, err
		}
		if taken {
			errs = errs.Add("vin", "a vehicle with this VIN already exists")
		}
	}
	if in.Plate != "" {
		taken, err := s.fieldTaken(&model.Vehicle{}, "plate", in.Plate, excludeID)
		if err != nil {
			return nil, err
		}
		if taken {
			errs = errs.Add("plate", "a vehicle with this plate already exists")
		}
	}
	return errs, nil
}
