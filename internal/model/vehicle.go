package model

import "time"

// VehicleType classifies a fleet asset. The type decides which fuel the
// vehicle accepts: heavy types run on diesel only, the rest take gasoline.
type VehicleType string

const (
	VehicleCar        VehicleType = "car"
	VehicleTruck      VehicleType = "truck"
	VehicleBus        VehicleType = "bus"
	VehicleSpecial    VehicleType = "special"
	VehicleMinivan    VehicleType = "minivan"
	VehicleSUV        VehicleType = "suv"
	VehiclePickup     VehicleType = "pickup"
	VehicleVan        VehicleType = "van"
	VehicleTrailer    VehicleType = "trailer"
	VehicleMotorcycle VehicleType = "motorcycle"
	VehicleExcavator  VehicleType = "excavator"
	VehicleBulldozer  VehicleType = "bulldozer"
	VehicleCrane      VehicleType = "crane"
)

// VehicleTypes lists every known vehicle type.
var VehicleTypes = []VehicleType{
	VehicleCar, VehicleTruck, VehicleBus, VehicleSpecial, VehicleMinivan,
	VehicleSUV, VehiclePickup, VehicleVan, VehicleTrailer, VehicleMotorcycle,
	VehicleExcavator, VehicleBulldozer, VehicleCrane,
}

// ValidVehicleType reports whether t is a known vehicle type.
func ValidVehicleType(t VehicleType) bool {
	for _, vt := range VehicleTypes {
		if t == vt {
			return true
		}
	}
	return false
}

// RequiresDiesel reports whether the vehicle type belongs to the diesel
// class. Motorcycles count as gasoline-class.
func (t VehicleType) RequiresDiesel() bool {
	switch t {
	case VehicleTruck, VehicleBus, VehicleVan, VehicleSpecial,
		VehicleExcavator, VehicleBulldozer, VehicleCrane, VehicleTrailer:
		return true
	}
	return false
}

// VehicleStatus is operator-set; any status may follow any other.
type VehicleStatus string

const (
	StatusActive      VehicleStatus = "active"
	StatusMaintenance VehicleStatus = "maintenance"
	StatusInactive    VehicleStatus = "inactive"
)

// ValidVehicleStatus reports whether s is a known status.
func ValidVehicleStatus(s VehicleStatus) bool {
	switch s {
	case StatusActive, StatusMaintenance, StatusInactive:
		return true
	}
	return false
}

// Vehicle is a fleet asset. Plate and VIN are globally unique; the
// database index is the final arbiter, the service pre-checks for
// friendlier errors.
type Vehicle struct {
	ID                  uint          `json:"id" gorm:"primaryKey"`
	Name                string        `json:"name" gorm:"type:varchar(100);not null"`
	Type                VehicleType   `json:"type" gorm:"type:varchar(50);not null"`
	Plate               string        `json:"plate" gorm:"type:varchar(20);uniqueIndex;not null"`
	Brand               string        `json:"brand" gorm:"type:varchar(50);not null"`
	VIN                 string        `json:"vin" gorm:"column:vin;type:varchar(50);uniqueIndex;not null"`
	Status              VehicleStatus `json:"status" gorm:"type:varchar(20);not null"`
	Year                int           `json:"year"`
	Mileage             float64       `json:"mileage" gorm:"default:0"`
	LastMaintenanceDate *time.Time    `json:"last_maintenance_date,omitempty"`
	NextMaintenanceDate *time.Time    `json:"next_maintenance_date,omitempty"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`

	FuelRecords        []FuelRecord        `json:"fuel_records,omitempty" gorm:"foreignKey:VehicleID"`
	MaintenanceRecords []MaintenanceRecord `json:"maintenance_records,omitempty" gorm:"foreignKey:VehicleID"`
}
