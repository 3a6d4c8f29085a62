package model

import "time"

// FuelType is the grade dispensed at a fueling. Gasoline-class vehicles
// take the octane grades; diesel-class vehicles take diesel only.
type FuelType string

const (
	Fuel92Octane FuelType = "92-octane"
	Fuel95Octane FuelType = "95-octane"
	Fuel98Octane FuelType = "98-octane"
	FuelDiesel   FuelType = "diesel"
)

// ValidFuelType reports whether f is a known fuel type.
func ValidFuelType(f FuelType) bool {
	switch f {
	case Fuel92Octane, Fuel95Octane, Fuel98Octane, FuelDiesel:
		return true
	}
	return false
}

// FuelRecord is one fuel purchase tied to exactly one vehicle.
type FuelRecord struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	VehicleID uint      `json:"vehicle_id" gorm:"index;not null"`
	Date      time.Time `json:"date" gorm:"not null"`
	Quantity  float64   `json:"fuel_quantity" gorm:"column:fuel_quantity;not null"`
	Cost      float64   `json:"fuel_cost" gorm:"column:fuel_cost;not null"`
	Mileage   float64   `json:"mileage" gorm:"not null"`
	FuelType  FuelType  `json:"fuel_type" gorm:"type:varchar(20);not null"`
	Notes     string    `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}
