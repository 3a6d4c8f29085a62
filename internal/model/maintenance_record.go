package model

import "time"

// MaintenanceRecord is one service event tied to exactly one vehicle.
// Cost may be zero; NextServiceMileage is optional.
type MaintenanceRecord struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	VehicleID          uint      `json:"vehicle_id" gorm:"index;not null"`
	Date               time.Time `json:"date" gorm:"not null"`
	Description        string    `json:"description" gorm:"type:text;not null"`
	Mileage            float64   `json:"mileage" gorm:"not null"`
	Cost               float64   `json:"cost"`
	NextServiceMileage *float64  `json:"next_maintenance_mileage,omitempty" gorm:"column:next_maintenance_mileage"`
	CreatedAt          time.Time `json:"created_at"`
}
