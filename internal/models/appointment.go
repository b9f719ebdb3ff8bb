package models

import "time"

// Appointment is a scheduled calendar slot for a car. Appointments are
// independent of work orders and are never edited after creation.
type Appointment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CarID       uint      `gorm:"not null;index" json:"carId"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	StartTime   time.Time `gorm:"not null;index" json:"startTime"`
	EndTime     time.Time `gorm:"not null" json:"endTime"`
	CreatedAt   time.Time `json:"createdAt"`

	Car *Car `gorm:"foreignKey:CarID" json:"car,omitempty"`
}
