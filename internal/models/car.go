package models

import "time"

// Car is a registered vehicle, the root entity everything else hangs off.
// The license plate is the human-facing identifier; OwnerPhone is the
// de facto customer key (see the customer package).
type Car struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	LicensePlate string  `gorm:"size:16;uniqueIndex;not null" json:"licensePlate"`
	VIN          *string `gorm:"size:32" json:"vin"`
	Year         *int    `json:"year"`
	Make         string  `gorm:"size:64;not null" json:"make"`
	Model        string  `gorm:"size:64;not null" json:"model"`
	Mileage      *int    `json:"mileage"`
	Color        string  `gorm:"size:32;default:Unknown" json:"color"`
	OwnerName    string  `gorm:"size:128;default:Unknown" json:"ownerName"`
	OwnerPhone   string  `gorm:"size:32;not null;index" json:"ownerPhone"`
	Notes        *string `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	WorkOrders   []WorkOrder   `gorm:"foreignKey:CarID" json:"workOrders,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:CarID" json:"appointments,omitempty"`
}
