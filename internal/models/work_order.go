package models

import "time"

// Work order lifecycle statuses. Any status may follow any other; DONE is
// special only in that reaching it stamps CompletedAt.
const (
	StatusNew          = "NEW"
	StatusDiagnostic   = "DIAGNOSTIC"
	StatusWaitingParts = "WAITING_PARTS"
	StatusInProgress   = "IN_PROGRESS"
	StatusDone         = "DONE"
	StatusCancelled    = "CANCELLED"
)

// Payment statuses. PAID stamps PaidAt.
const (
	PaymentUnpaid  = "UNPAID"
	PaymentPartial = "PARTIAL"
	PaymentPaid    = "PAID"
)

// Payment methods.
const (
	MethodCash     = "CASH"
	MethodCard     = "CARD"
	MethodTransfer = "TRANSFER"
	MethodOther    = "OTHER"
)

// Line item types.
const (
	ItemLabor = "LABOR"
	ItemPart  = "PART"
)

// ValidStatus reports whether s is a known work order status.
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusDiagnostic, StatusWaitingParts, StatusInProgress, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentUnpaid, PaymentPartial, PaymentPaid:
		return true
	}
	return false
}

// ValidItemType reports whether s is a known line item type.
func ValidItemType(s string) bool {
	return s == ItemLabor || s == ItemPart
}

// WorkOrder is one repair job on a car. Status and payment status are
// independent axes; the stored totals are a snapshot supplied at creation,
// not kept in sync with the line items (consumers recompute from items).
type WorkOrder struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	CarID               uint       `gorm:"not null;index" json:"carId"`
	Status              string     `gorm:"size:16;default:NEW;index" json:"status"`
	Title               string     `gorm:"size:255;not null" json:"title"`
	CustomerComplaint   *string    `gorm:"type:text" json:"customerComplaint"`
	InternalNotes       *string    `gorm:"type:text" json:"internalNotes"`
	EstimatedCompletion *time.Time `json:"estimatedCompletion"`
	PaymentStatus       string     `gorm:"size:16;default:UNPAID" json:"paymentStatus"`
	PaymentMethod       *string    `gorm:"size:16" json:"paymentMethod"`
	TotalLabor          *float64   `gorm:"type:decimal(10,2)" json:"totalLabor"`
	TotalParts          *float64   `gorm:"type:decimal(10,2)" json:"totalParts"`
	TotalPrice          *float64   `gorm:"type:decimal(10,2)" json:"totalPrice"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
	CompletedAt         *time.Time `json:"completedAt"`
	PaidAt              *time.Time `json:"paidAt"`

	Car   *Car       `gorm:"foreignKey:CarID" json:"car,omitempty"`
	Items []WorkItem `gorm:"foreignKey:WorkOrderID" json:"items,omitempty"`
}

// WorkItem is one billable line (labor or part) within a work order.
// Total is caller-supplied and stored as-is; it is not recomputed from
// Quantity and UnitPrice server-side.
type WorkItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	WorkOrderID uint      `gorm:"not null;index" json:"workOrderId"`
	Type        string    `gorm:"size:16;not null" json:"type"`
	Description string    `gorm:"size:255;not null" json:"description"`
	Quantity    float64   `gorm:"type:decimal(10,2);not null" json:"quantity"`
	UnitPrice   float64   `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
	Total       float64   `gorm:"type:decimal(10,2);not null" json:"total"`
	CreatedAt   time.Time `json:"createdAt"`
}
