// Package workorder owns the work order lifecycle and its line item ledger.
package workorder

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rekins/garage/internal/apperr"
	"github.com/rekins/garage/internal/car"
	"github.com/rekins/garage/internal/models"
	"gorm.io/gorm"
)

// CreateOpts holds parameters for opening a new work order. The car is
// addressed by ID or license plate (ID wins when both are set).
type CreateOpts struct {
	CarID               uint
	CarLicensePlate     string
	Status              string
	Title               string
	CustomerComplaint   string
	InternalNotes       string
	EstimatedCompletion *time.Time
	PaymentStatus       string
	PaymentMethod       string
	TotalLabor          *float64
	TotalParts          *float64
	TotalPrice          *float64
}

// UpdateOpts holds the patchable fields of a work order. Nil means "leave
// untouched". Everything else on the record is immutable after creation.
type UpdateOpts struct {
	Status            *string
	PaymentStatus     *string
	Title             *string
	CustomerComplaint *string
	InternalNotes     *string
}

// normalizeText trims s and maps whitespace-only input to nil, so optional
// free-text fields are stored as absent rather than empty.
func normalizeText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Create resolves the car and opens a work order against it. The two store
// operations are sequential and independently failable; there is no
// surrounding transaction.
func Create(db *gorm.DB, opts CreateOpts) (*models.WorkOrder, error) {
	opts.Title = strings.TrimSpace(opts.Title)
	if opts.Status == "" || opts.Title == "" || opts.PaymentStatus == "" {
		return nil, fmt.Errorf("%w: status, title, and paymentStatus are required", apperr.ErrInvalid)
	}
	if !models.ValidStatus(opts.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", apperr.ErrInvalid, opts.Status)
	}
	if !models.ValidPaymentStatus(opts.PaymentStatus) {
		return nil, fmt.Errorf("%w: unknown payment status %q", apperr.ErrInvalid, opts.PaymentStatus)
	}

	c, err := car.Resolve(db, opts.CarID, opts.CarLicensePlate)
	if err != nil {
		return nil, err
	}

	wo := models.WorkOrder{
		CarID:               c.ID,
		Status:              opts.Status,
		Title:               opts.Title,
		CustomerComplaint:   normalizeText(opts.CustomerComplaint),
		InternalNotes:       normalizeText(opts.InternalNotes),
		EstimatedCompletion: opts.EstimatedCompletion,
		PaymentStatus:       opts.PaymentStatus,
		TotalLabor:          opts.TotalLabor,
		TotalParts:          opts.TotalParts,
		TotalPrice:          opts.TotalPrice,
	}
	if m := strings.TrimSpace(opts.PaymentMethod); m != "" {
		wo.PaymentMethod = &m
	}

	if err := db.Create(&wo).Error; err != nil {
		return nil, fmt.Errorf("workorder: create: %w", err)
	}
	wo.Car = c
	return &wo, nil
}

// Update applies a partial update. A status change to DONE stamps
// CompletedAt with the current time, unconditionally, even when the order
// is already DONE; the stamp is never cleared by later transitions. The
// same one-way rule applies to PaymentStatus PAID and PaidAt.
func Update(db *gorm.DB, id uint, opts UpdateOpts) (*models.WorkOrder, error) {
	var wo models.WorkOrder
	if err := db.First(&wo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: work order %d", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("workorder: load %d: %w", id, err)
	}

	updates := map[string]interface{}{}

	if opts.Status != nil {
		if !models.ValidStatus(*opts.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", apperr.ErrInvalid, *opts.Status)
		}
		updates["status"] = *opts.Status
		if *opts.Status == models.StatusDone {
			updates["completed_at"] = time.Now()
		}
	}

	if opts.PaymentStatus != nil {
		if !models.ValidPaymentStatus(*opts.PaymentStatus) {
			return nil, fmt.Errorf("%w: unknown payment status %q", apperr.ErrInvalid, *opts.PaymentStatus)
		}
		updates["payment_status"] = *opts.PaymentStatus
		if *opts.PaymentStatus == models.PaymentPaid {
			updates["paid_at"] = time.Now()
		}
	}

	if opts.CustomerComplaint != nil {
		updates["customer_complaint"] = normalizeText(*opts.CustomerComplaint)
	}
	if opts.InternalNotes != nil {
		updates["internal_notes"] = normalizeText(*opts.InternalNotes)
	}
	if opts.Title != nil {
		updates["title"] = *opts.Title
	}

	if len(updates) > 0 {
		if err := db.Model(&wo).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("workorder: update %d: %w", id, err)
		}
	}

	return Get(db, id)
}

// Get loads one work order with its car and line items in entry order.
func Get(db *gorm.DB, id uint) (*models.WorkOrder, error) {
	var wo models.WorkOrder
	err := db.Preload("Car").Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("created_at ASC, id ASC")
	}).First(&wo, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: work order %d", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("workorder: get %d: %w", id, err)
	}
	return &wo, nil
}

// List returns all work orders with their car summaries, newest first.
func List(db *gorm.DB) ([]models.WorkOrder, error) {
	var orders []models.WorkOrder
	if err := db.Preload("Car").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("workorder: list: %w", err)
	}
	return orders, nil
}
