package workorder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rekins/garage/internal/apperr"
	"github.com/rekins/garage/internal/models"
	"gorm.io/gorm"
)

// AddItemOpts holds the fields of a new line item. Quantity and UnitPrice
// are pointers so that an explicit zero is distinguishable from absence;
// zero is a legal value for both. Total is stored as supplied, never
// recomputed from Quantity and UnitPrice.
type AddItemOpts struct {
	Type        string
	Description string
	Quantity    *float64
	UnitPrice   *float64
	Total       *float64
}

// UpdateItemOpts holds the patchable fields of a line item; nil leaves the
// field untouched.
type UpdateItemOpts struct {
	Type        *string
	Description *string
	Quantity    *float64
	UnitPrice   *float64
	Total       *float64
}

// AddItem attaches a new line item to a work order.
func AddItem(db *gorm.DB, workOrderID uint, opts AddItemOpts) (*models.WorkItem, error) {
	opts.Description = strings.TrimSpace(opts.Description)
	if opts.Type == "" || opts.Description == "" || opts.Quantity == nil || opts.UnitPrice == nil {
		return nil, fmt.Errorf("%w: type, description, quantity, and unitPrice are required", apperr.ErrInvalid)
	}
	if !models.ValidItemType(opts.Type) {
		return nil, fmt.Errorf("%w: unknown item type %q", apperr.ErrInvalid, opts.Type)
	}

	var wo models.WorkOrder
	if err := db.First(&wo, workOrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: work order %d", apperr.ErrNotFound, workOrderID)
		}
		return nil, fmt.Errorf("workorder: load %d: %w", workOrderID, err)
	}

	item := models.WorkItem{
		WorkOrderID: workOrderID,
		Type:        opts.Type,
		Description: opts.Description,
		Quantity:    *opts.Quantity,
		UnitPrice:   *opts.UnitPrice,
	}
	if opts.Total != nil {
		item.Total = *opts.Total
	}

	if err := db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("workorder: add item: %w", err)
	}
	return &item, nil
}

// UpdateItem patches a line item. The item is addressed purely by its own
// ID; containment in a particular work order is not checked.
func UpdateItem(db *gorm.DB, itemID uint, opts UpdateItemOpts) (*models.WorkItem, error) {
	var item models.WorkItem
	if err := db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: item %d", apperr.ErrNotFound, itemID)
		}
		return nil, fmt.Errorf("workorder: load item %d: %w", itemID, err)
	}

	updates := map[string]interface{}{}
	if opts.Type != nil {
		if !models.ValidItemType(*opts.Type) {
			return nil, fmt.Errorf("%w: unknown item type %q", apperr.ErrInvalid, *opts.Type)
		}
		updates["type"] = *opts.Type
	}
	if opts.Description != nil {
		updates["description"] = *opts.Description
	}
	if opts.Quantity != nil {
		updates["quantity"] = *opts.Quantity
	}
	if opts.UnitPrice != nil {
		updates["unit_price"] = *opts.UnitPrice
	}
	if opts.Total != nil {
		updates["total"] = *opts.Total
	}

	if len(updates) > 0 {
		if err := db.Model(&item).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("workorder: update item %d: %w", itemID, err)
		}
	}

	if err := db.First(&item, itemID).Error; err != nil {
		return nil, fmt.Errorf("workorder: reload item %d: %w", itemID, err)
	}
	return &item, nil
}

// DeleteItem removes a line item. Hard delete; the parent work order's
// stored totals are not recomputed.
func DeleteItem(db *gorm.DB, itemID uint) error {
	res := db.Delete(&models.WorkItem{}, itemID)
	if res.Error != nil {
		return fmt.Errorf("workorder: delete item %d: %w", itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: item %d", apperr.ErrNotFound, itemID)
	}
	return nil
}
