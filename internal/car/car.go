// Package car provides vehicle registration, lookup, and resolution.
package car

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rekins/garage/internal/apperr"
	"github.com/rekins/garage/internal/models"
	"gorm.io/gorm"
)

// Opts holds the writable fields of a car, used for both create and the
// full-update edit path. String fields are trimmed; blank required fields
// fail validation.
type Opts struct {
	LicensePlate string
	VIN          string
	Year         *int
	Make         string
	Model        string
	Mileage      *int
	Color        string
	OwnerName    string
	OwnerPhone   string
	Notes        string
}

// ListFilters holds optional filters for listing cars.
type ListFilters struct {
	// HasOpenWork restricts the list to cars with at least one work order
	// that is neither DONE nor CANCELLED.
	HasOpenWork bool
}

// validate trims opts in place and checks required fields.
func (o *Opts) validate() error {
	o.LicensePlate = strings.TrimSpace(o.LicensePlate)
	o.Make = strings.TrimSpace(o.Make)
	o.Model = strings.TrimSpace(o.Model)
	o.OwnerPhone = strings.TrimSpace(o.OwnerPhone)
	o.VIN = strings.TrimSpace(o.VIN)
	o.Notes = strings.TrimSpace(o.Notes)
	o.Color = strings.TrimSpace(o.Color)
	o.OwnerName = strings.TrimSpace(o.OwnerName)

	if o.LicensePlate == "" || o.Make == "" || o.Model == "" || o.OwnerPhone == "" {
		return fmt.Errorf("%w: licensePlate, make, model, and ownerPhone are required", apperr.ErrInvalid)
	}
	return nil
}

// apply copies validated opts onto a car record.
func (o *Opts) apply(c *models.Car) {
	c.LicensePlate = o.LicensePlate
	c.Make = o.Make
	c.Model = o.Model
	c.OwnerPhone = o.OwnerPhone
	c.Year = o.Year
	c.Mileage = o.Mileage

	c.VIN = nil
	if o.VIN != "" {
		v := o.VIN
		c.VIN = &v
	}
	c.Notes = nil
	if o.Notes != "" {
		n := o.Notes
		c.Notes = &n
	}

	// Color and owner name fall back to the schema default when blank.
	c.Color = o.Color
	if c.Color == "" {
		c.Color = "Unknown"
	}
	c.OwnerName = o.OwnerName
	if c.OwnerName == "" {
		c.OwnerName = "Unknown"
	}
}

// Create registers a new car. Duplicate license plates fail with
// apperr.ErrConflict.
func Create(db *gorm.DB, opts Opts) (*models.Car, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	var c models.Car
	opts.apply(&c)

	if err := db.Create(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: a car with license plate %q already exists", apperr.ErrConflict, c.LicensePlate)
		}
		return nil, fmt.Errorf("car: create: %w", err)
	}
	return &c, nil
}

// Update performs a full update of a car's details. Required fields are
// re-validated, so an existing value cannot be blanked.
func Update(db *gorm.DB, id uint, opts Opts) (*models.Car, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	var c models.Car
	if err := db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: car %d", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("car: load %d: %w", id, err)
	}

	opts.apply(&c)

	if err := db.Save(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: a car with license plate %q already exists", apperr.ErrConflict, c.LicensePlate)
		}
		return nil, fmt.Errorf("car: update %d: %w", id, err)
	}
	return &c, nil
}

// Get loads one car with its work orders, newest first.
func Get(db *gorm.DB, id uint) (*models.Car, error) {
	var c models.Car
	err := db.Preload("WorkOrders", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("created_at DESC")
	}).First(&c, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: car %d", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("car: get %d: %w", id, err)
	}
	return &c, nil
}

// List returns cars, most recently registered first. With HasOpenWork it
// returns only cars that have at least one open work order.
func List(db *gorm.DB, filters ListFilters) ([]models.Car, error) {
	q := db.Order("id DESC")
	if filters.HasOpenWork {
		q = q.Where(
			"EXISTS (SELECT 1 FROM work_orders WHERE work_orders.car_id = cars.id AND work_orders.status NOT IN ?)",
			[]string{models.StatusDone, models.StatusCancelled},
		)
	}

	var cars []models.Car
	if err := q.Find(&cars).Error; err != nil {
		return nil, fmt.Errorf("car: list: %w", err)
	}
	return cars, nil
}

// Resolve locates exactly one car by numeric ID or license plate. The ID
// wins when both are supplied; the plate is trimmed, and blank-after-trim
// counts as absent. Used as the lookup gate before creating work orders
// and appointments.
func Resolve(db *gorm.DB, id uint, licensePlate string) (*models.Car, error) {
	if id != 0 {
		var c models.Car
		if err := db.First(&c, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: car %d", apperr.ErrNotFound, id)
			}
			return nil, fmt.Errorf("car: resolve %d: %w", id, err)
		}
		return &c, nil
	}

	plate := strings.TrimSpace(licensePlate)
	if plate == "" {
		return nil, fmt.Errorf("%w: unable to resolve car: carId or carLicensePlate is required", apperr.ErrInvalid)
	}

	var c models.Car
	if err := db.Where("license_plate = ?", plate).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no car for license plate %q", apperr.ErrNotFound, plate)
		}
		return nil, fmt.Errorf("car: resolve plate %q: %w", plate, err)
	}
	return &c, nil
}
