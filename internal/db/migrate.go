package db

import (
	"fmt"
	"math"
	"time"

	"github.com/rekins/garage/internal/models"
	"gorm.io/gorm"
)

// AllModels returns the list of all GORM models for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.Car{},
		&models.WorkOrder{},
		&models.WorkItem{},
		&models.Appointment{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func moneyPtr(n float64) *float64 {
	v := money(n)
	return &v
}

// money rounds to cents, matching how totals are entered in the UI.
func money(n float64) float64 {
	return math.Round(n*100) / 100
}

type seedItem struct {
	typ         string
	description string
	quantity    float64
	unitPrice   float64
}

type seedOrder struct {
	carIdx        int
	title         string
	status        string
	paymentStatus string
	items         []seedItem
}

// SeedDemo inserts a demo data set: five cars and a handful of work orders
// with line items. Idempotent: skipped entirely when any work orders exist.
func SeedDemo(db *gorm.DB) (int, error) {
	var woCount int64
	if err := db.Model(&models.WorkOrder{}).Count(&woCount).Error; err != nil {
		return 0, fmt.Errorf("db: count work orders: %w", err)
	}
	if woCount > 0 {
		return 0, nil
	}

	carsData := []models.Car{
		{LicensePlate: "AA-1234", VIN: strPtr("LVV00000000000001"), Year: intPtr(2015), Make: "Toyota", Model: "Corolla", Mileage: intPtr(150000), OwnerName: "Rekins Auto Service", OwnerPhone: "+371 0000 0000", Color: "Silver", Notes: strPtr("Demo car 1")},
		{LicensePlate: "BB-5678", VIN: strPtr("LVV00000000000002"), Year: intPtr(2018), Make: "Volkswagen", Model: "Golf", Mileage: intPtr(98000), OwnerName: "Rekins Auto Service", OwnerPhone: "+371 0000 0000", Color: "Blue", Notes: strPtr("Demo car 2")},
		{LicensePlate: "CC-9012", VIN: strPtr("LVV00000000000003"), Year: intPtr(2012), Make: "BMW", Model: "320d", Mileage: intPtr(210000), OwnerName: "Rekins Auto Service", OwnerPhone: "+371 0000 0000", Color: "Black", Notes: strPtr("Demo car 3")},
		{LicensePlate: "DD-3456", VIN: strPtr("LVV00000000000004"), Year: intPtr(2020), Make: "Skoda", Model: "Octavia", Mileage: intPtr(45000), OwnerName: "Rekins Auto Service", OwnerPhone: "+371 0000 0000", Color: "White", Notes: strPtr("Demo car 4")},
		{LicensePlate: "EE-7890", VIN: strPtr("LVV00000000000005"), Year: intPtr(2016), Make: "Audi", Model: "A4", Mileage: intPtr(165000), OwnerName: "Rekins Auto Service", OwnerPhone: "+371 0000 0000", Color: "Grey", Notes: strPtr("Demo car 5")},
	}

	var cars []models.Car
	for _, data := range carsData {
		var existing models.Car
		err := db.Where("license_plate = ?", data.LicensePlate).First(&existing).Error
		switch {
		case err == nil:
			cars = append(cars, existing)
			continue
		case err != gorm.ErrRecordNotFound:
			return 0, fmt.Errorf("db: seed car %s: %w", data.LicensePlate, err)
		}
		car := data
		if err := db.Create(&car).Error; err != nil {
			return 0, fmt.Errorf("db: seed car %s: %w", data.LicensePlate, err)
		}
		cars = append(cars, car)
	}

	orders := []seedOrder{
		{0, "Oil change and inspection", models.StatusDone, models.PaymentPaid, []seedItem{
			{models.ItemLabor, "Oil change labor", 1, 30},
			{models.ItemPart, "5W30 Oil 5L", 1, 40},
			{models.ItemPart, "Oil filter", 1, 10},
		}},
		{1, "Front brake pads replacement", models.StatusInProgress, models.PaymentUnpaid, []seedItem{
			{models.ItemLabor, "Replace pads labor", 1.5, 35},
			{models.ItemPart, "Front brake pads set", 1, 65},
		}},
		{2, "Diagnostics for engine noise", models.StatusDiagnostic, models.PaymentUnpaid, []seedItem{
			{models.ItemLabor, "Engine diagnostic", 1, 50},
		}},
		{3, "Replace battery", models.StatusWaitingParts, models.PaymentPartial, []seedItem{
			{models.ItemLabor, "Install new battery", 0.5, 35},
			{models.ItemPart, "12V 70Ah battery", 1, 120},
		}},
		{4, "Timing belt kit replacement", models.StatusNew, models.PaymentUnpaid, []seedItem{
			{models.ItemLabor, "Timing belt labor", 4, 40},
			{models.ItemPart, "Timing belt kit", 1, 180},
			{models.ItemPart, "Water pump", 1, 80},
		}},
		{0, "Rear shock absorbers", models.StatusInProgress, models.PaymentPartial, []seedItem{
			{models.ItemLabor, "Replace rear shocks", 1.2, 40},
			{models.ItemPart, "Rear shock absorber (pair)", 1, 150},
		}},
		{2, "AC recharge and leak test", models.StatusDone, models.PaymentPaid, []seedItem{
			{models.ItemLabor, "AC service", 1, 45},
			{models.ItemPart, "Refrigerant R134a", 0.6, 50},
			{models.ItemPart, "UV dye", 1, 8},
		}},
	}

	now := time.Now()
	created := 0
	for i, so := range orders {
		var totalLabor, totalParts float64
		var items []models.WorkItem
		for _, it := range so.items {
			total := money(it.quantity * it.unitPrice)
			if it.typ == models.ItemLabor {
				totalLabor = money(totalLabor + total)
			} else {
				totalParts = money(totalParts + total)
			}
			items = append(items, models.WorkItem{
				Type:        it.typ,
				Description: it.description,
				Quantity:    it.quantity,
				UnitPrice:   it.unitPrice,
				Total:       total,
			})
		}

		wo := models.WorkOrder{
			CarID:         cars[so.carIdx].ID,
			Title:         so.title,
			Status:        so.status,
			PaymentStatus: so.paymentStatus,
			TotalLabor:    moneyPtr(totalLabor),
			TotalParts:    moneyPtr(totalParts),
			TotalPrice:    moneyPtr(totalLabor + totalParts),
			CreatedAt:     now.AddDate(0, 0, -(i + 1)),
			Items:         items,
		}
		if so.status == models.StatusDone {
			done := now.AddDate(0, 0, -i)
			wo.CompletedAt = &done
		}
		if so.paymentStatus != models.PaymentUnpaid {
			wo.PaymentMethod = strPtr(models.MethodCard)
		}
		if so.paymentStatus == models.PaymentPaid {
			paid := now.AddDate(0, 0, -i)
			wo.PaidAt = &paid
		}

		if err := db.Create(&wo).Error; err != nil {
			return created, fmt.Errorf("db: seed work order %q: %w", so.title, err)
		}
		created++
	}

	return created, nil
}
