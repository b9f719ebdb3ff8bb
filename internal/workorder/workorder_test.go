package workorder

import (
	"errors"
	"testing"
	"time"

	"github.com/rekins/garage/internal/apperr"
	"github.com/rekins/garage/internal/car"
	"github.com/rekins/garage/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Car{}, &models.WorkOrder{}, &models.WorkItem{}, &models.Appointment{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCar(t *testing.T, db *gorm.DB) *models.Car {
	t.Helper()
	c, err := car.Create(db, car.Opts{
		LicensePlate: "AB-1234",
		Make:         "Toyota",
		Model:        "Corolla",
		OwnerPhone:   "+37120000000",
	})
	if err != nil {
		t.Fatalf("seed car: %v", err)
	}
	return c
}

func strPtr(s string) *string { return &s }

func f64Ptr(f float64) *float64 { return &f }

func TestCreate_ByCarID(t *testing.T) {
	db := openTestDB(t)
	c := seedCar(t, db)

	wo, err := Create(db, CreateOpts{
		CarID:         c.ID,
		Status:        models.StatusNew,
		Title:         "Oil change",
		PaymentStatus: models.PaymentUnpaid,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if wo.ID == 0 {
		t.Error("created work order has no ID")
	}
	if wo.CarID != c.ID {
		t.Errorf("CarID = %d, want %d", wo.CarID, c.ID)
	}
	if wo.CompletedAt != nil || wo.PaidAt != nil {
		t.Error("fresh order should have no completion or payment stamps")
	}
}

func TestCreate_ByLicensePlate(t *testing.T) {
	db := openTestDB(t)
	c := seedCar(t, db)

	wo, err := Create(db, CreateOpts{
		CarLicensePlate: " AB-1234 ",
		Status:          models.StatusNew,
		Title:           "Oil change",
		PaymentStatus:   models.PaymentUnpaid,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if wo.CarID != c.ID {
		t.Errorf("CarID = %d, want %d", wo.CarID, c.ID)
	}
}

func TestCreate_UnknownCar(t *testing.T) {
	db := openTestDB(t)
	seedCar(t, db)

	_, err := Create(db, CreateOpts{
		CarLicensePlate: "ZZ-0000",
		Status:          models.StatusNew,
		Title:           "Oil change",
		PaymentStatus:   models.PaymentUnpaid,
	})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestCreate_Validation(t *testing.T) {
	db := openTestDB(t)
	c := seedCar(t, db)

	cases := []CreateOpts{
		{CarID: c.ID, Title: "x", PaymentStatus: models.PaymentUnpaid},                              // no status
		{CarID: c.ID, Status: models.StatusNew, PaymentStatus: models.PaymentUnpaid},                // no title
		{CarID: c.ID, Status: models.StatusNew, Title: "x"},                                         // no payment status
		{Status: models.StatusNew, Title: "x", PaymentStatus: models.PaymentUnpaid},                 // no car key
		{CarID: c.ID, Status: "BOGUS", Title: "x", PaymentStatus: models.PaymentUnpaid},             // bad status
		{CarID: c.ID, Status: models.StatusNew, Title: "x", PaymentStatus: "paid"},                  // bad payment status
	}
	for i, opts := range cases {
		if _, err := Create(db, opts); !errors.Is(err, apperr.ErrInvalid) {
			t.Errorf("case %d: error = %v, want ErrInvalid", i, err)
		}
	}
}

func TestCreate_OptionalFields(t *testing.T) {
	db := openTestDB(t)
	c := seedCar(t, db)

	est := time.Now().Add(48 * time.Hour)
	wo, err := Create(db, CreateOpts{
		CarID:               c.ID,
		Status:              models.StatusNew,
		Title:               "Timing belt",
		CustomerComplaint:   "  rattle at idle  ",
		InternalNotes:       "   ",
		EstimatedCompletion: &est,
		PaymentStatus:       models.PaymentUnpaid,
		PaymentMethod:       models.MethodCard,
		TotalLabor:          f64Ptr(160),
		TotalParts:          f64Ptr(260),
		TotalPrice:          f64Ptr(420),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if wo.CustomerComplaint == nil || *wo.CustomerComplaint != "rattle at idle" {
		t.Errorf("CustomerComplaint = %v, want trimmed", wo.CustomerComplaint)
	}
	if wo.InternalNotes != nil {
		t.Errorf("whitespace-only notes should be nil, got %q", *wo.InternalNotes)
	}
	if wo.TotalPrice == nil || *wo.TotalPrice != 420 {
		t.Errorf("TotalPrice = %v, want 420", wo.TotalPrice)
	}
	if wo.PaymentMethod == nil || *wo.PaymentMethod != models.MethodCard {
		t.Errorf("PaymentMethod = %v", wo.PaymentMethod)
	}
}

func TestUpdate_DoneStampsCompletedAt(t *testing.T) {
	db := openTestDB(t)
	c := seedCar(t, db)

	wo, err := Create(db, CreateOpts{CarID: c.ID, Status: models.StatusNew, Title: "Oil change", PaymentStatus: models.PaymentUnpaid})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	before := time.Now()
	updated, err := Update(db, wo.ID, UpdateOpts{Status: strPtr(models.StatusDone)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	after := time.Now()

	if updated.Status != models.StatusDone {
		t.Errorf("Status = %q, want DONE", updated.Status)
	}
	if updated.CompletedAt == nil {
		t.Fatal("CompletedAt not stamped")
	}
	if updated.CompletedAt.Before(before.Add(-time.Second)) || updated.CompletedAt.After(after.Add(time.Second)) {
		t.Errorf("CompletedAt = %v, outside request window", updated.CompletedAt)
	}
}

func TestUpdate_StampSurvivesLeavingDone(t *testing.T) {
	db := openTestDB(t)
	c := seedCar(t, db)

	wo, _ := Create(db, CreateOpts{CarID: c.ID, Status: models.StatusNew, Title: "Oil change", PaymentStatus: models.PaymentUnpaid})

	done, err := Update(db, wo.ID, UpdateOpts{Status: strPtr(models.StatusDone)})
	if err != nil {
		t.Fatalf("Update to DONE: %v", err)
	}
	stamp := *done.CompletedAt

	back, err := Update(db, wo.ID, UpdateOpts{Status: strPtr(models.StatusInProgress)})
	if err != nil {
		t.Fatalf("Update to IN_PROGRESS: %v", err)
	}
	if back.Status != models.StatusInProgress {
		t.Errorf("Status = %q, want IN_PROGRESS", back.Status)
	}
	if back.CompletedAt == nil {
		t.Fatal("CompletedAt cleared by leaving DONE; must persist")
	}
	if !back.CompletedAt.Equal(stamp) {
		t.Errorf("CompletedAt changed: %v -> %v", stamp, back.CompletedAt)
	}
}

func TestUpdate_ReenteringDoneRestamps(t *testing.T) {
	db := openTestDB(t)
	c := seedCar(t, db)

	wo, _ := Create(db, CreateOpts{CarID: c.ID, Status: models.StatusNew, Title: "Oil change", PaymentStatus: models.PaymentUnpaid})

	first, err := Update(db, wo.ID, UpdateOpts{Status: strPtr(models.StatusDone)})
	if err != nil {
		t.Fatalf("first DONE: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	second, err := Update(db, wo.ID, UpdateOpts{Status: strPtr(models.StatusDone)})
	if err != nil {
		t.Fatalf("second DONE: %v", err)
	}
	if !second.CompletedAt.After(*first.CompletedAt) {
		t.Errorf("re-selecting DONE should refresh the stamp: %v -> %v", first.CompletedAt, second.CompletedAt)
	}
}

func TestUpdate_PaidStampsPaidAt(t *testing.T) {
	db := openTestDB(t)
	c := seedCar(t, db)

	wo, _ := Create(db, CreateOpts{CarID: c.ID, Status: models.StatusNew, Title: "Oil change", PaymentStatus: models.PaymentUnpaid})

	paid, err := Update(db, wo.ID, UpdateOpts{PaymentStatus: strPtr(models.PaymentPaid)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if paid.PaymentStatus != models.PaymentPaid {
		t.Errorf("PaymentStatus = %q, want PAID", paid.PaymentStatus)
	}
	if paid.PaidAt == nil {
		t.Fatal("PaidAt not stamped")
	}
	stamp := *paid.PaidAt

	// Downgrading the payment status leaves the stamp in place.
	partial, err := Update(db, wo.ID, UpdateOpts{PaymentStatus: strPtr(models.PaymentPartial)})
	if err != nil {
		t.Fatalf("Update to PARTIAL: %v", err)
	}
	if partial.PaidAt == nil || !partial.PaidAt.Equal(stamp) {
		t.Errorf("PaidAt = %v, want unchanged %v", partial.PaidAt, stamp)
	}
}

func TestUpdate_PartialNonDestructive(t *testing.T) {
	db := openTestDB(t)
	c := seedCar(t, db)

	wo, _ := Create(db, CreateOpts{
		CarID:             c.ID,
		Status:            models.StatusInProgress,
		Title:             "Brakes",
		CustomerComplaint: "squeal when braking",
		PaymentStatus:     models.PaymentPartial,
	})

	updated, err := Update(db, wo.ID, UpdateOpts{InternalNotes: strPtr("x")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != models.StatusInProgress {
		t.Errorf("Status changed to %q", updated.Status)
	}
	if updated.PaymentStatus != models.PaymentPartial {
		t.Errorf("PaymentStatus changed to %q", updated.PaymentStatus)
	}
	if updated.Title != "Brakes" {
		t.Errorf("Title changed to %q", updated.Title)
	}
	if updated.CustomerComplaint == nil || *updated.CustomerComplaint != "squeal when braking" {
		t.Errorf("CustomerComplaint changed to %v", updated.CustomerComplaint)
	}
	if updated.InternalNotes == nil || *updated.InternalNotes != "x" {
		t.Errorf("InternalNotes = %v, want x", updated.InternalNotes)
	}
}

func TestUpdate_BlankNotesClearField(t *testing.T) {
	db := openTestDB(t)
	c := seedCar(t, db)

	wo, _ := Create(db, CreateOpts{
		CarID:             c.ID,
		Status:            models.StatusNew,
		Title:             "Brakes",
		CustomerComplaint: "noise",
		PaymentStatus:     models.PaymentUnpaid,
	})

	updated, err := Update(db, wo.ID, UpdateOpts{CustomerComplaint: strPtr("   ")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.CustomerComplaint != nil {
		t.Errorf("whitespace-only complaint should clear the field, got %q", *updated.CustomerComplaint)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	db := openTestDB(t)
	if _, err := Update(db, 404, UpdateOpts{Title: strPtr("x")}); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestUpdate_InvalidStatusRejected(t *testing.T) {
	db := openTestDB(t)
	c := seedCar(t, db)
	wo, _ := Create(db, CreateOpts{CarID: c.ID, Status: models.StatusNew, Title: "x", PaymentStatus: models.PaymentUnpaid})

	if _, err := Update(db, wo.ID, UpdateOpts{Status: strPtr("FINISHED")}); !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("error = %v, want ErrInvalid", err)
	}
}

func TestGet_ItemsInEntryOrder(t *testing.T) {
	db := openTestDB(t)
	c := seedCar(t, db)
	wo, _ := Create(db, CreateOpts{CarID: c.ID, Status: models.StatusNew, Title: "x", PaymentStatus: models.PaymentUnpaid})

	for i, desc := range []string{"first", "second", "third"} {
		item := models.WorkItem{
			WorkOrderID: wo.ID,
			Type:        models.ItemLabor,
			Description: desc,
			Quantity:    1,
			UnitPrice:   10,
			Total:       10,
			CreatedAt:   time.Now().Add(time.Duration(i) * time.Second),
		}
		if err := db.Create(&item).Error; err != nil {
			t.Fatalf("create item: %v", err)
		}
	}

	got, err := Get(db, wo.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Car == nil {
		t.Fatal("Get should preload the car")
	}
	if len(got.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3", len(got.Items))
	}
	for i, want := range []string{"first", "second", "third"} {
		if got.Items[i].Description != want {
			t.Errorf("Items[%d] = %q, want %q", i, got.Items[i].Description, want)
		}
	}
}

func TestList_NewestFirst(t *testing.T) {
	db := openTestDB(t)
	c := seedCar(t, db)

	old := models.WorkOrder{CarID: c.ID, Title: "old", Status: models.StatusNew, PaymentStatus: models.PaymentUnpaid, CreatedAt: time.Now().Add(-time.Hour)}
	if err := db.Create(&old).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	recent := models.WorkOrder{CarID: c.ID, Title: "recent", Status: models.StatusNew, PaymentStatus: models.PaymentUnpaid, CreatedAt: time.Now()}
	if err := db.Create(&recent).Error; err != nil {
		t.Fatalf("create: %v", err)
	}

	orders, err := List(db)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("len = %d, want 2", len(orders))
	}
	if orders[0].Title != "recent" {
		t.Errorf("orders[0] = %q, want recent", orders[0].Title)
	}
	if orders[0].Car == nil {
		t.Error("List should preload car summaries")
	}
}
