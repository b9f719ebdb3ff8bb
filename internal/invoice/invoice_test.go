package invoice

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rekins/garage/internal/models"
)

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func sampleOrder() *models.WorkOrder {
	return &models.WorkOrder{
		ID:            7,
		Status:        models.StatusDone,
		Title:         "Oil change and inspection",
		PaymentStatus: models.PaymentPaid,
		PaymentMethod: strPtr(models.MethodCard),
		CreatedAt:     time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
		Car: &models.Car{
			ID:           1,
			LicensePlate: "AB-1234",
			Make:         "Toyota",
			Model:        "Corolla",
			Year:         intPtr(2015),
			OwnerName:    "Alice",
			OwnerPhone:   "+37120000000",
		},
		Items: []models.WorkItem{
			{Type: models.ItemLabor, Description: "Oil change labor", Quantity: 1, UnitPrice: 30, Total: 30},
			{Type: models.ItemPart, Description: "5W30 Oil 5L", Quantity: 1, UnitPrice: 40, Total: 40},
		},
	}
}

func TestRender(t *testing.T) {
	data, filename, err := Render(sampleOrder(), "Rekins Auto Service")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if filename != "invoice-7.pdf" {
		t.Errorf("filename = %q, want invoice-7.pdf", filename)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF header: %q", data[:8])
	}
	if len(data) < 500 {
		t.Errorf("suspiciously small document: %d bytes", len(data))
	}
}

func TestRender_RequiresCar(t *testing.T) {
	wo := sampleOrder()
	wo.Car = nil
	if _, _, err := Render(wo, "Shop"); err == nil {
		t.Fatal("expected error for order without car")
	}
	if _, _, err := Render(nil, "Shop"); err == nil {
		t.Fatal("expected error for nil order")
	}
}

func TestRender_NoYearNoMethodNoComplaint(t *testing.T) {
	wo := sampleOrder()
	wo.Car.Year = nil
	wo.PaymentMethod = nil
	wo.CustomerComplaint = nil

	data, _, err := Render(wo, "Shop")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(data) == 0 {
		t.Error("empty document")
	}
}

func TestRender_LongComplaintAndManyItems(t *testing.T) {
	wo := sampleOrder()
	wo.CustomerComplaint = strPtr(strings.Repeat("the engine makes a grinding noise when cold ", 6))
	for i := 0; i < 60; i++ {
		wo.Items = append(wo.Items, models.WorkItem{
			Type:        models.ItemPart,
			Description: "A spare part with a fairly long description that wraps onto several table lines before the next row starts",
			Quantity:    1,
			UnitPrice:   5,
			Total:       5,
		})
	}

	data, _, err := Render(wo, "Shop")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	// 60 wrapped rows cannot fit one page; the renderer must paginate.
	// A single-page document contains "/Type /Pages" plus one "/Type /Page";
	// anything above two occurrences means more than one page.
	if n := bytes.Count(data, []byte("/Type /Page")); n <= 2 {
		t.Errorf("expected a multi-page document, found %d page markers", n)
	}
}

func TestVehicleLine(t *testing.T) {
	c := &models.Car{Make: "BMW", Model: "320d", Year: intPtr(2012)}
	if got := vehicleLine(c); got != "2012 BMW 320d" {
		t.Errorf("vehicleLine = %q", got)
	}
	c.Year = nil
	if got := vehicleLine(c); got != "BMW 320d" {
		t.Errorf("vehicleLine without year = %q", got)
	}
}
