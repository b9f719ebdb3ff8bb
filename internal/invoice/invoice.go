// Package invoice renders a work order as a paginated PDF document.
package invoice

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/rekins/garage/internal/models"
	"github.com/rekins/garage/internal/workorder"
)

// Layout constants, in millimeters on an A4 portrait page.
const (
	pageCenter     = 105
	leftMargin     = 20
	rightEdge      = 190
	colType        = 20
	colDescription = 45
	colQty         = 130
	colUnitPrice   = 150
	colTotal       = 180
	descWidth      = 80
	lineHeight     = 5
	pageBreakY     = 250
)

// Render produces the invoice PDF for a fully loaded work order (car and
// items preloaded, items in entry order). Returns the document bytes and a
// suggested filename. The totals table is computed with
// workorder.ComputeTotals so the document always matches the on-screen
// summary.
func Render(wo *models.WorkOrder, shopName string) ([]byte, string, error) {
	if wo == nil || wo.Car == nil {
		return nil, "", fmt.Errorf("invoice: work order with car is required")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// Header.
	pdf.SetFont("Helvetica", "B", 24)
	textCenter(pdf, pageCenter, 20, "INVOICE")
	pdf.SetFont("Helvetica", "", 12)
	textCenter(pdf, pageCenter, 30, shopName)

	// Invoice metadata.
	pdf.SetFontSize(10)
	pdf.Text(leftMargin, 50, fmt.Sprintf("Invoice #: %d", wo.ID))
	pdf.Text(leftMargin, 56, "Date: "+wo.CreatedAt.Format("2006-01-02"))
	pdf.Text(leftMargin, 62, "Status: "+wo.Status)

	// Customer block.
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(leftMargin, 75, "Bill To:")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(leftMargin, 81, wo.Car.OwnerName)
	pdf.Text(leftMargin, 87, wo.Car.OwnerPhone)

	// Vehicle block.
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(120, 75, "Vehicle:")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(120, 81, wo.Car.LicensePlate)
	pdf.Text(120, 87, vehicleLine(wo.Car))

	// Work description.
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(leftMargin, 100, "Work Description:")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(leftMargin, 106, wo.Title)

	if wo.CustomerComplaint != nil {
		pdf.SetFontSize(9)
		y := 112.0
		for _, line := range pdf.SplitText(*wo.CustomerComplaint, 170) {
			pdf.Text(leftMargin, y, line)
			y += lineHeight
		}
	}

	// Item table header.
	y := 130.0
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(colType, y, "Type")
	pdf.Text(colDescription, y, "Description")
	pdf.Text(colQty, y, "Qty")
	pdf.Text(colUnitPrice, y, "Unit Price")
	pdf.Text(colTotal, y, "Total")
	pdf.Line(leftMargin, y+2, rightEdge, y+2)
	y += 8

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range wo.Items {
		pdf.Text(colType, y, item.Type)
		lines := pdf.SplitText(item.Description, descWidth)
		for i, line := range lines {
			pdf.Text(colDescription, y+float64(i)*lineHeight, line)
		}
		pdf.Text(colQty, y, fmt.Sprintf("%.2f", item.Quantity))
		pdf.Text(colUnitPrice, y, fmt.Sprintf("$%.2f", item.UnitPrice))
		pdf.Text(colTotal, y, fmt.Sprintf("$%.2f", item.Total))

		y += float64(len(lines))*lineHeight + 2

		if y > pageBreakY {
			pdf.AddPage()
			y = 20
		}
	}

	// Totals.
	totals := workorder.ComputeTotals(wo.Items)
	y += 5
	pdf.Line(leftMargin, y, rightEdge, y)
	y += 8

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(colQty, y, "Labor Subtotal:")
	pdf.Text(colTotal, y, fmt.Sprintf("$%.2f", totals.Labor))
	y += 6

	pdf.Text(colQty, y, "Parts Subtotal:")
	pdf.Text(colTotal, y, fmt.Sprintf("$%.2f", totals.Parts))
	y += 8

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(colQty, y, "TOTAL:")
	pdf.Text(colTotal, y, fmt.Sprintf("$%.2f", totals.Grand))

	// Payment footer.
	y += 10
	pdf.SetFontSize(10)
	pdf.Text(leftMargin, y, "Payment Status: "+wo.PaymentStatus)
	if wo.PaymentMethod != nil {
		pdf.Text(leftMargin, y+6, "Payment Method: "+*wo.PaymentMethod)
	}

	pdf.SetFont("Helvetica", "", 9)
	textCenter(pdf, pageCenter, 280, "Thank you for your business!")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("invoice: render order %d: %w", wo.ID, err)
	}
	return buf.Bytes(), fmt.Sprintf("invoice-%d.pdf", wo.ID), nil
}

// vehicleLine formats "year make model", omitting the year when unset.
func vehicleLine(c *models.Car) string {
	if c.Year != nil {
		return fmt.Sprintf("%d %s %s", *c.Year, c.Make, c.Model)
	}
	return fmt.Sprintf("%s %s", c.Make, c.Model)
}

// textCenter draws s horizontally centered on x.
func textCenter(pdf *gofpdf.Fpdf, x, y float64, s string) {
	pdf.Text(x-pdf.GetStringWidth(s)/2, y, s)
}
