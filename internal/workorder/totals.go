package workorder

import "github.com/rekins/garage/internal/models"

// Totals is the read-time aggregation over a work order's line items.
type Totals struct {
	Labor float64 `json:"laborTotal"`
	Parts float64 `json:"partsTotal"`
	Grand float64 `json:"grandTotal"`
}

// ComputeTotals sums line item totals by category. This is the single
// arithmetic contract shared by the JSON detail view and the invoice
// renderer; both must report identical numbers for the same item set.
func ComputeTotals(items []models.WorkItem) Totals {
	var t Totals
	for _, item := range items {
		if item.Type == models.ItemLabor {
			t.Labor += item.Total
		} else {
			t.Parts += item.Total
		}
	}
	t.Grand = t.Labor + t.Parts
	return t
}
