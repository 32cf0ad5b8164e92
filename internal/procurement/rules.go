package procurement

import (
	"fmt"
	"time"

	"github.com/zjrosen/reckon/internal/detect"
	"github.com/zjrosen/reckon/internal/diff"
)

// PriceVarianceTolerance is the relative unit-price deviation an invoice
// may carry before the price-variance rule fires.
const PriceVarianceTolerance = 0.05

// Rules returns the built-in procurement detection rule set, all enabled.
// The clock decides overdue and backorder cutoffs; pass nil for time.Now.
func Rules(now func() time.Time) []detect.Rule[Subject, Category] {
	if now == nil {
		now = time.Now
	}

	return []detect.Rule[Subject, Category]{
		{
			ID:           "quality-hold",
			Name:         "Quantity on quality hold",
			Category:     CategoryQualityHold,
			BasePriority: detect.PriorityHigh,
			Enabled:      true,
			Detect:       detectQualityHold,
		},
		{
			ID:           "backorder",
			Name:         "Backordered quantity past promise date",
			Category:     CategoryBackorder,
			BasePriority: detect.PriorityMedium,
			Enabled:      true,
			Detect:       detectBackorder(now),
		},
		{
			ID:           "invoice-qty-mismatch",
			Name:         "Invoice quantity exceeds receipts",
			Category:     CategoryInvoice,
			BasePriority: detect.PriorityHigh,
			Enabled:      true,
			Detect:       detectInvoiceQtyMismatch,
		},
		{
			ID:           "price-variance",
			Name:         "Invoice price variance above tolerance",
			Category:     CategoryInvoice,
			BasePriority: detect.PriorityMedium,
			Enabled:      true,
			Detect:       detectPriceVariance,
		},
		{
			ID:           "shipment-overdue",
			Name:         "Shipment past its ETA",
			Category:     CategoryDelivery,
			BasePriority: detect.PriorityHigh,
			Enabled:      true,
			Detect:       detectShipmentOverdue(now),
		},
	}
}

func lineRef(line *LineItem) detect.ObjectRef {
	return detect.ObjectRef{Type: "line_item", ID: line.ID, Label: line.SKU}
}

func detectQualityHold(s Subject, _ detect.Context) []detect.Result[Category] {
	var out []detect.Result[Category]

	check := func(line *LineItem) {
		if line == nil || line.QtyOnHold <= 0 {
			return
		}
		out = append(out, detect.Result[Category]{
			Title:            fmt.Sprintf("%d unit(s) of %s on quality hold", line.QtyOnHold, line.SKU),
			Description:      "Received units are held pending inspection and cannot be consumed.",
			SuggestedAction:  "Inspect the held units and release or reject them",
			Related:          []detect.ObjectRef{lineRef(line)},
			AffectedQuantity: float64(line.QtyOnHold),
			AffectedValue:    float64(line.QtyOnHold) * line.UnitPrice,
		})
	}

	check(s.Line)
	if s.Shipment != nil {
		for i := range s.Shipment.Lines {
			check(&s.Shipment.Lines[i])
		}
	}
	return out
}

func detectBackorder(now func() time.Time) func(Subject, detect.Context) []detect.Result[Category] {
	return func(s Subject, _ detect.Context) []detect.Result[Category] {
		line := s.Line
		if line == nil || line.PromiseDate == nil {
			return nil
		}
		open := line.Quantity - line.QtyReceived
		if open <= 0 || !now().After(*line.PromiseDate) {
			return nil
		}

		priority := detect.PriorityMedium
		if line.QtyReceived == 0 {
			// Nothing received at all past the promise date.
			priority = detect.PriorityCritical
		}
		return []detect.Result[Category]{{
			Priority:         priority,
			Title:            fmt.Sprintf("%d unit(s) of %s backordered past promise date", open, line.SKU),
			SuggestedAction:  "Expedite with the vendor or re-source the open quantity",
			Related:          []detect.ObjectRef{lineRef(line)},
			AffectedQuantity: float64(open),
			AffectedValue:    float64(open) * line.UnitPrice,
		}}
	}
}

func detectInvoiceQtyMismatch(s Subject, _ detect.Context) []detect.Result[Category] {
	inv := s.Invoice
	if inv == nil || s.OrderedLine == nil {
		return nil
	}
	over := inv.QtyInvoiced - s.OrderedLine.QtyReceived
	if over <= 0 {
		return nil
	}
	return []detect.Result[Category]{{
		Title:            fmt.Sprintf("Invoice %s bills %d unit(s) beyond receipts", inv.ID, over),
		SuggestedAction:  "Hold payment and reconcile with the receiving record",
		Related:          []detect.ObjectRef{{Type: "invoice", ID: inv.ID}, lineRef(s.OrderedLine)},
		AffectedQuantity: float64(over),
		AffectedValue:    float64(over) * inv.UnitPrice,
	}}
}

func detectPriceVariance(s Subject, _ detect.Context) []detect.Result[Category] {
	inv := s.Invoice
	if inv == nil || s.OrderedLine == nil || s.OrderedLine.UnitPrice == 0 {
		return nil
	}
	variance := (inv.UnitPrice - s.OrderedLine.UnitPrice) / s.OrderedLine.UnitPrice
	if variance <= PriceVarianceTolerance {
		return nil
	}
	return []detect.Result[Category]{{
		Title:           fmt.Sprintf("Invoice %s unit price %.2f exceeds ordered %.2f", inv.ID, inv.UnitPrice, s.OrderedLine.UnitPrice),
		SuggestedAction: "Request a credit note or approve the variance",
		Related:         []detect.ObjectRef{{Type: "invoice", ID: inv.ID}, lineRef(s.OrderedLine)},
		AffectedValue:   float64(inv.QtyInvoiced) * (inv.UnitPrice - s.OrderedLine.UnitPrice),
	}}
}

func detectShipmentOverdue(now func() time.Time) func(Subject, detect.Context) []detect.Result[Category] {
	return func(s Subject, _ detect.Context) []detect.Result[Category] {
		sh := s.Shipment
		if sh == nil || sh.ETA == nil || sh.DeliveredAt != nil || !now().After(*sh.ETA) {
			return nil
		}
		return []detect.Result[Category]{{
			Title:           fmt.Sprintf("Shipment %s past its ETA", sh.ID),
			SuggestedAction: "Request an updated ETA from the carrier",
			Related:         []detect.ObjectRef{{Type: "shipment", ID: sh.ID, Label: sh.Carrier}},
		}}
	}
}

// OrderDiffOptions is the comparator configuration the dashboard uses for
// purchase-order snapshots: commercial terms are major, schedule is minor,
// bookkeeping noise is ignored.
func OrderDiffOptions() diff.Options {
	return diff.Options{
		MajorPaths: []string{"quantity", "unit_price", "lines.quantity", "lines.unit_price", "vendor_id"},
		MinorPaths: []string{"promise_date", "lines.promise_date", "carrier", "incoterms"},
		IgnorePaths: []string{
			"updated_at",
			"audit",
		},
		MaxDepth: 10,
		Labels: map[string]string{
			"quantity":           "Quantity",
			"unit_price":         "Unit price",
			"vendor_id":          "Vendor",
			"promise_date":       "Promise date",
			"lines.quantity":     "Line quantity",
			"lines.unit_price":   "Line unit price",
			"lines.promise_date": "Line promise date",
		},
	}
}
