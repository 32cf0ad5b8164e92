// Package procurement defines the procurement domain objects the built-in
// detection rules inspect: purchase-order lines, shipments, and invoices.
// The generic engines know nothing about these shapes; this package is the
// glue a host application would supply.
package procurement

import "time"

// LineItem is one purchase-order line snapshot.
type LineItem struct {
	ID          string     `json:"id" yaml:"id"`
	SKU         string     `json:"sku" yaml:"sku"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Quantity    int        `json:"quantity" yaml:"quantity"`
	QtyReceived int        `json:"qty_received" yaml:"qty_received"`
	QtyOnHold   int        `json:"qty_on_hold" yaml:"qty_on_hold"`
	UnitPrice   float64    `json:"unit_price" yaml:"unit_price"`
	PromiseDate *time.Time `json:"promise_date,omitempty" yaml:"promise_date,omitempty"`
}

// Shipment is an inbound shipment snapshot.
type Shipment struct {
	ID          string     `json:"id" yaml:"id"`
	OrderID     string     `json:"order_id" yaml:"order_id"`
	Carrier     string     `json:"carrier,omitempty" yaml:"carrier,omitempty"`
	ETA         *time.Time `json:"eta,omitempty" yaml:"eta,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty" yaml:"delivered_at,omitempty"`
	Lines       []LineItem `json:"lines" yaml:"lines"`
}

// Invoice is a vendor invoice snapshot matched against received goods.
type Invoice struct {
	ID          string  `json:"id" yaml:"id"`
	OrderID     string  `json:"order_id" yaml:"order_id"`
	LineID      string  `json:"line_id" yaml:"line_id"`
	QtyInvoiced int     `json:"qty_invoiced" yaml:"qty_invoiced"`
	UnitPrice   float64 `json:"unit_price" yaml:"unit_price"`
}

// Subject is the envelope the built-in rules evaluate. Exactly one field
// is set per item; rules ignore subjects of the wrong kind.
type Subject struct {
	Line     *LineItem
	Shipment *Shipment
	Invoice  *Invoice

	// Order context for invoice matching: the ordered line the invoice
	// bills against, when the caller has it on hand.
	OrderedLine *LineItem
}

// Category is the issue category vocabulary for procurement detection. It
// is an open union; hosts may add their own values.
type Category = string

const (
	CategoryQualityHold Category = "quality_hold"
	CategoryBackorder   Category = "backorder"
	CategoryInvoice     Category = "invoice"
	CategoryDelivery    Category = "delivery"
)
