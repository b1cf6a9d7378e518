package models

import "time"

// LineItem is a single charge line on a bill
type LineItem struct {
	Description string  `json:"description"`
	Breakout    string  `json:"breakout"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Total       float64 `json:"total"`
}

// Warranty is the coverage window attached to an individual/laptop bill
type Warranty struct {
	PeriodMonths int       `json:"period_months"`
	FromDate     time.Time `json:"from_date"`
	ToDate       time.Time `json:"to_date"`
}

// Bill is the invoice attached to a service or laptop record.
// Totals are kept unrounded; rounding happens at presentation time only.
type Bill struct {
	Items      []LineItem `json:"items"`
	Subtotal   float64    `json:"subtotal"`
	TaxPercent float64    `json:"tax_percent"`
	TaxAmount  float64    `json:"tax_amount"`
	GrandTotal float64    `json:"grand_total"`
	Warranty   Warranty   `json:"warranty"`
	BillDate   time.Time  `json:"bill_date"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// LineItemInput is a line item as submitted by a caller, before the
// billing engine clamps price/quantity and computes the total
type LineItemInput struct {
	Description string  `json:"description"`
	Breakout    string  `json:"breakout"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// CreateRecordBillRequest attaches or replaces the bill on an
// individual/laptop record
type CreateRecordBillRequest struct {
	Items          []LineItemInput `json:"items"`
	TaxPercent     float64         `json:"tax_percent"`
	WarrantyMonths int             `json:"warranty_months"`
	FromDate       string          `json:"from_date"` // YYYY-MM-DD
	BillDate       string          `json:"bill_date"` // YYYY-MM-DD, optional
}
