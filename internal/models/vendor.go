package models

import (
	"time"

	"repair-backend/internal/lifecycle"
)

// VendorRecord is a bulk vendor account with per-phone intake sub-records
// and the bills raised against them
type VendorRecord struct {
	VendorID  string        `json:"vendor_id"`
	Name      string        `json:"name"`
	Phone     string        `json:"phone"`
	Address   string        `json:"address"`
	GSTNumber string        `json:"gst_number"`
	Phones    []PhoneIntake `json:"phones"`
	Bills     []VendorBill  `json:"bills"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// PhoneIntake is one device received from a vendor. Never deleted; its id is
// derived from the vendor's sub-collection length.
type PhoneIntake struct {
	PhoneID    string           `json:"phone_id"`
	Brand      string           `json:"brand"`
	Model      string           `json:"model"`
	Issue      string           `json:"issue"`
	Status     lifecycle.Status `json:"status"`
	Completed  bool             `json:"completed"`
	Billed     bool             `json:"billed"`
	BillID     *string          `json:"bill_id,omitempty"`
	ReceivedAt time.Time        `json:"received_at"`
}

// VendorBill is an invoice covering a fixed subset of a vendor's phones.
// Items and totals may be replaced by an edit; the id and phone set never change.
type VendorBill struct {
	BillID     string     `json:"bill_id"`
	PhoneIDs   []string   `json:"phone_ids"`
	Items      []LineItem `json:"items"`
	Subtotal   float64    `json:"subtotal"`
	TaxPercent float64    `json:"tax_percent"`
	TaxAmount  float64    `json:"tax_amount"`
	GrandTotal float64    `json:"grand_total"`
	BillDate   time.Time  `json:"bill_date"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CreateVendorRequest registers a new vendor account
type CreateVendorRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	GSTNumber string `json:"gst_number"`
}

// UpdateVendorRequest replaces a vendor's identity fields
type UpdateVendorRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	GSTNumber string `json:"gst_number"`
}

// AddPhoneRequest adds one intake phone under a vendor
type AddPhoneRequest struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
	Issue string `json:"issue"`
}

// UpdatePhoneStatusRequest moves a phone between non-terminal statuses
type UpdatePhoneStatusRequest struct {
	Status lifecycle.Status `json:"status"`
}

// CreateVendorBillRequest bills a subset of a vendor's unbilled phones
type CreateVendorBillRequest struct {
	PhoneIDs   []string        `json:"phone_ids"`
	Items      []LineItemInput `json:"items"`
	TaxPercent float64         `json:"tax_percent"`
	BillDate   string          `json:"bill_date"` // YYYY-MM-DD, optional
}

// EditVendorBillRequest replaces the items/tax of an existing vendor bill
type EditVendorBillRequest struct {
	Items      []LineItemInput `json:"items"`
	TaxPercent float64         `json:"tax_percent"`
}
