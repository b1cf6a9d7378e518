package services

import (
	"context"
	"math"
	"time"

	"repair-backend/internal/changelog"
	"repair-backend/internal/identifier"
	"repair-backend/internal/lifecycle"
	"repair-backend/internal/models"
	"repair-backend/internal/store"
	"repair-backend/internal/timeutil"
)

// Warranty periods offered at the counter. Anything else falls back to the
// short period.
const (
	WarrantyShortMonths   = 3
	WarrantyLongMonths    = 6
	defaultWarrantyMonths = WarrantyShortMonths
)

// BillingService computes line items, totals and warranty windows, and
// creates/edits bills for all three record families. Every mutation is a
// single read-snapshot, compute, replace-snapshot cycle, so a bill and its
// phone updates land together or not at all.
type BillingService struct {
	Store *store.RecordStore
	Log   changelog.Appender
}

func NewBillingService(st *store.RecordStore, log changelog.Appender) *BillingService {
	return &BillingService{Store: st, Log: log}
}

// BuildLineItem clamps price/quantity to their documented floors
// (price >= 0, quantity >= 1) and computes the line total.
func BuildLineItem(in models.LineItemInput) models.LineItem {
	price := in.Price
	if price < 0 {
		price = 0
	}
	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}
	return models.LineItem{
		Description: in.Description,
		Breakout:    in.Breakout,
		Price:       price,
		Quantity:    qty,
		Total:       price * float64(qty),
	}
}

// BuildLineItems clamps and totals a whole submitted item list.
func BuildLineItems(inputs []models.LineItemInput) []models.LineItem {
	items := make([]models.LineItem, len(inputs))
	for i, in := range inputs {
		items[i] = BuildLineItem(in)
	}
	return items
}

// ComputeTotals returns subtotal, tax amount and grand total. Values are
// unrounded; rounding happens only at presentation time so repeated edits
// never accumulate rounding drift.
func ComputeTotals(items []models.LineItem, taxPercent float64) (subtotal, taxAmount, grandTotal float64) {
	for _, item := range items {
		subtotal += item.Total
	}
	taxAmount = subtotal * taxPercent / 100
	grandTotal = subtotal + taxAmount
	return subtotal, taxAmount, grandTotal
}

// Round2 is the presentation-time rounding step.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// WarrantyWindow derives the coverage window: toDate is fromDate plus the
// period in calendar months. Periods other than 3 or 6 default to 3.
func WarrantyWindow(fromDate time.Time, periodMonths int) models.Warranty {
	if periodMonths != WarrantyShortMonths && periodMonths != WarrantyLongMonths {
		periodMonths = defaultWarrantyMonths
	}
	return models.Warranty{
		PeriodMonths: periodMonths,
		FromDate:     fromDate,
		ToDate:       fromDate.AddDate(0, periodMonths, 0),
	}
}

// CreateVendorBill groups a subset of a vendor's unbilled phones into a new
// bill. Fails with ValidationError on an empty selection, an unknown phone id
// or a phone that is already billed, leaving the store untouched. On success
// every selected phone is marked billed and moved to the terminal status in
// the same snapshot replace as the bill itself.
func (s *BillingService) CreateVendorBill(ctx context.Context, vendorID string, req models.CreateVendorBillRequest) (*models.VendorBill, error) {
	if len(req.PhoneIDs) == 0 {
		return nil, validationErrorf("no phones selected for billing")
	}

	snap := s.Store.LoadAll()
	vendor := findVendor(&snap, vendorID)
	if vendor == nil {
		return nil, notFoundErrorf("vendor %s not found", vendorID)
	}

	// Resolve every phone before touching anything.
	seen := make(map[string]bool, len(req.PhoneIDs))
	phones := make([]*models.PhoneIntake, 0, len(req.PhoneIDs))
	for _, phoneID := range req.PhoneIDs {
		if seen[phoneID] {
			return nil, validationErrorf("phone %s selected twice", phoneID)
		}
		seen[phoneID] = true

		phone := findPhone(vendor, phoneID)
		if phone == nil {
			return nil, validationErrorf("phone %s does not belong to vendor %s", phoneID, vendorID)
		}
		if phone.Billed {
			return nil, validationErrorf("phone %s is already billed", phoneID)
		}
		phones = append(phones, phone)
	}

	billDate, err := parseBillDate(req.BillDate)
	if err != nil {
		return nil, validationErrorf("invalid bill date %q", req.BillDate)
	}

	items := BuildLineItems(req.Items)
	subtotal, taxAmount, grandTotal := ComputeTotals(items, req.TaxPercent)

	now := timeutil.Now()
	bill := models.VendorBill{
		BillID:     identifier.NextBillID(vendor),
		PhoneIDs:   append([]string(nil), req.PhoneIDs...),
		Items:      items,
		Subtotal:   subtotal,
		TaxPercent: req.TaxPercent,
		TaxAmount:  taxAmount,
		GrandTotal: grandTotal,
		BillDate:   billDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	for _, phone := range phones {
		phone.Billed = true
		phone.Status = lifecycle.StatusBilled
		billID := bill.BillID
		phone.BillID = &billID
	}
	vendor.Bills = append(vendor.Bills, bill)
	vendor.UpdatedAt = now

	s.Store.ReplaceAll(snap)
	s.logVendorChange(ctx, vendorID, "bill", "", bill.BillID)

	return &bill, nil
}

// EditVendorBill replaces the items and totals of an existing bill in place.
// The bill's identity and phone set are fixed at creation; phone statuses are
// not touched.
func (s *BillingService) EditVendorBill(ctx context.Context, vendorID, billID string, req models.EditVendorBillRequest) (*models.VendorBill, error) {
	snap := s.Store.LoadAll()
	vendor := findVendor(&snap, vendorID)
	if vendor == nil {
		return nil, notFoundErrorf("vendor %s not found", vendorID)
	}

	var bill *models.VendorBill
	for i := range vendor.Bills {
		if vendor.Bills[i].BillID == billID {
			bill = &vendor.Bills[i]
			break
		}
	}
	if bill == nil {
		return nil, notFoundErrorf("bill %s not found for vendor %s", billID, vendorID)
	}

	items := BuildLineItems(req.Items)
	subtotal, taxAmount, grandTotal := ComputeTotals(items, req.TaxPercent)

	now := timeutil.Now()
	bill.Items = items
	bill.Subtotal = subtotal
	bill.TaxPercent = req.TaxPercent
	bill.TaxAmount = taxAmount
	bill.GrandTotal = grandTotal
	bill.UpdatedAt = now
	vendor.UpdatedAt = now

	edited := *bill
	s.Store.ReplaceAll(snap)
	s.logVendorChange(ctx, vendorID, "bill", billID, billID)

	return &edited, nil
}

// CreateServiceBill attaches or replaces the bill on an individual service
// record. The warranty end date is always recomputed from the submitted
// start date and period; a caller-supplied end date is advisory and ignored.
func (s *BillingService) CreateServiceBill(ctx context.Context, serviceID string, req models.CreateRecordBillRequest) (*models.Bill, error) {
	snap := s.Store.LoadAll()

	var record *models.ServiceRecord
	for i := range snap.Services {
		if snap.Services[i].ServiceID == serviceID {
			record = &snap.Services[i]
			break
		}
	}
	if record == nil {
		return nil, notFoundErrorf("service record %s not found", serviceID)
	}

	bill, err := s.buildRecordBill(record.Bill, req)
	if err != nil {
		return nil, err
	}

	record.Bill = bill
	record.UpdatedAt = bill.UpdatedAt

	s.Store.ReplaceAll(snap)
	s.logChange(ctx, models.RecordTypeService, serviceID, "bill", "", "attached")

	return bill, nil
}

// CreateLaptopBill attaches or replaces the bill on a laptop record.
func (s *BillingService) CreateLaptopBill(ctx context.Context, laptopID string, req models.CreateRecordBillRequest) (*models.Bill, error) {
	snap := s.Store.LoadAll()

	var record *models.LaptopRecord
	for i := range snap.Laptops {
		if snap.Laptops[i].LaptopID == laptopID {
			record = &snap.Laptops[i]
			break
		}
	}
	if record == nil {
		return nil, notFoundErrorf("laptop record %s not found", laptopID)
	}

	bill, err := s.buildRecordBill(record.Bill, req)
	if err != nil {
		return nil, err
	}

	record.Bill = bill
	record.UpdatedAt = bill.UpdatedAt

	s.Store.ReplaceAll(snap)
	s.logChange(ctx, models.RecordTypeLaptop, laptopID, "bill", "", "attached")

	return bill, nil
}

func (s *BillingService) buildRecordBill(existing *models.Bill, req models.CreateRecordBillRequest) (*models.Bill, error) {
	fromDate, err := timeutil.ParseDate(req.FromDate)
	if err != nil {
		return nil, validationErrorf("invalid warranty start date %q", req.FromDate)
	}
	billDate, err := parseBillDate(req.BillDate)
	if err != nil {
		return nil, validationErrorf("invalid bill date %q", req.BillDate)
	}

	items := BuildLineItems(req.Items)
	subtotal, taxAmount, grandTotal := ComputeTotals(items, req.TaxPercent)

	now := timeutil.Now()
	created := now
	if existing != nil {
		created = existing.CreatedAt
	}

	return &models.Bill{
		Items:      items,
		Subtotal:   subtotal,
		TaxPercent: req.TaxPercent,
		TaxAmount:  taxAmount,
		GrandTotal: grandTotal,
		Warranty:   WarrantyWindow(fromDate, req.WarrantyMonths),
		BillDate:   billDate,
		CreatedAt:  created,
		UpdatedAt:  now,
	}, nil
}

func (s *BillingService) logVendorChange(ctx context.Context, vendorID, field, oldValue, newValue string) {
	s.logChange(ctx, models.RecordTypeVendor, vendorID, field, oldValue, newValue)
}

func (s *BillingService) logChange(ctx context.Context, recordType, recordID, field, oldValue, newValue string) {
	if s.Log == nil {
		return
	}
	s.Log.Append(ctx, models.ChangeLogEntry{
		Action:       models.ActionUpdate,
		RecordType:   recordType,
		RecordID:     recordID,
		FieldChanged: &field,
		OldValue:     strPtr(oldValue),
		NewValue:     strPtr(newValue),
	})
}

func parseBillDate(value string) (time.Time, error) {
	if value == "" {
		return timeutil.Now(), nil
	}
	return timeutil.ParseDate(value)
}

func findVendor(snap *models.Snapshot, vendorID string) *models.VendorRecord {
	for i := range snap.Vendors {
		if snap.Vendors[i].VendorID == vendorID {
			return &snap.Vendors[i]
		}
	}
	return nil
}

func findPhone(v *models.VendorRecord, phoneID string) *models.PhoneIntake {
	for i := range v.Phones {
		if v.Phones[i].PhoneID == phoneID {
			return &v.Phones[i]
		}
	}
	return nil
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
