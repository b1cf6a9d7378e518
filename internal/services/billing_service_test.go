package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repair-backend/internal/changelog"
	"repair-backend/internal/lifecycle"
	"repair-backend/internal/models"
	"repair-backend/internal/store"
)

func seededVendorStore(t *testing.T) (*store.RecordStore, *changelog.MemoryLog) {
	t.Helper()

	st := store.New(nil)
	st.ReplaceAll(models.Snapshot{
		Vendors: []models.VendorRecord{{
			VendorID: "VND001",
			Name:     "Galaxy Traders",
			Phones: []models.PhoneIntake{
				{PhoneID: "VND001-P001", Status: lifecycle.StatusReceived},
				{PhoneID: "VND001-P002", Status: lifecycle.StatusReceived},
				{PhoneID: "VND001-P003", Status: lifecycle.StatusReceived},
			},
		}},
	})
	return st, changelog.NewMemoryLog()
}

func TestBuildLineItemClampsFloors(t *testing.T) {
	item := BuildLineItem(models.LineItemInput{Description: "screen", Price: -50, Quantity: 0})
	assert.Equal(t, 0.0, item.Price)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, 0.0, item.Total)

	item = BuildLineItem(models.LineItemInput{Description: "battery", Price: 450, Quantity: 3})
	assert.Equal(t, 1350.0, item.Total)
}

func TestComputeTotalsZeroTax(t *testing.T) {
	items := BuildLineItems([]models.LineItemInput{{Description: "display", Price: 1300, Quantity: 1}})
	subtotal, taxAmount, grandTotal := ComputeTotals(items, 0)
	assert.Equal(t, 1300.0, subtotal)
	assert.Equal(t, 0.0, taxAmount)
	assert.Equal(t, 1300.0, grandTotal)
}

func TestComputeTotalsSubtotalIsExactSum(t *testing.T) {
	items := BuildLineItems([]models.LineItemInput{
		{Price: 199.99, Quantity: 3},
		{Price: 0.01, Quantity: 7},
		{Price: 42.5, Quantity: 2},
	})
	want := 0.0
	for _, item := range items {
		want += item.Total
	}
	subtotal, taxAmount, grandTotal := ComputeTotals(items, 18)
	assert.Equal(t, want, subtotal)
	assert.Equal(t, subtotal*18/100, taxAmount)
	assert.Equal(t, subtotal+taxAmount, grandTotal)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.12, Round2(10.123))
	assert.Equal(t, 10.13, Round2(10.126))
	assert.Equal(t, 100.0, Round2(99.999))
}

func TestWarrantyWindow(t *testing.T) {
	from := time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC)

	w := WarrantyWindow(from, 3)
	assert.Equal(t, time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC), w.ToDate)

	w = WarrantyWindow(from, 6)
	assert.Equal(t, time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC), w.ToDate)
}

func TestWarrantyWindowDefaultsToThreeMonths(t *testing.T) {
	from := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	for _, months := range []int{0, -1, 4, 12} {
		w := WarrantyWindow(from, months)
		assert.Equal(t, 3, w.PeriodMonths)
		assert.Equal(t, from.AddDate(0, 3, 0), w.ToDate)
	}
}

func TestCreateVendorBillPartialSelection(t *testing.T) {
	st, log := seededVendorStore(t)
	svc := NewBillingService(st, log)

	bill, err := svc.CreateVendorBill(context.Background(), "VND001", models.CreateVendorBillRequest{
		PhoneIDs: []string{"VND001-P001", "VND001-P002"},
		Items:    []models.LineItemInput{{Description: "screen swap", Price: 500, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, "VND001-B001", bill.BillID)
	assert.Equal(t, 1000.0, bill.GrandTotal)

	snap := st.LoadAll()
	vendor := snap.Vendors[0]
	require.Len(t, vendor.Bills, 1)

	p1, p2, p3 := vendor.Phones[0], vendor.Phones[1], vendor.Phones[2]
	assert.True(t, p1.Billed)
	assert.Equal(t, lifecycle.StatusBilled, p1.Status)
	require.NotNil(t, p1.BillID)
	assert.Equal(t, "VND001-B001", *p1.BillID)
	assert.True(t, p2.Billed)

	// the unselected phone is untouched
	assert.False(t, p3.Billed)
	assert.Equal(t, lifecycle.StatusReceived, p3.Status)
	assert.Nil(t, p3.BillID)

	// logged against the owning vendor
	require.NotEmpty(t, log.Entries)
	assert.Equal(t, models.RecordTypeVendor, log.Entries[0].RecordType)
	assert.Equal(t, "VND001", log.Entries[0].RecordID)
}

func TestCreateVendorBillRejectsAlreadyBilledAndLeavesStoreUnchanged(t *testing.T) {
	st, log := seededVendorStore(t)
	svc := NewBillingService(st, log)

	_, err := svc.CreateVendorBill(context.Background(), "VND001", models.CreateVendorBillRequest{
		PhoneIDs: []string{"VND001-P001"},
	})
	require.NoError(t, err)
	before := st.LoadAll()

	_, err = svc.CreateVendorBill(context.Background(), "VND001", models.CreateVendorBillRequest{
		PhoneIDs: []string{"VND001-P001", "VND001-P002"},
	})
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	// nothing changed: no new bill, P002 still unbilled
	after := st.LoadAll()
	assert.Equal(t, before, after)
}

func TestCreateVendorBillValidation(t *testing.T) {
	st, log := seededVendorStore(t)
	svc := NewBillingService(st, log)
	ctx := context.Background()

	_, err := svc.CreateVendorBill(ctx, "VND001", models.CreateVendorBillRequest{})
	assert.True(t, IsValidation(err), "empty selection")

	_, err = svc.CreateVendorBill(ctx, "VND001", models.CreateVendorBillRequest{
		PhoneIDs: []string{"VND001-P009"},
	})
	assert.True(t, IsValidation(err), "unknown phone")

	_, err = svc.CreateVendorBill(ctx, "VND001", models.CreateVendorBillRequest{
		PhoneIDs: []string{"VND001-P001", "VND001-P001"},
	})
	assert.True(t, IsValidation(err), "duplicate phone")

	_, err = svc.CreateVendorBill(ctx, "VND999", models.CreateVendorBillRequest{
		PhoneIDs: []string{"VND001-P001"},
	})
	assert.True(t, IsNotFound(err), "unknown vendor")
}

func TestVendorBillPhoneSetsStayDisjoint(t *testing.T) {
	st, log := seededVendorStore(t)
	svc := NewBillingService(st, log)
	ctx := context.Background()

	_, err := svc.CreateVendorBill(ctx, "VND001", models.CreateVendorBillRequest{
		PhoneIDs: []string{"VND001-P001", "VND001-P002"},
	})
	require.NoError(t, err)

	bill2, err := svc.CreateVendorBill(ctx, "VND001", models.CreateVendorBillRequest{
		PhoneIDs: []string{"VND001-P003"},
	})
	require.NoError(t, err)
	assert.Equal(t, "VND001-B002", bill2.BillID)

	seen := make(map[string]string)
	for _, bill := range st.LoadAll().Vendors[0].Bills {
		for _, phoneID := range bill.PhoneIDs {
			prev, dup := seen[phoneID]
			assert.False(t, dup, "phone %s in both %s and %s", phoneID, prev, bill.BillID)
			seen[phoneID] = bill.BillID
		}
	}
}

func TestEditVendorBillReplacesTotalsOnly(t *testing.T) {
	st, log := seededVendorStore(t)
	svc := NewBillingService(st, log)
	ctx := context.Background()

	_, err := svc.CreateVendorBill(ctx, "VND001", models.CreateVendorBillRequest{
		PhoneIDs: []string{"VND001-P001"},
		Items:    []models.LineItemInput{{Description: "screen", Price: 100, Quantity: 1}},
	})
	require.NoError(t, err)

	edited, err := svc.EditVendorBill(ctx, "VND001", "VND001-B001", models.EditVendorBillRequest{
		Items:      []models.LineItemInput{{Description: "screen + glass", Price: 150, Quantity: 1}},
		TaxPercent: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 150.0, edited.Subtotal)
	assert.Equal(t, 15.0, edited.TaxAmount)
	assert.Equal(t, 165.0, edited.GrandTotal)

	// identity and phone set fixed, phone status untouched
	vendor := st.LoadAll().Vendors[0]
	assert.Equal(t, []string{"VND001-P001"}, vendor.Bills[0].PhoneIDs)
	assert.Equal(t, lifecycle.StatusBilled, vendor.Phones[0].Status)

	_, err = svc.EditVendorBill(ctx, "VND001", "VND001-B099", models.EditVendorBillRequest{})
	assert.True(t, IsNotFound(err))
}

func TestCreateServiceBillRecomputesWarranty(t *testing.T) {
	st := store.New(nil)
	st.ReplaceAll(models.Snapshot{
		Services: []models.ServiceRecord{{ServiceID: "SRV001", CustomerName: "Asha"}},
	})
	svc := NewBillingService(st, changelog.NewMemoryLog())

	bill, err := svc.CreateServiceBill(context.Background(), "SRV001", models.CreateRecordBillRequest{
		Items:          []models.LineItemInput{{Description: "hinge", Price: 700, Quantity: 1}},
		WarrantyMonths: 6,
		FromDate:       "2025-11-15",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, bill.Warranty.PeriodMonths)
	assert.Equal(t, "2025-11-15", bill.Warranty.FromDate.Format("2006-01-02"))
	assert.Equal(t, "2026-05-15", bill.Warranty.ToDate.Format("2006-01-02"))

	// replacing the bill recomputes the window from the new inputs
	bill, err = svc.CreateServiceBill(context.Background(), "SRV001", models.CreateRecordBillRequest{
		Items:          []models.LineItemInput{{Description: "hinge", Price: 700, Quantity: 1}},
		WarrantyMonths: 3,
		FromDate:       "2025-12-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", bill.Warranty.ToDate.Format("2006-01-02"))

	record := st.LoadAll().Services[0]
	require.NotNil(t, record.Bill)
	assert.Equal(t, 3, record.Bill.Warranty.PeriodMonths)

	_, err = svc.CreateServiceBill(context.Background(), "SRV404", models.CreateRecordBillRequest{
		FromDate: "2025-12-01",
	})
	assert.True(t, IsNotFound(err))
}
