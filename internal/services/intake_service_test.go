package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repair-backend/internal/changelog"
	"repair-backend/internal/lifecycle"
	"repair-backend/internal/models"
	"repair-backend/internal/store"
)

func newIntake(t *testing.T) (*IntakeService, *changelog.MemoryLog) {
	t.Helper()
	log := changelog.NewMemoryLog()
	return NewIntakeService(store.New(nil), log), log
}

func TestCreateServiceAssignsSequentialIDs(t *testing.T) {
	svc, log := newIntake(t)
	ctx := context.Background()

	first, err := svc.CreateService(ctx, &models.CreateServiceRequest{CustomerName: "Asha", DeviceBrand: "Samsung"})
	require.NoError(t, err)
	assert.Equal(t, "SRV001", first.ServiceID)

	second, err := svc.CreateService(ctx, &models.CreateServiceRequest{CustomerName: "Ravi"})
	require.NoError(t, err)
	assert.Equal(t, "SRV002", second.ServiceID)

	require.Len(t, log.Entries, 2)
	assert.Equal(t, models.ActionCreate, log.Entries[0].Action)
	assert.Equal(t, models.RecordTypeService, log.Entries[0].RecordType)
	assert.Equal(t, "SRV001", log.Entries[0].RecordID)
}

func TestCreateServiceRequiresCustomerName(t *testing.T) {
	svc, _ := newIntake(t)
	_, err := svc.CreateService(context.Background(), &models.CreateServiceRequest{CustomerName: "  "})
	assert.True(t, IsValidation(err))
}

func TestUpdateServiceLogsFieldChanges(t *testing.T) {
	svc, log := newIntake(t)
	ctx := context.Background()

	record, err := svc.CreateService(ctx, &models.CreateServiceRequest{
		CustomerName: "Asha", Phone: "9876543210", DeviceBrand: "Samsung",
	})
	require.NoError(t, err)

	_, err = svc.UpdateService(ctx, record.ServiceID, &models.UpdateServiceRequest{
		CustomerName: "Asha", Phone: "9876500000", DeviceBrand: "Samsung",
	})
	require.NoError(t, err)

	// one CREATE plus exactly one UPDATE for the changed field
	require.Len(t, log.Entries, 2)
	entry := log.Entries[1]
	assert.Equal(t, models.ActionUpdate, entry.Action)
	require.NotNil(t, entry.FieldChanged)
	assert.Equal(t, "phone", *entry.FieldChanged)
	assert.Equal(t, "9876543210", *entry.OldValue)
	assert.Equal(t, "9876500000", *entry.NewValue)
}

func TestDeleteServiceRemovesRecordAndLogs(t *testing.T) {
	svc, log := newIntake(t)
	ctx := context.Background()

	record, err := svc.CreateService(ctx, &models.CreateServiceRequest{CustomerName: "Asha"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteService(ctx, record.ServiceID))
	assert.Empty(t, svc.ListServices(ctx))

	last := log.Entries[len(log.Entries)-1]
	assert.Equal(t, models.ActionDelete, last.Action)

	err = svc.DeleteService(ctx, record.ServiceID)
	assert.True(t, IsNotFound(err))
}

func TestLaptopLifecycle(t *testing.T) {
	svc, _ := newIntake(t)
	ctx := context.Background()

	laptop, err := svc.CreateLaptop(ctx, &models.CreateLaptopRequest{CustomerName: "Meera", Brand: "Dell"})
	require.NoError(t, err)
	assert.Equal(t, "LAP001", laptop.LaptopID)

	got, err := svc.GetLaptop(ctx, "LAP001")
	require.NoError(t, err)
	assert.Equal(t, "Dell", got.Brand)

	_, err = svc.GetLaptop(ctx, "LAP999")
	assert.True(t, IsNotFound(err))
}

func TestAddPhoneAndStatusFlow(t *testing.T) {
	svc, log := newIntake(t)
	ctx := context.Background()

	vendor, err := svc.CreateVendor(ctx, &models.CreateVendorRequest{Name: "Galaxy Traders"})
	require.NoError(t, err)
	assert.Equal(t, "VND001", vendor.VendorID)

	phone, err := svc.AddPhone(ctx, "VND001", &models.AddPhoneRequest{Brand: "Vivo", Model: "Y21"})
	require.NoError(t, err)
	assert.Equal(t, "VND001-P001", phone.PhoneID)
	assert.Equal(t, lifecycle.StatusReceived, phone.Status)

	phone, err = svc.UpdatePhoneStatus(ctx, "VND001", "VND001-P001", lifecycle.StatusReady)
	require.NoError(t, err)
	assert.True(t, phone.Completed)

	// rework moves it backward and clears the flag
	phone, err = svc.UpdatePhoneStatus(ctx, "VND001", "VND001-P001", lifecycle.StatusInRepair)
	require.NoError(t, err)
	assert.False(t, phone.Completed)

	// Billed is reserved for the billing engine
	_, err = svc.UpdatePhoneStatus(ctx, "VND001", "VND001-P001", lifecycle.StatusBilled)
	assert.True(t, IsValidation(err))

	// sub-record mutations are logged against the owning vendor
	last := log.Entries[len(log.Entries)-1]
	assert.Equal(t, models.RecordTypeVendor, last.RecordType)
	assert.Equal(t, "VND001", last.RecordID)
}

func TestDeleteVendorBlockedByUnbilledPhones(t *testing.T) {
	svc, _ := newIntake(t)
	ctx := context.Background()

	_, err := svc.CreateVendor(ctx, &models.CreateVendorRequest{Name: "Galaxy Traders"})
	require.NoError(t, err)
	_, err = svc.AddPhone(ctx, "VND001", &models.AddPhoneRequest{Brand: "Vivo"})
	require.NoError(t, err)

	err = svc.DeleteVendor(ctx, "VND001")
	assert.True(t, IsValidation(err))

	// billing the phone unblocks deletion
	billing := NewBillingService(svc.Store, svc.Log)
	_, err = billing.CreateVendorBill(ctx, "VND001", models.CreateVendorBillRequest{
		PhoneIDs: []string{"VND001-P001"},
	})
	require.NoError(t, err)
	assert.NoError(t, svc.DeleteVendor(ctx, "VND001"))
}
