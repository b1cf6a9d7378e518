package identifier

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"repair-backend/internal/models"
)

func TestNextOnEmptyFamily(t *testing.T) {
	snap := models.Snapshot{}
	assert.Equal(t, "SRV001", NextServiceID(snap))
	assert.Equal(t, "LAP001", NextLaptopID(snap))
	assert.Equal(t, "VND001", NextVendorID(snap))
}

func TestNextUsesMaxNotLast(t *testing.T) {
	// records stored out of order must not confuse the generator
	snap := models.Snapshot{
		Services: []models.ServiceRecord{
			{ServiceID: "SRV007"},
			{ServiceID: "SRV002"},
			{ServiceID: "SRV005"},
		},
	}
	assert.Equal(t, "SRV008", NextServiceID(snap))
}

func TestNextSkipsForeignAndMalformedIDs(t *testing.T) {
	got := Next("SRV", []string{"LAP004", "SRV003", "SRVXYZ", ""})
	assert.Equal(t, "SRV004", got)
}

func TestNextRollsOverPast999(t *testing.T) {
	assert.Equal(t, "SRV1000", Next("SRV", []string{"SRV999"}))
	assert.Equal(t, "SRV1001", Next("SRV", []string{"SRV1000"}))
}

func TestNextIsStrictlyIncreasing(t *testing.T) {
	var ids []string
	prev := ""
	for i := 0; i < 1200; i++ {
		id := Next("SRV", ids)
		assert.NotEqual(t, prev, id)
		ids = append(ids, id)
		prev = id
	}
	assert.Equal(t, "SRV1200", prev)

	seen := make(map[string]bool)
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestVendorScopedIDs(t *testing.T) {
	v := &models.VendorRecord{VendorID: "VND001"}
	assert.Equal(t, "VND001-P001", NextPhoneID(v))
	assert.Equal(t, "VND001-B001", NextBillID(v))

	for i := 0; i < 3; i++ {
		v.Phones = append(v.Phones, models.PhoneIntake{PhoneID: fmt.Sprintf("VND001-P%03d", i+1)})
	}
	assert.Equal(t, "VND001-P004", NextPhoneID(v))

	v.Bills = append(v.Bills, models.VendorBill{BillID: "VND001-B001"})
	assert.Equal(t, "VND001-B002", NextBillID(v))
}
