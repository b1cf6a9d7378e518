package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneIsDeep(t *testing.T) {
	billID := "VND001-B001"
	snap := Snapshot{
		Services: []ServiceRecord{{
			ServiceID:    "SRV001",
			ServiceTypes: []string{"screen"},
			Bill:         &Bill{GrandTotal: 100, Items: []LineItem{{Description: "screen", Total: 100}}},
		}},
		Laptops: []LaptopRecord{{LaptopID: "LAP001"}},
		Vendors: []VendorRecord{{
			VendorID: "VND001",
			Phones:   []PhoneIntake{{PhoneID: "VND001-P001", BillID: &billID}},
			Bills: []VendorBill{{
				BillID:   billID,
				PhoneIDs: []string{"VND001-P001"},
				Items:    []LineItem{{Description: "screen", Total: 100}},
			}},
		}},
	}

	clone := snap.Clone()
	require.Equal(t, snap, clone)

	clone.Services[0].ServiceTypes[0] = "battery"
	clone.Services[0].Bill.GrandTotal = 999
	clone.Vendors[0].Phones[0].Billed = true
	*clone.Vendors[0].Phones[0].BillID = "tampered"
	clone.Vendors[0].Bills[0].PhoneIDs[0] = "tampered"
	clone.Vendors[0].Bills[0].Items[0].Total = 0

	assert.Equal(t, "screen", snap.Services[0].ServiceTypes[0])
	assert.Equal(t, 100.0, snap.Services[0].Bill.GrandTotal)
	assert.False(t, snap.Vendors[0].Phones[0].Billed)
	assert.Equal(t, "VND001-B001", *snap.Vendors[0].Phones[0].BillID)
	assert.Equal(t, "VND001-P001", snap.Vendors[0].Bills[0].PhoneIDs[0])
	assert.Equal(t, 100.0, snap.Vendors[0].Bills[0].Items[0].Total)
}

func TestCloneOfEmptySnapshot(t *testing.T) {
	clone := Snapshot{}.Clone()
	assert.Nil(t, clone.Services)
	assert.Nil(t, clone.Laptops)
	assert.Nil(t, clone.Vendors)
}
