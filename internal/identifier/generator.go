package identifier

import (
	"fmt"
	"strconv"
	"strings"

	"repair-backend/internal/models"
)

// Record family prefixes. Sequence numbers are left-zero-padded to 3 digits
// and roll over to 4+ digits naturally past 999.
const (
	PrefixService = "SRV"
	PrefixLaptop  = "LAP"
	PrefixVendor  = "VND"
)

// Next derives the next id for a family by scanning existing ids and taking
// max numeric suffix + 1. The max (not the last element) is used so the
// generator stays correct with out-of-order records and historical gaps.
func Next(prefix string, existing []string) string {
	max := 0
	for _, id := range existing {
		suffix, ok := strings.CutPrefix(id, prefix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil || n <= max {
			continue
		}
		max = n
	}
	return fmt.Sprintf("%s%03d", prefix, max+1)
}

// NextServiceID returns the id for the next individual service record.
func NextServiceID(snap models.Snapshot) string {
	ids := make([]string, len(snap.Services))
	for i, r := range snap.Services {
		ids[i] = r.ServiceID
	}
	return Next(PrefixService, ids)
}

// NextLaptopID returns the id for the next laptop record.
func NextLaptopID(snap models.Snapshot) string {
	ids := make([]string, len(snap.Laptops))
	for i, r := range snap.Laptops {
		ids[i] = r.LaptopID
	}
	return Next(PrefixLaptop, ids)
}

// NextVendorID returns the id for the next vendor account.
func NextVendorID(snap models.Snapshot) string {
	ids := make([]string, len(snap.Vendors))
	for i, r := range snap.Vendors {
		ids[i] = r.VendorID
	}
	return Next(PrefixVendor, ids)
}

// NextPhoneID returns the vendor-scoped id for the next phone intake.
// Sub-records are never deleted, so the collection length is a safe
// monotonic counter.
func NextPhoneID(v *models.VendorRecord) string {
	return fmt.Sprintf("%s-P%03d", v.VendorID, len(v.Phones)+1)
}

// NextBillID returns the vendor-scoped id for the next vendor bill.
func NextBillID(v *models.VendorRecord) string {
	return fmt.Sprintf("%s-B%03d", v.VendorID, len(v.Bills)+1)
}
