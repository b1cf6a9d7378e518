package models

// Snapshot is the full working set: every record of every family.
// All mutations are expressed as read-snapshot, compute, replace-snapshot.
type Snapshot struct {
	Services []ServiceRecord `json:"services"`
	Laptops  []LaptopRecord  `json:"laptops"`
	Vendors  []VendorRecord  `json:"vendors"`
}

// Clone returns a deep copy so callers can mutate freely without touching
// the store's working set.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{}
	if s.Services != nil {
		out.Services = make([]ServiceRecord, len(s.Services))
		for i, r := range s.Services {
			out.Services[i] = r.clone()
		}
	}
	if s.Laptops != nil {
		out.Laptops = make([]LaptopRecord, len(s.Laptops))
		for i, r := range s.Laptops {
			out.Laptops[i] = r.clone()
		}
	}
	if s.Vendors != nil {
		out.Vendors = make([]VendorRecord, len(s.Vendors))
		for i, r := range s.Vendors {
			out.Vendors[i] = r.clone()
		}
	}
	return out
}

func (r ServiceRecord) clone() ServiceRecord {
	c := r
	c.ServiceTypes = append([]string(nil), r.ServiceTypes...)
	c.Accessories = append([]string(nil), r.Accessories...)
	c.Bill = r.Bill.clone()
	return c
}

func (r LaptopRecord) clone() LaptopRecord {
	c := r
	c.Bill = r.Bill.clone()
	return c
}

func (r VendorRecord) clone() VendorRecord {
	c := r
	if r.Phones != nil {
		c.Phones = make([]PhoneIntake, len(r.Phones))
		for i, p := range r.Phones {
			c.Phones[i] = p
			if p.BillID != nil {
				id := *p.BillID
				c.Phones[i].BillID = &id
			}
		}
	}
	if r.Bills != nil {
		c.Bills = make([]VendorBill, len(r.Bills))
		for i, b := range r.Bills {
			c.Bills[i] = b
			c.Bills[i].PhoneIDs = append([]string(nil), b.PhoneIDs...)
			c.Bills[i].Items = append([]LineItem(nil), b.Items...)
		}
	}
	return c
}

func (b *Bill) clone() *Bill {
	if b == nil {
		return nil
	}
	c := *b
	c.Items = append([]LineItem(nil), b.Items...)
	return &c
}
