package lifecycle

import "fmt"

// Status is the servicing state of a vendor phone intake.
type Status string

const (
	StatusReceived Status = "Received"
	StatusInRepair Status = "In Repair"
	StatusReady    Status = "Ready"
	StatusBilled   Status = "Billed"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusReceived, StatusInRepair, StatusReady, StatusBilled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s Status) Terminal() bool {
	return s == StatusBilled
}

// Completed is a derived informational flag: true only while the phone sits
// in Ready waiting to be billed.
func Completed(s Status) bool {
	return s == StatusReady
}

// CheckTransition validates a status change requested through the status-update
// operation. Received, In Repair and Ready are freely interchangeable in both
// directions (rework happens). Billed is only ever set by the billing engine
// and is terminal once set.
func CheckTransition(from, to Status) error {
	if !to.Valid() {
		return fmt.Errorf("unknown status %q", to)
	}
	if from == StatusBilled {
		return fmt.Errorf("phone is already billed; status is final")
	}
	if to == StatusBilled {
		return fmt.Errorf("status %q can only be set by billing", StatusBilled)
	}
	return nil
}
