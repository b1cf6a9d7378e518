package models

import "time"

// Change log actions
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// Record types as they appear in the change log
const (
	RecordTypeService = "service"
	RecordTypeLaptop  = "laptop"
	RecordTypeVendor  = "vendor"
)

// ChangeLogEntry records one finalized create/update/delete.
// Sub-record mutations (phone status, vendor bills) are logged against the
// owning vendor's id.
type ChangeLogEntry struct {
	ID           int       `json:"id"`
	Action       string    `json:"action"`
	RecordType   string    `json:"record_type"`
	RecordID     string    `json:"record_id"`
	FieldChanged *string   `json:"field_changed,omitempty"`
	OldValue     *string   `json:"old_value,omitempty"`
	NewValue     *string   `json:"new_value,omitempty"`
	LoggedAt     time.Time `json:"logged_at"`
}
