package services

import (
	"context"
	"strings"

	"repair-backend/internal/changelog"
	"repair-backend/internal/identifier"
	"repair-backend/internal/lifecycle"
	"repair-backend/internal/models"
	"repair-backend/internal/store"
	"repair-backend/internal/timeutil"
)

// IntakeService owns record creation, intake-field edits, phone status
// updates and the explicit delete operations. Bill math lives in
// BillingService; this service never touches totals.
type IntakeService struct {
	Store *store.RecordStore
	Log   changelog.Appender
}

func NewIntakeService(st *store.RecordStore, log changelog.Appender) *IntakeService {
	return &IntakeService{Store: st, Log: log}
}

// ---- individual service records ----

func (s *IntakeService) CreateService(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceRecord, error) {
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, validationErrorf("customer name is required")
	}

	snap := s.Store.LoadAll()
	now := timeutil.Now()
	record := models.ServiceRecord{
		ServiceID:    identifier.NextServiceID(snap),
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		Address:      req.Address,
		DeviceBrand:  req.DeviceBrand,
		DeviceModel:  req.DeviceModel,
		Issue:        req.Issue,
		ServiceTypes: append([]string(nil), req.ServiceTypes...),
		Accessories:  append([]string(nil), req.Accessories...),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	snap.Services = append(snap.Services, record)

	s.Store.ReplaceAll(snap)
	s.append(ctx, models.ActionCreate, models.RecordTypeService, record.ServiceID, nil)

	return &record, nil
}

func (s *IntakeService) ListServices(ctx context.Context) []models.ServiceRecord {
	snap := s.Store.LoadAll()
	if snap.Services == nil {
		return []models.ServiceRecord{}
	}
	return snap.Services
}

func (s *IntakeService) GetService(ctx context.Context, id string) (*models.ServiceRecord, error) {
	snap := s.Store.LoadAll()
	for i := range snap.Services {
		if snap.Services[i].ServiceID == id {
			return &snap.Services[i], nil
		}
	}
	return nil, notFoundErrorf("service record %s not found", id)
}

func (s *IntakeService) UpdateService(ctx context.Context, id string, req *models.UpdateServiceRequest) (*models.ServiceRecord, error) {
	snap := s.Store.LoadAll()

	var record *models.ServiceRecord
	for i := range snap.Services {
		if snap.Services[i].ServiceID == id {
			record = &snap.Services[i]
			break
		}
	}
	if record == nil {
		return nil, notFoundErrorf("service record %s not found", id)
	}

	changes := fieldChanges{}
	changes.track("customer_name", record.CustomerName, req.CustomerName)
	changes.track("phone", record.Phone, req.Phone)
	changes.track("address", record.Address, req.Address)
	changes.track("device_brand", record.DeviceBrand, req.DeviceBrand)
	changes.track("device_model", record.DeviceModel, req.DeviceModel)
	changes.track("issue", record.Issue, req.Issue)

	record.CustomerName = req.CustomerName
	record.Phone = req.Phone
	record.Address = req.Address
	record.DeviceBrand = req.DeviceBrand
	record.DeviceModel = req.DeviceModel
	record.Issue = req.Issue
	record.ServiceTypes = append([]string(nil), req.ServiceTypes...)
	record.Accessories = append([]string(nil), req.Accessories...)
	record.UpdatedAt = timeutil.Now()

	result := *record
	s.Store.ReplaceAll(snap)
	s.appendFieldChanges(ctx, models.RecordTypeService, id, changes)

	return &result, nil
}

// DeleteService is the explicit external delete operation; not part of the
// normal record flow.
func (s *IntakeService) DeleteService(ctx context.Context, id string) error {
	snap := s.Store.LoadAll()
	idx := -1
	for i := range snap.Services {
		if snap.Services[i].ServiceID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return notFoundErrorf("service record %s not found", id)
	}

	snap.Services = append(snap.Services[:idx], snap.Services[idx+1:]...)
	s.Store.ReplaceAll(snap)
	s.append(ctx, models.ActionDelete, models.RecordTypeService, id, nil)

	return nil
}

// ---- laptop records ----

func (s *IntakeService) CreateLaptop(ctx context.Context, req *models.CreateLaptopRequest) (*models.LaptopRecord, error) {
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, validationErrorf("customer name is required")
	}

	snap := s.Store.LoadAll()
	now := timeutil.Now()
	record := models.LaptopRecord{
		LaptopID:     identifier.NextLaptopID(snap),
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		Address:      req.Address,
		Brand:        req.Brand,
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
		Issue:        req.Issue,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	snap.Laptops = append(snap.Laptops, record)

	s.Store.ReplaceAll(snap)
	s.append(ctx, models.ActionCreate, models.RecordTypeLaptop, record.LaptopID, nil)

	return &record, nil
}

func (s *IntakeService) ListLaptops(ctx context.Context) []models.LaptopRecord {
	snap := s.Store.LoadAll()
	if snap.Laptops == nil {
		return []models.LaptopRecord{}
	}
	return snap.Laptops
}

func (s *IntakeService) GetLaptop(ctx context.Context, id string) (*models.LaptopRecord, error) {
	snap := s.Store.LoadAll()
	for i := range snap.Laptops {
		if snap.Laptops[i].LaptopID == id {
			return &snap.Laptops[i], nil
		}
	}
	return nil, notFoundErrorf("laptop record %s not found", id)
}

func (s *IntakeService) UpdateLaptop(ctx context.Context, id string, req *models.UpdateLaptopRequest) (*models.LaptopRecord, error) {
	snap := s.Store.LoadAll()

	var record *models.LaptopRecord
	for i := range snap.Laptops {
		if snap.Laptops[i].LaptopID == id {
			record = &snap.Laptops[i]
			break
		}
	}
	if record == nil {
		return nil, notFoundErrorf("laptop record %s not found", id)
	}

	changes := fieldChanges{}
	changes.track("customer_name", record.CustomerName, req.CustomerName)
	changes.track("phone", record.Phone, req.Phone)
	changes.track("address", record.Address, req.Address)
	changes.track("brand", record.Brand, req.Brand)
	changes.track("model", record.Model, req.Model)
	changes.track("serial_number", record.SerialNumber, req.SerialNumber)
	changes.track("issue", record.Issue, req.Issue)

	record.CustomerName = req.CustomerName
	record.Phone = req.Phone
	record.Address = req.Address
	record.Brand = req.Brand
	record.Model = req.Model
	record.SerialNumber = req.SerialNumber
	record.Issue = req.Issue
	record.UpdatedAt = timeutil.Now()

	result := *record
	s.Store.ReplaceAll(snap)
	s.appendFieldChanges(ctx, models.RecordTypeLaptop, id, changes)

	return &result, nil
}

func (s *IntakeService) DeleteLaptop(ctx context.Context, id string) error {
	snap := s.Store.LoadAll()
	idx := -1
	for i := range snap.Laptops {
		if snap.Laptops[i].LaptopID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return notFoundErrorf("laptop record %s not found", id)
	}

	snap.Laptops = append(snap.Laptops[:idx], snap.Laptops[idx+1:]...)
	s.Store.ReplaceAll(snap)
	s.append(ctx, models.ActionDelete, models.RecordTypeLaptop, id, nil)

	return nil
}

// ---- vendor accounts ----

func (s *IntakeService) CreateVendor(ctx context.Context, req *models.CreateVendorRequest) (*models.VendorRecord, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, validationErrorf("vendor name is required")
	}

	snap := s.Store.LoadAll()
	now := timeutil.Now()
	record := models.VendorRecord{
		VendorID:  identifier.NextVendorID(snap),
		Name:      req.Name,
		Phone:     req.Phone,
		Address:   req.Address,
		GSTNumber: req.GSTNumber,
		CreatedAt: now,
		UpdatedAt: now,
	}
	snap.Vendors = append(snap.Vendors, record)

	s.Store.ReplaceAll(snap)
	s.append(ctx, models.ActionCreate, models.RecordTypeVendor, record.VendorID, nil)

	return &record, nil
}

func (s *IntakeService) ListVendors(ctx context.Context) []models.VendorRecord {
	snap := s.Store.LoadAll()
	if snap.Vendors == nil {
		return []models.VendorRecord{}
	}
	return snap.Vendors
}

func (s *IntakeService) GetVendor(ctx context.Context, id string) (*models.VendorRecord, error) {
	snap := s.Store.LoadAll()
	if v := findVendor(&snap, id); v != nil {
		return v, nil
	}
	return nil, notFoundErrorf("vendor %s not found", id)
}

func (s *IntakeService) UpdateVendor(ctx context.Context, id string, req *models.UpdateVendorRequest) (*models.VendorRecord, error) {
	snap := s.Store.LoadAll()
	vendor := findVendor(&snap, id)
	if vendor == nil {
		return nil, notFoundErrorf("vendor %s not found", id)
	}

	changes := fieldChanges{}
	changes.track("name", vendor.Name, req.Name)
	changes.track("phone", vendor.Phone, req.Phone)
	changes.track("address", vendor.Address, req.Address)
	changes.track("gst_number", vendor.GSTNumber, req.GSTNumber)

	vendor.Name = req.Name
	vendor.Phone = req.Phone
	vendor.Address = req.Address
	vendor.GSTNumber = req.GSTNumber
	vendor.UpdatedAt = timeutil.Now()

	result := *vendor
	s.Store.ReplaceAll(snap)
	s.appendFieldChanges(ctx, models.RecordTypeVendor, id, changes)

	return &result, nil
}

// DeleteVendor refuses to delete a vendor that still has unbilled phones;
// outstanding intake must be billed first.
func (s *IntakeService) DeleteVendor(ctx context.Context, id string) error {
	snap := s.Store.LoadAll()
	idx := -1
	for i := range snap.Vendors {
		if snap.Vendors[i].VendorID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return notFoundErrorf("vendor %s not found", id)
	}

	for _, phone := range snap.Vendors[idx].Phones {
		if !phone.Billed {
			return validationErrorf("vendor %s has unbilled phone %s; bill all phones before deleting", id, phone.PhoneID)
		}
	}

	snap.Vendors = append(snap.Vendors[:idx], snap.Vendors[idx+1:]...)
	s.Store.ReplaceAll(snap)
	s.append(ctx, models.ActionDelete, models.RecordTypeVendor, id, nil)

	return nil
}

// AddPhone appends one intake phone under a vendor. Phones start in
// Received and are never deleted.
func (s *IntakeService) AddPhone(ctx context.Context, vendorID string, req *models.AddPhoneRequest) (*models.PhoneIntake, error) {
	snap := s.Store.LoadAll()
	vendor := findVendor(&snap, vendorID)
	if vendor == nil {
		return nil, notFoundErrorf("vendor %s not found", vendorID)
	}

	now := timeutil.Now()
	phone := models.PhoneIntake{
		PhoneID:    identifier.NextPhoneID(vendor),
		Brand:      req.Brand,
		Model:      req.Model,
		Issue:      req.Issue,
		Status:     lifecycle.StatusReceived,
		ReceivedAt: now,
	}
	vendor.Phones = append(vendor.Phones, phone)
	vendor.UpdatedAt = now

	s.Store.ReplaceAll(snap)
	s.appendField(ctx, models.ActionUpdate, models.RecordTypeVendor, vendorID, "phone", "", phone.PhoneID)

	return &phone, nil
}

// UpdatePhoneStatus moves a phone between the non-terminal statuses. The
// terminal status is only ever set by the billing engine.
func (s *IntakeService) UpdatePhoneStatus(ctx context.Context, vendorID, phoneID string, status lifecycle.Status) (*models.PhoneIntake, error) {
	snap := s.Store.LoadAll()
	vendor := findVendor(&snap, vendorID)
	if vendor == nil {
		return nil, notFoundErrorf("vendor %s not found", vendorID)
	}
	phone := findPhone(vendor, phoneID)
	if phone == nil {
		return nil, notFoundErrorf("phone %s not found for vendor %s", phoneID, vendorID)
	}

	if err := lifecycle.CheckTransition(phone.Status, status); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	old := phone.Status
	phone.Status = status
	phone.Completed = lifecycle.Completed(status)
	vendor.UpdatedAt = timeutil.Now()

	result := *phone
	s.Store.ReplaceAll(snap)
	s.appendField(ctx, models.ActionUpdate, models.RecordTypeVendor, vendorID, "phone_status", string(old), string(status))

	return &result, nil
}

// ---- change log plumbing ----

type fieldChange struct {
	field, old, new string
}

type fieldChanges []fieldChange

func (c *fieldChanges) track(field, oldValue, newValue string) {
	if oldValue != newValue {
		*c = append(*c, fieldChange{field: field, old: oldValue, new: newValue})
	}
}

func (s *IntakeService) append(ctx context.Context, action, recordType, recordID string, change *fieldChange) {
	if s.Log == nil {
		return
	}
	entry := models.ChangeLogEntry{
		Action:     action,
		RecordType: recordType,
		RecordID:   recordID,
	}
	if change != nil {
		entry.FieldChanged = &change.field
		entry.OldValue = strPtr(change.old)
		entry.NewValue = strPtr(change.new)
	}
	s.Log.Append(ctx, entry)
}

func (s *IntakeService) appendField(ctx context.Context, action, recordType, recordID, field, oldValue, newValue string) {
	s.append(ctx, action, recordType, recordID, &fieldChange{field: field, old: oldValue, new: newValue})
}

func (s *IntakeService) appendFieldChanges(ctx context.Context, recordType, recordID string, changes fieldChanges) {
	for i := range changes {
		s.append(ctx, models.ActionUpdate, recordType, recordID, &changes[i])
	}
}
