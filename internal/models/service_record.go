package models

import "time"

// ServiceRecord is an individual device taken in for repair
type ServiceRecord struct {
	ServiceID    string    `json:"service_id"`
	CustomerName string    `json:"customer_name"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	DeviceBrand  string    `json:"device_brand"`
	DeviceModel  string    `json:"device_model"`
	Issue        string    `json:"issue"`
	ServiceTypes []string  `json:"service_types"`
	Accessories  []string  `json:"accessories"`
	Bill         *Bill     `json:"bill,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateServiceRequest is the intake form payload for an individual device
type CreateServiceRequest struct {
	CustomerName string   `json:"customer_name"`
	Phone        string   `json:"phone"`
	Address      string   `json:"address"`
	DeviceBrand  string   `json:"device_brand"`
	DeviceModel  string   `json:"device_model"`
	Issue        string   `json:"issue"`
	ServiceTypes []string `json:"service_types"`
	Accessories  []string `json:"accessories"`
}

// UpdateServiceRequest replaces the editable intake fields of a service record
type UpdateServiceRequest struct {
	CustomerName string   `json:"customer_name"`
	Phone        string   `json:"phone"`
	Address      string   `json:"address"`
	DeviceBrand  string   `json:"device_brand"`
	DeviceModel  string   `json:"device_model"`
	Issue        string   `json:"issue"`
	ServiceTypes []string `json:"service_types"`
	Accessories  []string `json:"accessories"`
}
