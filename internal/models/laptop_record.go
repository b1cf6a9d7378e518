package models

import "time"

// LaptopRecord is a laptop taken in for repair
type LaptopRecord struct {
	LaptopID     string    `json:"laptop_id"`
	CustomerName string    `json:"customer_name"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	SerialNumber string    `json:"serial_number"`
	Issue        string    `json:"issue"`
	Bill         *Bill     `json:"bill,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateLaptopRequest is the intake form payload for a laptop
type CreateLaptopRequest struct {
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	SerialNumber string `json:"serial_number"`
	Issue        string `json:"issue"`
}

// UpdateLaptopRequest replaces the editable intake fields of a laptop record
type UpdateLaptopRequest struct {
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	SerialNumber string `json:"serial_number"`
	Issue        string `json:"issue"`
}
