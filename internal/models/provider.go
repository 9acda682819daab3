package models

import "time"

// Provider is a normalized VAS counterparty. Name is canonical (uppercase,
// alias-mapped) and unique in the datastore.
type Provider struct {
	ID        string
	Name      string
	IsActive  bool
	CreatedAt *time.Time
	UpdatedAt *time.Time
}

// ParkingService is the parking-variant counterparty.
type ParkingService struct {
	ID          string
	Name        string
	IsActive    bool
	CreatedByID string
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
}
