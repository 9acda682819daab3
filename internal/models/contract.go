package models

import "time"

const (
	ContractTypeProvider = "PROVIDER"
	ContractTypeParking  = "PARKING"

	ContractStatusActive = "ACTIVE"
)

// Contract groups services under a provider or parking service. One contract
// exists per (counterparty, derived name) pair and is reused across files.
type Contract struct {
	ID                string
	Name              string
	ContractNumber    string
	Type              string
	Status            string
	StartDate         time.Time
	EndDate           time.Time
	RevenuePercentage float64
	Description       string
	ProviderID        string
	ParkingServiceID  string
	CreatedByID       string
	CreatedAt         *time.Time
	UpdatedAt         *time.Time
}

// ServiceContract links a Service to a Contract. Created once per pair.
type ServiceContract struct {
	ID         string
	ServiceID  string
	ContractID string
	CreatedAt  *time.Time
	UpdatedAt  *time.Time
}
