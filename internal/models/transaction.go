package models

import "time"

// VasTransaction is a reconciled daily fact row. Natural key:
// (providerId, date, serviceName, group).
type VasTransaction struct {
	ID          string
	ProviderID  string
	ServiceID   string
	Date        time.Time
	Group       string
	ServiceName string
	ServiceCode string
	Price       float64
	Quantity    float64
	Amount      float64
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
}

// ParkingTransaction is the parking-variant fact row. Natural key:
// (parkingServiceId, date, serviceName, group).
type ParkingTransaction struct {
	ID               string
	ParkingServiceID string
	ServiceID        string
	Date             time.Time
	Group            string
	ServiceName      string
	Price            float64
	Quantity         float64
	Amount           float64
	CreatedAt        *time.Time
	UpdatedAt        *time.Time
}
