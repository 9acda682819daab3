package models

import "time"

const (
	ServiceTypeVAS     = "VAS"
	ServiceTypeParking = "PARKING"

	BillingTypePrepaid  = "PREPAID"
	BillingTypePostpaid = "POSTPAID"
)

// Service is a billable line item. Name is the literal service-name string
// found in the spreadsheet and is the identity key; the optional 4-digit code
// is metadata only.
type Service struct {
	ID          string
	Name        string
	Type        string
	BillingType string
	Description string
	IsActive    bool
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
}
