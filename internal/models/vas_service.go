package models

import "time"

// VasServiceEntry is a monthly postpaid statement row, keyed by
// (product, service month, provider). Amounts follow the operator's
// settlement statement columns.
type VasServiceEntry struct {
	ID                   string
	Product              string
	ServiceMonth         time.Time
	UnitPrice            float64
	TransactionCount     int64
	InvoicedAmount       float64
	InvoicedCorrected    float64
	CollectedAmount      float64
	CollectedCumulative  float64
	UncollectedAmount    float64
	UncollectedCorrected float64
	ReversedAmount       float64
	CancelledAmount      float64
	CancelledCumulative  float64
	TransferAmount       float64
	ServiceID            string
	ProviderID           string
	CreatedAt            *time.Time
	UpdatedAt            *time.Time
}
