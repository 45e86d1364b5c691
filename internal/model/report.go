package model

import (
	"time"

	"github.com/google/uuid"
)

// ProfessionEarnings is one aggregation row: total paid to contractors of
// a profession inside a payment-date window.
type ProfessionEarnings struct {
	Profession string
	Earned     int64
}

// ClientSpend is one aggregation row: total a client paid inside a
// payment-date window.
type ClientSpend struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Paid      int64
}

func (c ClientSpend) FullName() string {
	return c.FirstName + " " + c.LastName
}

// EarningsReport is the back-office export document: both rankings for
// one period.
type EarningsReport struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Professions []ProfessionEarnings
	Clients     []ClientSpend
	TotalPaid   int64
}
