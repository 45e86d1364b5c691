package model

import (
	"time"

	"github.com/google/uuid"
)

type Job struct {
	ID          uuid.UUID
	ContractID  uuid.UUID
	Description string
	Price       int64 // minor currency units, always > 0
	Paid        bool
	PaymentDate *time.Time
	CreatedAt   time.Time
}

// PayableJob is the pre-joined settlement view of an unpaid job: the job
// row plus the contract parties, resolved in one query so the payment
// workflow never walks associations.
type PayableJob struct {
	ID           uuid.UUID
	ContractID   uuid.UUID
	Description  string
	Price        int64
	ClientID     uuid.UUID
	ContractorID uuid.UUID
}
