package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleClient     Role = "client"
	RoleContractor Role = "contractor"
)

type Profile struct {
	ID         uuid.UUID
	Role       Role
	FirstName  string
	LastName   string
	Profession string
	Balance    int64 // minor currency units
	CreatedAt  time.Time
}

func (p Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}

func (p Profile) IsClient() bool {
	return p.Role == RoleClient
}

func (p Profile) IsContractor() bool {
	return p.Role == RoleContractor
}

// Principal is the authenticated caller attached to a request by the
// auth middleware. Balance is read at resolution time; the settlement
// transaction re-checks it before moving funds.
type Principal struct {
	ProfileID uuid.UUID
	Role      Role
	FullName  string
	Balance   int64
}
