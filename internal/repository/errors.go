package repository

import "errors"

var (
	// ErrInsufficientFunds is returned when a debit would take a balance
	// below zero. The conditional UPDATE predicate makes this check safe
	// under concurrent transfers from the same profile.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrLedgerIntegrity is returned when a row the ledger references
	// (such as a contract counterparty) is missing mid-transaction. Must
	// not occur under valid data; callers treat it as internal.
	ErrLedgerIntegrity = errors.New("ledger integrity violation")
)
