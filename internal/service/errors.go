package service

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrJobNotPayable     = errors.New("job not found or not payable")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNotAContractor    = errors.New("target profile is not a contractor")
	ErrDepositNotAllowed = errors.New("no outstanding jobs to deposit against")
	ErrInvalidInput      = errors.New("invalid input")
)
