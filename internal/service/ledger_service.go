package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hirewire/ledger-service/internal/model"
	"github.com/hirewire/ledger-service/internal/repository"
)

// depositCapDivisor bounds a single deposit to a quarter of the client's
// outstanding unpaid job total.
const depositCapDivisor = 4

type LedgerService struct {
	repo *repository.LedgerRepository
}

func NewLedgerService(repo *repository.LedgerRepository) *LedgerService {
	return &LedgerService{repo: repo}
}

// GetContract returns the contract only if the caller is a party to it.
// Contracts belonging to other profiles are indistinguishable from missing ones.
func (s *LedgerService) GetContract(ctx context.Context, principal model.Principal, contractID uuid.UUID) (*model.Contract, error) {
	if contractID == uuid.Nil {
		return nil, fmt.Errorf("%w: contract id is required", ErrInvalidInput)
	}

	contract, err := s.repo.GetContractForProfile(ctx, contractID, principal.ProfileID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get contract: %w", err)
	}
	return contract, nil
}

// ListContracts returns the caller's non-terminated contracts, oldest first.
func (s *LedgerService) ListContracts(ctx context.Context, principal model.Principal) ([]model.Contract, error) {
	contracts, err := s.repo.ListContractsForProfile(ctx, principal.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	return contracts, nil
}

// ListUnpaidJobs returns unpaid jobs under the caller's in-progress contracts.
func (s *LedgerService) ListUnpaidJobs(ctx context.Context, principal model.Principal) ([]model.Job, error) {
	jobs, err := s.repo.ListUnpaidJobsForProfile(ctx, principal.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("list unpaid jobs: %w", err)
	}
	return jobs, nil
}

// PayJob settles an unpaid job on one of the caller's contracts, moving the
// job price from the client to the contractor. The balance check here is a
// fast path; the settlement transaction re-checks funds under lock, so a
// concurrent spend can still surface ErrInsufficientFunds.
func (s *LedgerService) PayJob(ctx context.Context, principal model.Principal, jobID uuid.UUID) (*model.Job, error) {
	if jobID == uuid.Nil {
		return nil, fmt.Errorf("%w: job id is required", ErrInvalidInput)
	}

	payable, err := s.repo.GetPayableJob(ctx, jobID, principal.ProfileID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrJobNotPayable
		}
		return nil, fmt.Errorf("load payable job: %w", err)
	}

	if payable.Price > principal.Balance {
		return nil, ErrInsufficientFunds
	}

	job, err := s.repo.SettleJob(ctx, payable, time.Now().UTC())
	if err != nil {
		switch {
		case err == gorm.ErrRecordNotFound:
			// Another request settled the job between the lookup and the update.
			return nil, ErrJobNotPayable
		case err == repository.ErrInsufficientFunds:
			return nil, ErrInsufficientFunds
		}
		return nil, fmt.Errorf("settle job: %w", err)
	}
	return job, nil
}

// Deposit moves funds from the caller into a contractor's balance. The amount
// actually deposited is clamped to a quarter of the caller's total unpaid job
// price at the time of the call; callers with no unpaid jobs cannot deposit at
// all. Returns the deposited amount.
func (s *LedgerService) Deposit(ctx context.Context, principal model.Principal, targetID uuid.UUID, amount int64) (int64, error) {
	if targetID == uuid.Nil {
		return 0, fmt.Errorf("%w: target profile id is required", ErrInvalidInput)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	totalUnpaid, err := s.repo.SumUnpaidForClient(ctx, principal.ProfileID)
	if err != nil {
		return 0, fmt.Errorf("sum unpaid jobs: %w", err)
	}
	depositCap := totalUnpaid / depositCapDivisor
	if depositCap == 0 {
		return 0, ErrDepositNotAllowed
	}

	target, err := s.repo.GetProfile(ctx, targetID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, ErrNotAContractor
		}
		return 0, fmt.Errorf("load deposit target: %w", err)
	}
	if !target.IsContractor() {
		return 0, ErrNotAContractor
	}

	deposited := amount
	if deposited > depositCap {
		deposited = depositCap
	}

	if err := s.repo.Transfer(ctx, principal.ProfileID, target.ID, deposited); err != nil {
		if err == repository.ErrInsufficientFunds {
			return 0, ErrInsufficientFunds
		}
		return 0, fmt.Errorf("transfer deposit: %w", err)
	}
	return deposited, nil
}
