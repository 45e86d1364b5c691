package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hirewire/ledger-service/internal/model"
)

type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, role, first_name, last_name, profession, balance, created_at
		FROM profiles
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&profile).Error; err != nil {
		return nil, err
	}
	if profile.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &profile, nil
}

// GetContractForProfile resolves a contract only when the profile is a
// party to it, so absence and lack of visibility are indistinguishable.
func (r *LedgerRepository) GetContractForProfile(ctx context.Context, contractID, profileID uuid.UUID) (*model.Contract, error) {
	var contract model.Contract
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, client_id, contractor_id, terms, status, created_at
		FROM contracts
		WHERE id = ? AND (client_id = ? OR contractor_id = ?)
		LIMIT 1
	`, contractID, profileID, profileID).Scan(&contract).Error; err != nil {
		return nil, err
	}
	if contract.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &contract, nil
}

// ListContractsForProfile returns the profile's contracts that have not
// been terminated, oldest first.
func (r *LedgerRepository) ListContractsForProfile(ctx context.Context, profileID uuid.UUID) ([]model.Contract, error) {
	var contracts []model.Contract
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, client_id, contractor_id, terms, status, created_at
		FROM contracts
		WHERE (client_id = ? OR contractor_id = ?) AND status <> 'terminated'
		ORDER BY created_at ASC
	`, profileID, profileID).Scan(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}

// ListUnpaidJobsForProfile returns unpaid jobs on the profile's active
// contracts, for either side of the contract.
func (r *LedgerRepository) ListUnpaidJobsForProfile(ctx context.Context, profileID uuid.UUID) ([]model.Job, error) {
	var jobs []model.Job
	if err := r.db.WithContext(ctx).Raw(`
		SELECT j.id, j.contract_id, j.description, j.price, j.paid, j.payment_date, j.created_at
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		WHERE (c.client_id = ? OR c.contractor_id = ?)
			AND c.status = 'in_progress'
			AND NOT j.paid
		ORDER BY j.created_at ASC
	`, profileID, profileID).Scan(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetPayableJob looks up an unpaid job that the given client may pay,
// pre-joined with the contract parties so settlement needs no further
// lookups. Wrong caller, already paid and nonexistent all surface as
// gorm.ErrRecordNotFound.
func (r *LedgerRepository) GetPayableJob(ctx context.Context, jobID, clientID uuid.UUID) (*model.PayableJob, error) {
	var payable model.PayableJob
	if err := r.db.WithContext(ctx).Raw(`
		SELECT j.id, j.contract_id, j.description, j.price, c.client_id, c.contractor_id
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		WHERE j.id = ? AND c.client_id = ? AND NOT j.paid
		LIMIT 1
	`, jobID, clientID).Scan(&payable).Error; err != nil {
		return nil, err
	}
	if payable.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &payable, nil
}

// SumUnpaidForClient totals the price of every unpaid job across the
// client's contracts regardless of contract status. Zero when none.
func (r *LedgerRepository) SumUnpaidForClient(ctx context.Context, clientID uuid.UUID) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(j.price), 0)
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		WHERE c.client_id = ? AND NOT j.paid
	`, clientID).Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
