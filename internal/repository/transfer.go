package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hirewire/ledger-service/internal/model"
)

// Transfer moves amount from one profile balance to another. Debit and
// credit commit together or not at all; the debit's balance predicate
// rejects overdrafts even when transfers race on the same source.
func (r *LedgerRepository) Transfer(ctx context.Context, fromID, toID uuid.UUID, amount int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := debitBalance(tx, fromID, amount); err != nil {
			return err
		}
		return creditBalance(tx, toID, amount)
	})
}

// SettleJob pays an unpaid job in a single transaction: mark it paid,
// debit the client, credit the contractor, and return the settled job.
// The paid predicate admits exactly one settlement per job; a concurrent
// caller that loses the race gets gorm.ErrRecordNotFound and no balance
// moves.
func (r *LedgerRepository) SettleJob(ctx context.Context, payable *model.PayableJob, paidAt time.Time) (*model.Job, error) {
	var settled model.Job
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(`
			UPDATE jobs
			SET paid = TRUE, payment_date = ?
			WHERE id = ? AND NOT paid
		`, paidAt, payable.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := debitBalance(tx, payable.ClientID, payable.Price); err != nil {
			return err
		}
		if err := creditBalance(tx, payable.ContractorID, payable.Price); err != nil {
			return err
		}

		return tx.Raw(`
			SELECT id, contract_id, description, price, paid, payment_date, created_at
			FROM jobs
			WHERE id = ?
			LIMIT 1
		`, payable.ID).Scan(&settled).Error
	})
	if err != nil {
		return nil, err
	}
	return &settled, nil
}

// debitBalance subtracts amount if the balance covers it. Zero affected
// rows means the predicate failed: debtors are always resolved profiles,
// so absence is not a case here.
func debitBalance(tx *gorm.DB, profileID uuid.UUID, amount int64) error {
	res := tx.Exec(`
		UPDATE profiles
		SET balance = balance - ?
		WHERE id = ? AND balance >= ?
	`, amount, profileID, amount)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientFunds
	}
	return nil
}

func creditBalance(tx *gorm.DB, profileID uuid.UUID, amount int64) error {
	res := tx.Exec(`
		UPDATE profiles
		SET balance = balance + ?
		WHERE id = ?
	`, amount, profileID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: credit target %s missing", ErrLedgerIntegrity, profileID)
	}
	return nil
}
