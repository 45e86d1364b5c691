package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/hirewire/ledger-service/internal/model"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// EarningsByProfession sums paid job prices inside the window, grouped
// by the contractor's profession. Rows come back ordered by earnings
// descending with profession name as the tie-break.
func (r *ReportRepository) EarningsByProfession(ctx context.Context, start, end time.Time) ([]model.ProfessionEarnings, error) {
	var rows []model.ProfessionEarnings
	if err := r.db.WithContext(ctx).Raw(`
		SELECT p.profession AS profession, SUM(j.price) AS earned
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		JOIN profiles p ON p.id = c.contractor_id
		WHERE j.paid
			AND j.payment_date >= ?
			AND j.payment_date <= ?
		GROUP BY p.profession
		ORDER BY SUM(j.price) DESC, p.profession ASC
	`, start, end).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SpendingByClient sums paid job prices inside the window, grouped by
// the contract's client, highest spenders first.
func (r *ReportRepository) SpendingByClient(ctx context.Context, start, end time.Time, limit int) ([]model.ClientSpend, error) {
	var rows []model.ClientSpend
	if err := r.db.WithContext(ctx).Raw(`
		SELECT p.id AS id, p.first_name, p.last_name, SUM(j.price) AS paid
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		JOIN profiles p ON p.id = c.client_id
		WHERE j.paid
			AND j.payment_date >= ?
			AND j.payment_date <= ?
		GROUP BY p.id, p.first_name, p.last_name
		ORDER BY SUM(j.price) DESC, p.id ASC
		LIMIT ?
	`, start, end, limit).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SumPaidInWindow totals every paid job price inside the window.
func (r *ReportRepository) SumPaidInWindow(ctx context.Context, start, end time.Time) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(price), 0)
		FROM jobs
		WHERE paid
			AND payment_date >= ?
			AND payment_date <= ?
	`, start, end).Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
