// Package testdb provisions throwaway SQLite databases mirroring the
// production schema. The repositories issue portable SQL, so the test
// suite runs without a Postgres instance.
package testdb

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hirewire/ledger-service/internal/model"
)

var schema = []string{
	`CREATE TABLE profiles (
		id TEXT PRIMARY KEY,
		role TEXT NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		profession TEXT NOT NULL,
		balance BIGINT NOT NULL DEFAULT 0 CHECK (balance >= 0),
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE contracts (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL REFERENCES profiles (id),
		contractor_id TEXT NOT NULL REFERENCES profiles (id),
		terms TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE jobs (
		id TEXT PRIMARY KEY,
		contract_id TEXT NOT NULL REFERENCES contracts (id),
		description TEXT NOT NULL,
		price BIGINT NOT NULL CHECK (price > 0),
		paid BOOLEAN NOT NULL DEFAULT FALSE,
		payment_date TIMESTAMP,
		created_at TIMESTAMP NOT NULL
	)`,
}

// Open returns a file-backed database in a per-test temp dir. Transactions
// take the write lock at BEGIN so concurrent writers queue instead of
// failing, which keeps settlement race tests deterministic.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "ledger.db") + "?_busy_timeout=5000&_txlock=immediate"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("apply schema: %v", err)
		}
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// CreateProfile inserts the profile, filling in an id, placeholder names,
// and a creation time when the caller leaves them zero.
func CreateProfile(t *testing.T, db *gorm.DB, profile model.Profile) model.Profile {
	t.Helper()

	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	if profile.FirstName == "" {
		profile.FirstName = "Test"
	}
	if profile.LastName == "" {
		profile.LastName = "Profile"
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}

	err := db.Exec(
		`INSERT INTO profiles (id, role, first_name, last_name, profession, balance, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		profile.ID, profile.Role, profile.FirstName, profile.LastName,
		profile.Profession, profile.Balance, profile.CreatedAt,
	).Error
	if err != nil {
		t.Fatalf("insert profile: %v", err)
	}
	return profile
}

// CreateContract inserts the contract between the given parties, filling in
// an id, placeholder terms, and a creation time when left zero.
func CreateContract(t *testing.T, db *gorm.DB, contract model.Contract) model.Contract {
	t.Helper()

	if contract.ID == uuid.Nil {
		contract.ID = uuid.New()
	}
	if contract.Terms == "" {
		contract.Terms = "standard terms"
	}
	if contract.Status == "" {
		contract.Status = model.ContractStatusInProgress
	}
	if contract.CreatedAt.IsZero() {
		contract.CreatedAt = time.Now().UTC()
	}

	err := db.Exec(
		`INSERT INTO contracts (id, client_id, contractor_id, terms, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		contract.ID, contract.ClientID, contract.ContractorID,
		contract.Terms, contract.Status, contract.CreatedAt,
	).Error
	if err != nil {
		t.Fatalf("insert contract: %v", err)
	}
	return contract
}

// CreateJob inserts the job, filling in an id, a placeholder description,
// and a creation time when left zero.
func CreateJob(t *testing.T, db *gorm.DB, job model.Job) model.Job {
	t.Helper()

	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.Description == "" {
		job.Description = "work performed"
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}

	err := db.Exec(
		`INSERT INTO jobs (id, contract_id, description, price, paid, payment_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		job.ID, job.ContractID, job.Description, job.Price,
		job.Paid, job.PaymentDate, job.CreatedAt,
	).Error
	if err != nil {
		t.Fatalf("insert job: %v", err)
	}
	return job
}

// Balance reads a profile's balance straight from the table.
func Balance(t *testing.T, db *gorm.DB, profileID uuid.UUID) int64 {
	t.Helper()

	var balance int64
	if err := db.Raw(`SELECT balance FROM profiles WHERE id = ?`, profileID).Scan(&balance).Error; err != nil {
		t.Fatalf("read balance: %v", err)
	}
	return balance
}
