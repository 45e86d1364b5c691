package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hirewire/ledger-service/internal/model"
	"github.com/hirewire/ledger-service/internal/repository"
	"github.com/hirewire/ledger-service/internal/testdb"
)

func newLedgerService(t *testing.T) (*LedgerService, *gorm.DB) {
	t.Helper()
	db := testdb.Open(t)
	return NewLedgerService(repository.NewLedgerRepository(db)), db
}

func principalFor(profile model.Profile) model.Principal {
	return model.Principal{
		ProfileID: profile.ID,
		Role:      profile.Role,
		FullName:  profile.FullName(),
		Balance:   profile.Balance,
	}
}

func TestGetContract(t *testing.T) {
	svc, db := newLedgerService(t)
	ctx := context.Background()

	client := testdb.CreateProfile(t, db, model.Profile{Role: model.RoleClient})
	contractor := testdb.CreateProfile(t, db, model.Profile{Role: model.RoleContractor, Profession: "painter"})
	outsider := testdb.CreateProfile(t, db, model.Profile{Role: model.RoleClient})
	contract := testdb.CreateContract(t, db, model.Contract{
		ClientID:     client.ID,
		ContractorID: contractor.ID,
	})

	t.Run("returns the caller's contract", func(t *testing.T) {
		got, err := svc.GetContract(ctx, principalFor(client), contract.ID)
		if err != nil {
			t.Fatalf("GetContract failed: %v", err)
		}
		if got.ID != contract.ID {
			t.Errorf("ID mismatch: got %s, want %s", got.ID, contract.ID)
		}
	})

	t.Run("hides other parties' contracts behind ErrNotFound", func(t *testing.T) {
		if _, err := svc.GetContract(ctx, principalFor(outsider), contract.ID); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("reports missing contracts", func(t *testing.T) {
		if _, err := svc.GetContract(ctx, principalFor(client), uuid.New()); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("rejects a zero contract id", func(t *testing.T) {
		if _, err := svc.GetContract(ctx, principalFor(client), uuid.Nil); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestListOperations(t *testing.T) {
	svc, db := newLedgerService(t)
	ctx := context.Background()

	client := testdb.CreateProfile(t, db, model.Profile{Role: model.RoleClient})
	contractor := testdb.CreateProfile(t, db, model.Profile{Role: model.RoleContractor, Profession: "tiler"})
	contract := testdb.CreateContract(t, db, model.Contract{
		ClientID:     client.ID,
		ContractorID: contractor.ID,
		Status:       model.ContractStatusInProgress,
	})
	job := testdb.CreateJob(t, db, model.Job{ContractID: contract.ID, Price: 250})

	contracts, err := svc.ListContracts(ctx, principalFor(client))
	if err != nil {
		t.Fatalf("ListContracts failed: %v", err)
	}
	if len(contracts) != 1 || contracts[0].ID != contract.ID {
		t.Errorf("contracts mismatch: got %d rows", len(contracts))
	}

	jobs, err := svc.ListUnpaidJobs(ctx, principalFor(contractor))
	if err != nil {
		t.Fatalf("ListUnpaidJobs failed: %v", err)
	}
	if len(jobs) != 1 || jobs[0].ID != job.ID {
		t.Errorf("jobs mismatch: got %d rows", len(jobs))
	}
}

func TestPayJob(t *testing.T) {
	svc, db := newLedgerService(t)
	ctx := context.Background()

	client := testdb.CreateProfile(t, db, model.Profile{Role: model.RoleClient, Balance: 1000})
	contractor := testdb.CreateProfile(t, db, model.Profile{Role: model.RoleContractor, Profession: "electrician"})
	contract := testdb.CreateContract(t, db, model.Contract{
		ClientID:     client.ID,
		ContractorID: contractor.ID,
		Status:       model.ContractStatusInProgress,
	})
	job := testdb.CreateJob(t, db, model.Job{ContractID: contract.ID, Price: 400})

	t.Run("pays an unpaid job on the caller's contract", func(t *testing.T) {
		paid, err := svc.PayJob(ctx, principalFor(client), job.ID)
		if err != nil {
			t.Fatalf("PayJob failed: %v", err)
		}
		if !paid.Paid || paid.PaymentDate == nil {
			t.Error("expected job to come back paid with a payment date")
		}
		if got := testdb.Balance(t, db, client.ID); got != 600 {
			t.Errorf("client balance mismatch: got %d, want 600", got)
		}
		if got := testdb.Balance(t, db, contractor.ID); got != 400 {
			t.Errorf("contractor balance mismatch: got %d, want 400", got)
		}
	})

	t.Run("paying the same job twice fails", func(t *testing.T) {
		if _, err := svc.PayJob(ctx, principalFor(client), job.ID); !errors.Is(err, ErrJobNotPayable) {
			t.Fatalf("expected ErrJobNotPayable, got %v", err)
		}
	})

	t.Run("unknown jobs are not payable", func(t *testing.T) {
		if _, err := svc.PayJob(ctx, principalFor(client), uuid.New()); !errors.Is(err, ErrJobNotPayable) {
			t.Fatalf("expected ErrJobNotPayable, got %v", err)
		}
	})

	t.Run("only the contract's client can pay", func(t *testing.T) {
		other := testdb.CreateJob(t, db, model.Job{ContractID: contract.ID, Price: 100})
		if _, err := svc.PayJob(ctx, principalFor(contractor), other.ID); !errors.Is(err, ErrJobNotPayable) {
			t.Fatalf("expected ErrJobNotPayable, got %v", err)
		}
	})

	t.Run("price above the balance fails fast", func(t *testing.T) {
		expensive := testdb.CreateJob(t, db, model.Job{ContractID: contract.ID, Price: 100000})
		principal := principalFor(client)
		principal.Balance = testdb.Balance(t, db, client.ID)
		if _, err := svc.PayJob(ctx, principal, expensive.ID); !errors.Is(err, ErrInsufficientFunds) {
			t.Fatalf("expected ErrInsufficientFunds, got %v", err)
		}
	})

	t.Run("a stale principal balance cannot overdraw", func(t *testing.T) {
		costly := testdb.CreateJob(t, db, model.Job{ContractID: contract.ID, Price: 100000})
		principal := principalFor(client)
		principal.Balance = 1_000_000 // lies about the funds
		if _, err := svc.PayJob(ctx, principal, costly.ID); !errors.Is(err, ErrInsufficientFunds) {
			t.Fatalf("expected ErrInsufficientFunds, got %v", err)
		}

		jobs, err := svc.ListUnpaidJobs(ctx, principalFor(client))
		if err != nil {
			t.Fatalf("ListUnpaidJobs failed: %v", err)
		}
		found := false
		for _, j := range jobs {
			if j.ID == costly.ID {
				found = true
			}
		}
		if !found {
			t.Error("expected the job to stay payable after the failed settlement")
		}
	})
}

func TestDeposit(t *testing.T) {
	newFixture := func(t *testing.T, clientBalance, unpaidPrice int64) (*LedgerService, *gorm.DB, model.Profile, model.Profile) {
		svc, db := newLedgerService(t)
		client := testdb.CreateProfile(t, db, model.Profile{Role: model.RoleClient, Balance: clientBalance})
		contractor := testdb.CreateProfile(t, db, model.Profile{Role: model.RoleContractor, Profession: "gardener"})
		if unpaidPrice > 0 {
			contract := testdb.CreateContract(t, db, model.Contract{
				ClientID:     client.ID,
				ContractorID: contractor.ID,
				Status:       model.ContractStatusInProgress,
			})
			testdb.CreateJob(t, db, model.Job{ContractID: contract.ID, Price: unpaidPrice})
		}
		return svc, db, client, contractor
	}
	ctx := context.Background()

	t.Run("clamps the deposit to a quarter of unpaid work", func(t *testing.T) {
		svc, db, client, contractor := newFixture(t, 1000, 400)
		deposited, err := svc.Deposit(ctx, principalFor(client), contractor.ID, 1000)
		if err != nil {
			t.Fatalf("Deposit failed: %v", err)
		}
		if deposited != 100 {
			t.Errorf("deposited mismatch: got %d, want 100", deposited)
		}
		if got := testdb.Balance(t, db, client.ID); got != 900 {
			t.Errorf("client balance mismatch: got %d, want 900", got)
		}
		if got := testdb.Balance(t, db, contractor.ID); got != 100 {
			t.Errorf("contractor balance mismatch: got %d, want 100", got)
		}
	})

	t.Run("amounts under the cap pass through unchanged", func(t *testing.T) {
		svc, db, client, contractor := newFixture(t, 1000, 400)
		deposited, err := svc.Deposit(ctx, principalFor(client), contractor.ID, 50)
		if err != nil {
			t.Fatalf("Deposit failed: %v", err)
		}
		if deposited != 50 {
			t.Errorf("deposited mismatch: got %d, want 50", deposited)
		}
		if got := testdb.Balance(t, db, contractor.ID); got != 50 {
			t.Errorf("contractor balance mismatch: got %d, want 50", got)
		}
	})

	t.Run("refuses deposits without unpaid jobs", func(t *testing.T) {
		svc, _, client, contractor := newFixture(t, 1000, 0)
		if _, err := svc.Deposit(ctx, principalFor(client), contractor.ID, 100); !errors.Is(err, ErrDepositNotAllowed) {
			t.Fatalf("expected ErrDepositNotAllowed, got %v", err)
		}
	})

	t.Run("refuses when the cap rounds down to zero", func(t *testing.T) {
		svc, _, client, contractor := newFixture(t, 1000, 3)
		if _, err := svc.Deposit(ctx, principalFor(client), contractor.ID, 100); !errors.Is(err, ErrDepositNotAllowed) {
			t.Fatalf("expected ErrDepositNotAllowed, got %v", err)
		}
	})

	t.Run("rejects targets that are not contractors", func(t *testing.T) {
		svc, db, client, _ := newFixture(t, 1000, 400)
		otherClient := testdb.CreateProfile(t, db, model.Profile{Role: model.RoleClient})
		if _, err := svc.Deposit(ctx, principalFor(client), otherClient.ID, 100); !errors.Is(err, ErrNotAContractor) {
			t.Fatalf("expected ErrNotAContractor, got %v", err)
		}
	})

	t.Run("rejects missing targets", func(t *testing.T) {
		svc, _, client, _ := newFixture(t, 1000, 400)
		if _, err := svc.Deposit(ctx, principalFor(client), uuid.New(), 100); !errors.Is(err, ErrNotAContractor) {
			t.Fatalf("expected ErrNotAContractor, got %v", err)
		}
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		svc, _, client, contractor := newFixture(t, 1000, 400)
		if _, err := svc.Deposit(ctx, principalFor(client), contractor.ID, 0); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
		if _, err := svc.Deposit(ctx, principalFor(client), contractor.ID, -5); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("fails when the balance cannot cover the deposit", func(t *testing.T) {
		svc, db, client, contractor := newFixture(t, 10, 400)
		if _, err := svc.Deposit(ctx, principalFor(client), contractor.ID, 80); !errors.Is(err, ErrInsufficientFunds) {
			t.Fatalf("expected ErrInsufficientFunds, got %v", err)
		}
		if got := testdb.Balance(t, db, client.ID); got != 10 {
			t.Errorf("client balance mismatch: got %d, want 10", got)
		}
	})
}

// The deposit clock reads the unpaid total at call time, so settling a job
// first shrinks the cap for the next deposit.
func TestDepositCapFollowsUnpaidTotal(t *testing.T) {
	svc, db := newLedgerService(t)
	ctx := context.Background()

	client := testdb.CreateProfile(t, db, model.Profile{Role: model.RoleClient, Balance: 2000})
	contractor := testdb.CreateProfile(t, db, model.Profile{Role: model.RoleContractor, Profession: "locksmith"})
	contract := testdb.CreateContract(t, db, model.Contract{
		ClientID:     client.ID,
		ContractorID: contractor.ID,
		Status:       model.ContractStatusInProgress,
	})
	small := testdb.CreateJob(t, db, model.Job{ContractID: contract.ID, Price: 200})
	testdb.CreateJob(t, db, model.Job{ContractID: contract.ID, Price: 600})

	deposited, err := svc.Deposit(ctx, principalFor(client), contractor.ID, 10_000)
	if err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	if deposited != 200 { // (200 + 600) / 4
		t.Errorf("deposited mismatch: got %d, want 200", deposited)
	}

	principal := principalFor(client)
	principal.Balance = testdb.Balance(t, db, client.ID)
	if _, err := svc.PayJob(ctx, principal, small.ID); err != nil {
		t.Fatalf("PayJob failed: %v", err)
	}

	deposited, err = svc.Deposit(ctx, principalFor(client), contractor.ID, 10_000)
	if err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	if deposited != 150 { // only the 600 job is left unpaid
		t.Errorf("deposited mismatch: got %d, want 150", deposited)
	}
}
