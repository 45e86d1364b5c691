package db

import (
	"fmt"

	"gorm.io/gorm"
)

// Demo dataset for local development: a handful of clients and
// contractors with contracts in every lifecycle state and a mix of paid
// and unpaid jobs. Inserts are keyed on fixed ids so reseeding is a
// no-op. Enabled with LEDGER_SEED_DEMO=true.
var seedStatements = []string{
	`INSERT INTO profiles (id, role, first_name, last_name, profession, balance) VALUES
		('8c2f5f3e-95da-4cd0-9d6a-1d87254f79f1', 'client', 'Dana', 'Whitfield', '', 115000),
		('2f8a61de-60c8-4dd7-8f59-6f2b9c0d1ea4', 'client', 'Marcus', 'Bell', '', 23100),
		('b4f7a81c-33e5-4f7b-a9d2-58c6e0f4b723', 'client', 'Priya', 'Nair', '', 45000),
		('6a9f12b3-7c44-4a6e-b5d0-92e81c3f4a57', 'contractor', 'Elena', 'Ortiz', 'programmer', 6400),
		('e3d5c7a9-1b2f-4c8d-9e60-74a5b6c8d901', 'contractor', 'Tom', 'Aldridge', 'plumber', 0),
		('4b8e62f0-9a3d-4e5c-8b71-c2d4f6a8e013', 'contractor', 'Sofia', 'Marin', 'designer', 121400),
		('9d1c3e5a-7f20-4b46-a8c9-35e7d90b2f64', 'contractor', 'Ray', 'Okafor', 'programmer', 350)
	ON CONFLICT (id) DO NOTHING;`,
	`INSERT INTO contracts (id, client_id, contractor_id, terms, status) VALUES
		('1a2b3c4d-5e6f-4708-9a0b-c1d2e3f40516', '8c2f5f3e-95da-4cd0-9d6a-1d87254f79f1', '6a9f12b3-7c44-4a6e-b5d0-92e81c3f4a57', 'Backend platform work, monthly milestones', 'in_progress'),
		('7e8f9a0b-1c2d-4e3f-8a5b-6c7d8e9f0a1b', '8c2f5f3e-95da-4cd0-9d6a-1d87254f79f1', 'e3d5c7a9-1b2f-4c8d-9e60-74a5b6c8d901', 'Office plumbing maintenance', 'in_progress'),
		('3c4d5e6f-7a8b-4c9d-9e0f-1a2b3c4d5e6f', '2f8a61de-60c8-4dd7-8f59-6f2b9c0d1ea4', '4b8e62f0-9a3d-4e5c-8b71-c2d4f6a8e013', 'Rebranding package', 'in_progress'),
		('5e6f7a8b-9c0d-4e1f-8a3b-4c5d6e7f8a9b', 'b4f7a81c-33e5-4f7b-a9d2-58c6e0f4b723', '6a9f12b3-7c44-4a6e-b5d0-92e81c3f4a57', 'Legacy system migration', 'terminated'),
		('0f1e2d3c-4b5a-4697-8887-76655443322f', 'b4f7a81c-33e5-4f7b-a9d2-58c6e0f4b723', '9d1c3e5a-7f20-4b46-a8c9-35e7d90b2f64', 'Mobile app prototype', 'new')
	ON CONFLICT (id) DO NOTHING;`,
	`INSERT INTO jobs (id, contract_id, description, price, paid, payment_date) VALUES
		('d1e2f3a4-b5c6-4d7e-9f80-a1b2c3d4e5f6', '1a2b3c4d-5e6f-4708-9a0b-c1d2e3f40516', 'API integration milestone', 20000, FALSE, NULL),
		('a9b8c7d6-e5f4-4a3b-8c2d-1e0f9a8b7c6d', '1a2b3c4d-5e6f-4708-9a0b-c1d2e3f40516', 'Schema design', 20200, TRUE, '2026-08-10T14:00:00Z'),
		('2e4a6c80-1357-4b9d-8ace-02468bdf1357', '7e8f9a0b-1c2d-4e3f-8a5b-6c7d8e9f0a1b', 'Bathroom refit', 8400, FALSE, NULL),
		('f0e1d2c3-b4a5-4968-8776-5544332211ff', '3c4d5e6f-7a8b-4c9d-9e0f-1a2b3c4d5e6f', 'Landing page', 12100, TRUE, '2026-08-15T09:30:00Z'),
		('6f5e4d3c-2b1a-4098-9786-f5e4d3c2b1a0', '5e6f7a8b-9c0d-4e1f-8a3b-4c5d6e7f8a9b', 'Legacy cleanup', 9900, TRUE, '2026-07-02T16:45:00Z'),
		('c3a5e7f9-0b2d-4f46-a8c0-9e7d5b3a1f86', '0f1e2d3c-4b5a-4697-8887-76655443322f', 'Prototype sprint', 30000, FALSE, NULL),
		('8b0d2f4a-6c8e-4135-9bdf-7a9c1e3f5b7d', '3c4d5e6f-7a8b-4c9d-9e0f-1a2b3c4d5e6f', 'Brand kit', 15000, FALSE, NULL)
	ON CONFLICT (id) DO NOTHING;`,
}

func SeedDemo(db *gorm.DB) error {
	for i, stmt := range seedStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("seed statement %d failed: %w", i+1, err)
		}
	}
	return nil
}
