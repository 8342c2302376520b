package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// migrations run in order at startup. Every statement is idempotent, so
// booting repeatedly against the same database is safe.
var migrations = []string{
	`
CREATE TABLE IF NOT EXISTS users (
    id         TEXT PRIMARY KEY,
    email      TEXT NOT NULL DEFAULT '',
    balance    BIGINT NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`,
	`
CREATE TABLE IF NOT EXISTS enterprise_auth (
    id                BIGSERIAL PRIMARY KEY,
    user_id           TEXT NOT NULL REFERENCES users (id),
    company_name      TEXT NOT NULL,
    credit_code       TEXT NOT NULL,
    license_image_url TEXT NOT NULL,
    status            TEXT NOT NULL DEFAULT 'pending',
    rejection_reason  TEXT,
    created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_enterprise_auth_status
    ON enterprise_auth (status, created_at DESC);

-- At most one non-rejected request per user. Concurrent submissions race to
-- this index instead of an application-level existence check.
CREATE UNIQUE INDEX IF NOT EXISTS idx_enterprise_auth_one_active
    ON enterprise_auth (user_id) WHERE status <> 'rejected';
`,
	`
CREATE TABLE IF NOT EXISTS transactions (
    id          BIGSERIAL PRIMARY KEY,
    user_id     TEXT NOT NULL REFERENCES users (id),
    amount      BIGINT NOT NULL,
    type        TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_transactions_user
    ON transactions (user_id, created_at DESC);
`,
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("applying migration %d: %w", i+1, err)
		}
	}
	return nil
}
