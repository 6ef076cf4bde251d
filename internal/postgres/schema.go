package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema bikin tabel kalau belum ada; dipanggil sekali saat bootstrap.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id          UUID PRIMARY KEY,
			platform_id TEXT UNIQUE NOT NULL,
			username    TEXT,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS transactions (
			id            UUID PRIMARY KEY,
			user_id       UUID NOT NULL REFERENCES users(id),
			ref_id        TEXT UNIQUE NOT NULL,
			product_code  TEXT NOT NULL,
			product_name  TEXT,
			destination   TEXT NOT NULL,
			amount        BIGINT NOT NULL DEFAULT 0,
			status        TEXT NOT NULL DEFAULT 'PENDING',
			sn            TEXT,
			message       TEXT,
			request_data  JSONB,
			response_data JSONB,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE INDEX IF NOT EXISTS idx_transactions_user_id ON transactions(user_id);
		CREATE INDEX IF NOT EXISTS idx_transactions_status  ON transactions(status);
	`)
	return err
}
