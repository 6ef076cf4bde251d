package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cuanku/ppob-bot/internal/gateway"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

var ErrNotFound = errors.New("transaction not found")

// GetOrCreateUser: upsert by platform_id, username di-refresh tiap dipanggil.
func (r *Repo) GetOrCreateUser(ctx context.Context, platformID, username string) (User, error) {
	var u User
	err := r.DB.QueryRow(ctx, `
		INSERT INTO users(id, platform_id, username)
		VALUES ($1, $2, $3)
		ON CONFLICT (platform_id) DO UPDATE
		SET username = EXCLUDED.username, updated_at = now()
		RETURNING id, platform_id, username, created_at, updated_at
	`, uuid.NewString(), platformID, username).
		Scan(&u.ID, &u.PlatformID, &u.Username, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

// InsertPending menulis record transaksi berstatus PENDING. Wajib sukses
// dulu sebelum call gateway yang bisa menggerakkan uang; ref_id unique jadi
// duplikasi ketahan di DB.
func (r *Repo) InsertPending(ctx context.Context, t *Transaction) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.Status = gateway.StatusPending
	_, err := r.DB.Exec(ctx, `
		INSERT INTO transactions(id, user_id, ref_id, product_code, product_name,
		                         destination, amount, status, request_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'PENDING', $8)
	`, t.ID, t.UserID, t.RefID, t.ProductCode, t.ProductName,
		t.Destination, t.Amount, t.RequestData)
	return err
}

// TrxUpdate adalah partial update hasil jawaban gateway. Field kosong
// tidak ikut ditulis.
type TrxUpdate struct {
	Status       gateway.Status
	SN           string
	Message      string
	ResponseData []byte
}

func (r *Repo) UpdateByRefID(ctx context.Context, refID string, upd TrxUpdate) error {
	sets := []string{"updated_at = now()"}
	args := []any{refID}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if upd.Status != "" {
		add("status", string(upd.Status))
	}
	if upd.SN != "" {
		add("sn", upd.SN)
	}
	if upd.Message != "" {
		add("message", upd.Message)
	}
	if upd.ResponseData != nil {
		add("response_data", upd.ResponseData)
	}

	q := "UPDATE transactions SET " + joinSets(sets) + " WHERE ref_id = $1"
	ct, err := r.DB.Exec(ctx, q, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func joinSets(sets []string) string {
	out := sets[0]
	for _, s := range sets[1:] {
		out += ", " + s
	}
	return out
}

func (r *Repo) GetByRefID(ctx context.Context, refID string) (*Transaction, error) {
	var t Transaction
	err := r.DB.QueryRow(ctx, `
		SELECT id, user_id, ref_id, product_code, product_name, destination,
		       amount, status, COALESCE(sn,''), COALESCE(message,''), created_at, updated_at
		FROM transactions WHERE ref_id = $1
	`, refID).Scan(&t.ID, &t.UserID, &t.RefID, &t.ProductCode, &t.ProductName,
		&t.Destination, &t.Amount, &t.Status, &t.SN, &t.Message, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repo) ListByUser(ctx context.Context, userID string, limit int) ([]Transaction, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, user_id, ref_id, product_code, product_name, destination,
		       amount, status, COALESCE(sn,''), COALESCE(message,''), created_at, updated_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.RefID, &t.ProductCode, &t.ProductName,
			&t.Destination, &t.Amount, &t.Status, &t.SN, &t.Message, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListStalePending: transaksi yang masih PENDING melewati cutoff; kandidat
// rekonsiliasi manual (bisa jadi crash di tengah call gateway).
func (r *Repo) ListStalePending(ctx context.Context, olderThan time.Duration) ([]Transaction, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, user_id, ref_id, product_code, product_name, destination,
		       amount, status, COALESCE(sn,''), COALESCE(message,''), created_at, updated_at
		FROM transactions
		WHERE status = 'PENDING' AND created_at < now() - $1::interval
		ORDER BY created_at
	`, fmt.Sprintf("%d seconds", int(olderThan.Seconds())))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.RefID, &t.ProductCode, &t.ProductName,
			&t.Destination, &t.Amount, &t.Status, &t.SN, &t.Message, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
