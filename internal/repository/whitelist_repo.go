package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mikl0s/JAI/internal/model"
)

type WhitelistRepo struct {
	pool *pgxpool.Pool
}

func NewWhitelistRepo(pool *pgxpool.Pool) *WhitelistRepo {
	return &WhitelistRepo{pool: pool}
}

// IsWhitelisted reports whether the IP has an unexpired whitelist entry.
func (r *WhitelistRepo) IsWhitelisted(ctx context.Context, ip string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM ip_whitelist
			WHERE ip_address = $1 AND expiry > NOW()
		)`, ip).Scan(&exists)
	return exists, err
}

// Upsert adds or replaces the whitelist entry for an IP. Latest wins.
func (r *WhitelistRepo) Upsert(ctx context.Context, e model.WhitelistEntry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO ip_whitelist (ip_address, reason, expiry)
		VALUES ($1, $2, $3)
		ON CONFLICT (ip_address) DO UPDATE
		SET reason = EXCLUDED.reason, expiry = EXCLUDED.expiry, created_at = NOW()`,
		e.IPAddress, e.Reason, e.Expiry)
	return err
}

// List returns all whitelist entries, unexpired first.
func (r *WhitelistRepo) List(ctx context.Context) ([]model.WhitelistEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, ip_address, reason, expiry, created_at
		FROM ip_whitelist
		ORDER BY expiry DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.WhitelistEntry
	for rows.Next() {
		var e model.WhitelistEntry
		if err := rows.Scan(&e.ID, &e.IPAddress, &e.Reason, &e.Expiry, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
