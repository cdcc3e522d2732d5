package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mikl0s/JAI/internal/model"
)

type AdminLogRepo struct {
	pool *pgxpool.Pool
}

func NewAdminLogRepo(pool *pgxpool.Pool) *AdminLogRepo {
	return &AdminLogRepo{pool: pool}
}

// Insert appends one audit record.
func (r *AdminLogRepo) Insert(ctx context.Context, username, action, details, ip string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO admin_logs (admin_username, action, details, ip_address)
		VALUES ($1, $2, $3, $4)`,
		username, action, details, ip)
	return err
}

// ListRecent returns the latest audit records, newest first, with the
// cached geolocation for each IP folded into Location.
func (r *AdminLogRepo) ListRecent(ctx context.Context, limit int) ([]model.AdminLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT l.id, l.admin_username, l.action, COALESCE(l.details, ''), l.ip_address, l.timestamp,
		       COALESCE(g.city, ''), COALESCE(g.region, ''), COALESCE(g.country_name, '')
		FROM admin_logs l
		LEFT JOIN ip_geolocation g ON g.ip_address = l.ip_address
		ORDER BY l.timestamp DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []model.AdminLog
	for rows.Next() {
		var l model.AdminLog
		var geo model.GeoEntry
		if err := rows.Scan(&l.ID, &l.AdminUsername, &l.Action, &l.Details, &l.IPAddress, &l.Timestamp,
			&geo.City, &geo.Region, &geo.CountryName); err != nil {
			return nil, err
		}
		l.Location = geo.Location()
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
