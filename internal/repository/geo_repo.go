package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mikl0s/JAI/internal/model"
)

type GeoRepo struct {
	pool *pgxpool.Pool
}

func NewGeoRepo(pool *pgxpool.Pool) *GeoRepo {
	return &GeoRepo{pool: pool}
}

// FindByIP returns the cached geolocation row, or nil when absent.
// Absence is not an error; callers fall back to "Unknown".
func (r *GeoRepo) FindByIP(ctx context.Context, ip string) (*model.GeoEntry, error) {
	var g model.GeoEntry
	err := r.pool.QueryRow(ctx, `
		SELECT ip_address, COALESCE(country_code2, ''), COALESCE(country_name, ''),
		       COALESCE(region, ''), COALESCE(city, ''), COALESCE(isp, ''), last_updated
		FROM ip_geolocation
		WHERE ip_address = $1`, ip).Scan(
		&g.IPAddress, &g.CountryCode2, &g.CountryName, &g.Region, &g.City, &g.ISP, &g.LastUpdated,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Exists reports whether the IP already has a cached geolocation row,
// letting the warm path skip the provider call.
func (r *GeoRepo) Exists(ctx context.Context, ip string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM ip_geolocation WHERE ip_address = $1)`, ip).Scan(&exists)
	return exists, err
}

// Upsert stores or refreshes a geolocation row for an IP.
func (r *GeoRepo) Upsert(ctx context.Context, g model.GeoEntry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO ip_geolocation (ip_address, country_code2, country_name, region, city, isp)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (ip_address) DO UPDATE
		SET country_code2 = EXCLUDED.country_code2,
		    country_name = EXCLUDED.country_name,
		    region = EXCLUDED.region,
		    city = EXCLUDED.city,
		    isp = EXCLUDED.isp,
		    last_updated = NOW()`,
		g.IPAddress, g.CountryCode2, g.CountryName, g.Region, g.City, g.ISP)
	return err
}
