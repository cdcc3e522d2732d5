package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mikl0s/JAI/internal/model"
)

// AnalyticsRepo serves the admin dashboard aggregation queries.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

func NewAnalyticsRepo(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// SuspiciousIPs returns IPs that cast at least threshold votes for a single
// judge within the last hour.
func (r *AnalyticsRepo) SuspiciousIPs(ctx context.Context, threshold int) ([]model.SuspiciousIP, error) {
	query := `
		SELECT v.judge_id,
		       (SELECT name FROM judges WHERE id = v.judge_id),
		       v.ip_address,
		       COALESCE((SELECT country_name FROM ip_geolocation
		                 WHERE ip_address = v.ip_address LIMIT 1), 'Unknown'),
		       COUNT(*),
		       MAX(v.created_at)
		FROM votes v
		WHERE v.created_at > NOW() - INTERVAL '1 hour'
		GROUP BY v.judge_id, v.ip_address
		HAVING COUNT(*) >= $1
		ORDER BY COUNT(*) DESC, MAX(v.created_at) DESC`

	rows, err := r.pool.Query(ctx, query, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SuspiciousIP
	for rows.Next() {
		var s model.SuspiciousIP
		if err := rows.Scan(&s.JudgeID, &s.JudgeName, &s.IPAddress, &s.CountryName, &s.VoteCount, &s.LatestVote); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// SuspiciousFingerprints returns fingerprints with at least threshold votes
// for a single judge within the last hour.
func (r *AnalyticsRepo) SuspiciousFingerprints(ctx context.Context, threshold int) ([]model.SuspiciousFingerprint, error) {
	query := `
		SELECT v.judge_id,
		       (SELECT name FROM judges WHERE id = v.judge_id),
		       COALESCE(v.browser_fingerprint, ''),
		       COUNT(*),
		       MAX(v.created_at)
		FROM votes v
		WHERE v.created_at > NOW() - INTERVAL '1 hour'
		GROUP BY v.judge_id, v.browser_fingerprint
		HAVING COUNT(*) >= $1
		ORDER BY COUNT(*) DESC, MAX(v.created_at) DESC`

	rows, err := r.pool.Query(ctx, query, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SuspiciousFingerprint
	for rows.Next() {
		var s model.SuspiciousFingerprint
		if err := rows.Scan(&s.JudgeID, &s.JudgeName, &s.Fingerprint, &s.VoteCount, &s.LatestVote); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// JudgeVoteSnapshot holds vote tallies for a judge now and one hour ago.
type JudgeVoteSnapshot struct {
	JudgeID          int64
	JudgeName        string
	CorruptBefore    int
	NotCorruptBefore int
	CorruptNow       int
	NotCorruptNow    int
}

// VoteSnapshots returns per-judge tallies now versus one hour ago, for
// ratio-swing detection on displayed judges.
func (r *AnalyticsRepo) VoteSnapshots(ctx context.Context) ([]JudgeVoteSnapshot, error) {
	query := `
		SELECT j.id, j.name,
		       (SELECT COUNT(*) FROM votes WHERE judge_id = j.id AND vote_type = 'corrupt'
		          AND created_at <= NOW() - INTERVAL '1 hour'),
		       (SELECT COUNT(*) FROM votes WHERE judge_id = j.id AND vote_type = 'not_corrupt'
		          AND created_at <= NOW() - INTERVAL '1 hour'),
		       (SELECT COUNT(*) FROM votes WHERE judge_id = j.id AND vote_type = 'corrupt'),
		       (SELECT COUNT(*) FROM votes WHERE judge_id = j.id AND vote_type = 'not_corrupt')
		FROM judges j
		WHERE j.displayed = true`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []JudgeVoteSnapshot
	for rows.Next() {
		var s JudgeVoteSnapshot
		if err := rows.Scan(&s.JudgeID, &s.JudgeName, &s.CorruptBefore, &s.NotCorruptBefore, &s.CorruptNow, &s.NotCorruptNow); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// HourlyVotes buckets votes of the last `days` days by hour of day.
func (r *AnalyticsRepo) HourlyVotes(ctx context.Context, days int) ([24]int, error) {
	var buckets [24]int
	rows, err := r.pool.Query(ctx, `
		SELECT EXTRACT(HOUR FROM created_at)::int, COUNT(*)
		FROM votes
		WHERE created_at > NOW() - make_interval(days => $1)
		GROUP BY 1
		ORDER BY 1`, days)
	if err != nil {
		return buckets, err
	}
	defer rows.Close()

	for rows.Next() {
		var hour, count int
		if err := rows.Scan(&hour, &count); err != nil {
			return buckets, err
		}
		if hour >= 0 && hour < 24 {
			buckets[hour] = count
		}
	}
	return buckets, rows.Err()
}

// DailyVotes buckets votes of the last 30 days by day of week (0 = Sunday).
func (r *AnalyticsRepo) DailyVotes(ctx context.Context) ([7]int, error) {
	var buckets [7]int
	rows, err := r.pool.Query(ctx, `
		SELECT EXTRACT(DOW FROM created_at)::int, COUNT(*)
		FROM votes
		WHERE created_at > NOW() - INTERVAL '30 days'
		GROUP BY 1
		ORDER BY 1`)
	if err != nil {
		return buckets, err
	}
	defer rows.Close()

	for rows.Next() {
		var day, count int
		if err := rows.Scan(&day, &count); err != nil {
			return buckets, err
		}
		if day >= 0 && day < 7 {
			buckets[day] = count
		}
	}
	return buckets, rows.Err()
}

// CountryDistribution returns vote counts by country, unresolved IPs as Unknown.
func (r *AnalyticsRepo) CountryDistribution(ctx context.Context) ([]model.CountryVotes, error) {
	query := `
		SELECT COALESCE(geo.country_code2, 'Unknown'),
		       COALESCE(geo.country_name, 'Unknown'),
		       COUNT(*)
		FROM votes v
		LEFT JOIN ip_geolocation geo ON v.ip_address = geo.ip_address
		GROUP BY 1, 2
		ORDER BY 3 DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CountryVotes
	for rows.Next() {
		var c model.CountryVotes
		if err := rows.Scan(&c.CountryCode, &c.CountryName, &c.VoteCount); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// RegionDistribution returns vote counts by region for the given countries.
func (r *AnalyticsRepo) RegionDistribution(ctx context.Context, countryCodes []string) ([]model.RegionVotes, error) {
	if len(countryCodes) == 0 {
		return nil, nil
	}
	query := `
		SELECT geo.country_code2, geo.country_name,
		       COALESCE(geo.region, 'Unknown'),
		       COUNT(*)
		FROM votes v
		JOIN ip_geolocation geo ON v.ip_address = geo.ip_address
		WHERE geo.country_code2 = ANY($1)
		GROUP BY 1, 2, 3
		ORDER BY 2, 4 DESC`

	rows, err := r.pool.Query(ctx, query, countryCodes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RegionVotes
	for rows.Next() {
		var reg model.RegionVotes
		if err := rows.Scan(&reg.CountryCode, &reg.CountryName, &reg.Region, &reg.VoteCount); err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}

// VoteTypeCounts tallies all votes by type.
func (r *AnalyticsRepo) VoteTypeCounts(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT vote_type, COUNT(*) FROM votes GROUP BY vote_type ORDER BY 2 DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var voteType string
		var count int
		if err := rows.Scan(&voteType, &count); err != nil {
			return nil, err
		}
		counts[voteType] = count
	}
	return counts, rows.Err()
}

// VoteTrends returns per-day corrupt / not_corrupt counts over the last 30 days.
func (r *AnalyticsRepo) VoteTrends(ctx context.Context) ([]model.VoteTrendPoint, error) {
	query := `
		SELECT DATE(created_at)::text,
		       COUNT(*) FILTER (WHERE vote_type = 'corrupt'),
		       COUNT(*) FILTER (WHERE vote_type = 'not_corrupt')
		FROM votes
		WHERE created_at > NOW() - INTERVAL '30 days'
		GROUP BY 1
		ORDER BY 1`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.VoteTrendPoint
	for rows.Next() {
		var p model.VoteTrendPoint
		if err := rows.Scan(&p.Date, &p.Corrupt, &p.NotCorrupt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// TopJudges returns the judges with the most votes overall.
func (r *AnalyticsRepo) TopJudges(ctx context.Context, limit int) ([]model.TopJudge, error) {
	query := `
		SELECT j.id, j.name, COUNT(v.id)
		FROM judges j
		JOIN votes v ON j.id = v.judge_id
		GROUP BY j.id
		ORDER BY COUNT(v.id) DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TopJudge
	for rows.Next() {
		var t model.TopJudge
		if err := rows.Scan(&t.JudgeID, &t.JudgeName, &t.VoteCount); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
