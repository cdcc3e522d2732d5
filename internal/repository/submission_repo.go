package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mikl0s/JAI/internal/model"
)

type SubmissionRepo struct {
	pool *pgxpool.Pool
}

func NewSubmissionRepo(pool *pgxpool.Pool) *SubmissionRepo {
	return &SubmissionRepo{pool: pool}
}

// HasRecentSubmission reports whether the IP submitted within the window.
func (r *SubmissionRepo) HasRecentSubmission(ctx context.Context, ip string, window time.Duration) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM submissions
			WHERE ip_address = $1
			  AND submitted_at > NOW() - make_interval(secs => $2)
		)`, ip, window.Seconds()).Scan(&exists)
	return exists, err
}

// Insert appends a pending submission and returns its ID.
func (r *SubmissionRepo) Insert(ctx context.Context, req model.SubmissionRequest, ip string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO submissions (name, position, ruling, link, x_link, status, ip_address)
		VALUES ($1, $2, $3, $4, $5, 'pending', $6)
		RETURNING id`,
		req.Name, req.Position, req.Ruling, req.Link, req.XLink, ip).Scan(&id)
	return id, err
}

// FindByID returns a single submission.
func (r *SubmissionRepo) FindByID(ctx context.Context, id int64) (*model.Submission, error) {
	var s model.Submission
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, position, ruling, link, COALESCE(x_link, ''), status, ip_address, submitted_at
		FROM submissions
		WHERE id = $1`, id).Scan(
		&s.ID, &s.Name, &s.Position, &s.Ruling, &s.Link, &s.XLink,
		&s.Status, &s.IPAddress, &s.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateStatus sets the moderation state of a submission.
func (r *SubmissionRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE submissions SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a submission row unconditionally, regardless of status.
func (r *SubmissionRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM submissions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Approve copies a pending submission into the judges table and marks it
// approved, as one transaction. Returns the new judge ID.
func (r *SubmissionRepo) Approve(ctx context.Context, id int64) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var s model.Submission
	err = tx.QueryRow(ctx, `
		SELECT name, position, ruling, link, COALESCE(x_link, '')
		FROM submissions
		WHERE id = $1`, id).Scan(&s.Name, &s.Position, &s.Ruling, &s.Link, &s.XLink)
	if err != nil {
		return 0, err
	}

	var judgeID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO judges (name, position, ruling, link, x_link, displayed, status)
		VALUES ($1, $2, $3, $4, $5, true, 'undecided')
		RETURNING id`,
		s.Name, s.Position, s.Ruling, s.Link, s.XLink).Scan(&judgeID)
	if err != nil {
		return 0, err
	}

	_, err = tx.Exec(ctx, `UPDATE submissions SET status = 'approved' WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}

	return judgeID, tx.Commit(ctx)
}

// ListPendingGrouped returns pending submissions grouped by their
// descriptive fields, oldest first, for the moderation queue.
func (r *SubmissionRepo) ListPendingGrouped(ctx context.Context) ([]model.PendingGroup, error) {
	query := `
		SELECT name, position, ruling, link, COALESCE(x_link, ''),
		       COUNT(*),
		       STRING_AGG(id::text, ','),
		       STRING_AGG(ip_address, ','),
		       MIN(submitted_at)
		FROM submissions
		WHERE status = 'pending'
		GROUP BY name, position, ruling, link, x_link
		ORDER BY MIN(submitted_at) ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []model.PendingGroup
	for rows.Next() {
		var g model.PendingGroup
		var ids, ips string
		err := rows.Scan(&g.Name, &g.Position, &g.Ruling, &g.Link, &g.XLink,
			&g.Count, &ids, &ips, &g.FirstSubmitted)
		if err != nil {
			return nil, err
		}
		for _, raw := range strings.Split(ids, ",") {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				continue
			}
			g.SubmissionIDs = append(g.SubmissionIDs, id)
		}
		g.IPAddresses = strings.Split(ips, ",")
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// StatusCounts tallies submissions per moderation state.
func (r *SubmissionRepo) StatusCounts(ctx context.Context) (*model.SubmissionStatsResponse, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT status, COUNT(*) FROM submissions GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats model.SubmissionStatsResponse
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		switch status {
		case model.SubmissionPending:
			stats.Pending = count
		case model.SubmissionApproved:
			stats.Approved = count
		case model.SubmissionRejected:
			stats.Rejected = count
		}
	}
	return &stats, rows.Err()
}
