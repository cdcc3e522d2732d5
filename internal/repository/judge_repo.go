package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mikl0s/JAI/internal/model"
)

type JudgeRepo struct {
	pool *pgxpool.Pool
}

func NewJudgeRepo(pool *pgxpool.Pool) *JudgeRepo {
	return &JudgeRepo{pool: pool}
}

// FindDisplayed returns a judge by ID if it is currently visible.
func (r *JudgeRepo) FindDisplayed(ctx context.Context, id int64) (*model.Judge, error) {
	query := `
		SELECT id, name, position, ruling, link, COALESCE(x_link, ''), displayed, status, created_at
		FROM judges
		WHERE id = $1 AND displayed = true`

	var j model.Judge
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&j.ID, &j.Name, &j.Position, &j.Ruling, &j.Link, &j.XLink,
		&j.Displayed, &j.Status, &j.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// ListWithVotes returns judges joined with their vote aggregates.
// displayedOnly restricts to publicly visible judges; usaOnly counts only
// votes whose IP geolocates to the US (votes with no geo row are dropped).
func (r *JudgeRepo) ListWithVotes(ctx context.Context, displayedOnly, usaOnly bool) ([]model.JudgeWithVotes, error) {
	query := `
		SELECT j.id, j.name, j.position, j.ruling, j.link, COALESCE(j.x_link, ''),
		       j.displayed, j.status, j.created_at,
		       COALESCE(SUM(CASE WHEN v.vote_type = 'corrupt' THEN 1 ELSE 0 END), 0) AS corrupt_votes,
		       COALESCE(SUM(CASE WHEN v.vote_type = 'not_corrupt' THEN 1 ELSE 0 END), 0) AS not_corrupt_votes
		FROM judges j
		LEFT JOIN votes v ON j.id = v.judge_id
		  AND (NOT $2 OR EXISTS (
		        SELECT 1 FROM ip_geolocation geo
		        WHERE geo.ip_address = v.ip_address AND geo.country_code2 = 'US'))
		WHERE (NOT $1 OR j.displayed = true)
		GROUP BY j.id
		ORDER BY j.id`

	rows, err := r.pool.Query(ctx, query, displayedOnly, usaOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var judges []model.JudgeWithVotes
	for rows.Next() {
		var j model.JudgeWithVotes
		err := rows.Scan(
			&j.ID, &j.Name, &j.Position, &j.Ruling, &j.Link, &j.XLink,
			&j.Displayed, &j.Status, &j.CreatedAt,
			&j.CorruptVotes, &j.NotCorruptVotes,
		)
		if err != nil {
			return nil, err
		}
		judges = append(judges, j)
	}
	return judges, rows.Err()
}

// Insert adds a new judge, visible by default, status undecided.
func (r *JudgeRepo) Insert(ctx context.Context, req model.JudgeRequest) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO judges (name, position, ruling, link, x_link, displayed, status)
		VALUES ($1, $2, $3, $4, $5, true, 'undecided')
		RETURNING id`,
		req.Name, req.Position, req.Ruling, req.Link, req.XLink).Scan(&id)
	return id, err
}

// Update rewrites a judge's descriptive fields.
func (r *JudgeRepo) Update(ctx context.Context, id int64, req model.JudgeRequest) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE judges
		SET name = $1, position = $2, ruling = $3, link = $4, x_link = $5
		WHERE id = $6`,
		req.Name, req.Position, req.Ruling, req.Link, req.XLink, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleDisplayed flips the visibility flag and returns the new state.
func (r *JudgeRepo) ToggleDisplayed(ctx context.Context, id int64) (bool, error) {
	var displayed bool
	err := r.pool.QueryRow(ctx, `
		UPDATE judges SET displayed = NOT displayed
		WHERE id = $1
		RETURNING displayed`, id).Scan(&displayed)
	return displayed, err
}

// UpdateStatus persists a derived status onto the judge row.
// The column is a cache; votes remain the source of truth.
func (r *JudgeRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	_, err := r.pool.Exec(ctx, `UPDATE judges SET status = $1 WHERE id = $2`, status, id)
	return err
}
