package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type VoteRepo struct {
	pool *pgxpool.Pool
}

func NewVoteRepo(pool *pgxpool.Pool) *VoteRepo {
	return &VoteRepo{pool: pool}
}

// HasRecentVote reports whether (ip, judge) voted within the window.
// Used for the early cooldown check so a rate-limited caller fails before
// proof-of-work is evaluated.
func (r *VoteRepo) HasRecentVote(ctx context.Context, ip string, judgeID int64, window time.Duration) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM votes
			WHERE ip_address = $1 AND judge_id = $2
			  AND created_at > NOW() - make_interval(secs => $3)
		)`, ip, judgeID, window.Seconds()).Scan(&exists)
	return exists, err
}

// InsertVote appends a vote using an atomic conditional insert: the row is
// written only if no vote from the same (ip, judge) exists inside the
// cooldown window, closing the check-then-act race between the early
// cooldown check and the write. Returns false when the condition blocked
// the insert. bypassCooldown disables the condition for whitelisted IPs.
// A vote_changes notification is sent in the same transaction so the
// status worker picks up the judge.
func (r *VoteRepo) InsertVote(ctx context.Context, judgeID int64, ip, voteType, fingerprint string, cooldown time.Duration, bypassCooldown bool) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		INSERT INTO votes (judge_id, ip_address, vote_type, browser_fingerprint)
		SELECT $1, $2, $3, $4
		WHERE $6 OR NOT EXISTS (
			SELECT 1 FROM votes
			WHERE ip_address = $2 AND judge_id = $1
			  AND created_at > NOW() - make_interval(secs => $5)
		)`,
		judgeID, ip, voteType, fingerprint, cooldown.Seconds(), bypassCooldown)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	_, err = tx.Exec(ctx, `SELECT pg_notify('vote_changes', $1::text)`, judgeID)
	if err != nil {
		return false, err
	}

	return true, tx.Commit(ctx)
}

// CountsForJudge returns the corrupt / not_corrupt tallies for one judge.
func (r *VoteRepo) CountsForJudge(ctx context.Context, judgeID int64) (corrupt, notCorrupt int, err error) {
	err = r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE vote_type = 'corrupt'),
			COUNT(*) FILTER (WHERE vote_type = 'not_corrupt')
		FROM votes
		WHERE judge_id = $1`, judgeID).Scan(&corrupt, &notCorrupt)
	return corrupt, notCorrupt, err
}
