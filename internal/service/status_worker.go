package service

import (
	"context"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mikl0s/JAI/internal/repository"
)

// StatusWorker listens for PostgreSQL NOTIFY on the 'vote_changes' channel
// and batches status recomputation. A burst of votes against one judge
// inside the batch window results in a single recompute.
type StatusWorker struct {
	pool    *pgxpool.Pool
	votes   *repository.VoteRepo
	judges  *repository.JudgeRepo
	status  *StatusService
	cache   *CacheService
	batchMs time.Duration

	mu      sync.Mutex
	pending map[int64]struct{} // judge IDs waiting for recomputation
}

// NewStatusWorker creates a status recomputation worker.
func NewStatusWorker(pool *pgxpool.Pool, votes *repository.VoteRepo, judges *repository.JudgeRepo, status *StatusService, cache *CacheService) *StatusWorker {
	return &StatusWorker{
		pool:    pool,
		votes:   votes,
		judges:  judges,
		status:  status,
		cache:   cache,
		batchMs: 5 * time.Second,
		pending: make(map[int64]struct{}),
	}
}

// Start begins listening for vote_changes notifications and processing batches.
func (w *StatusWorker) Start(ctx context.Context) {
	log.Printf("status-worker: starting (batch window=%s)", w.batchMs)

	for {
		if err := w.listenLoop(ctx); err != nil {
			if ctx.Err() != nil {
				log.Println("status-worker: stopping (context cancelled)")
				return
			}
			log.Printf("status-worker: listen error, reconnecting in 5s: %v", err)
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				log.Println("status-worker: stopping (context cancelled)")
				return
			}
		}
	}
}

// listenLoop acquires a dedicated connection, LISTENs on vote_changes,
// and collects notified judge IDs into batched windows.
func (w *StatusWorker) listenLoop(ctx context.Context) error {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, "LISTEN vote_changes")
	if err != nil {
		return err
	}
	log.Println("status-worker: listening on vote_changes")

	flushCtx, flushCancel := context.WithCancel(ctx)
	defer flushCancel()
	go w.flushLoop(flushCtx)

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		judgeID, err := strconv.ParseInt(notification.Payload, 10, 64)
		if err != nil {
			continue
		}

		w.mu.Lock()
		w.pending[judgeID] = struct{}{}
		w.mu.Unlock()
	}
}

// flushLoop periodically drains the pending set and recomputes statuses.
func (w *StatusWorker) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(w.batchMs)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flush(ctx)
		case <-ctx.Done():
			// Final flush before exit
			w.flush(context.Background())
			return
		}
	}
}

// flush drains the pending set and recomputes each judge's cached status
// with the same derivation used on the read path.
func (w *StatusWorker) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}

	batch := w.pending
	w.pending = make(map[int64]struct{})
	w.mu.Unlock()

	recomputed := 0
	for judgeID := range batch {
		corrupt, notCorrupt, err := w.votes.CountsForJudge(ctx, judgeID)
		if err != nil {
			log.Printf("status-worker: count error for judge %d: %v", judgeID, err)
			continue
		}

		status := w.status.Derive(corrupt, notCorrupt)
		if err := w.judges.UpdateStatus(ctx, judgeID, status); err != nil {
			log.Printf("status-worker: update error for judge %d: %v", judgeID, err)
			continue
		}
		recomputed++
	}

	if recomputed > 0 {
		if w.cache != nil {
			if err := w.cache.InvalidateJudges(ctx); err != nil {
				log.Printf("status-worker: cache invalidate error: %v", err)
			}
		}
		log.Printf("status-worker: batch complete — %d judges recomputed (from %d notifications)",
			recomputed, len(batch))
	}
}
