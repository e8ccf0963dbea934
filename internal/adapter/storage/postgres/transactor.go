package postgres

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"cryptoledger/internal/core/domain"
	"cryptoledger/internal/core/ports"
	"cryptoledger/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// PostgreSQL error codes signalling that the serializable transaction lost
// a conflict and can be replayed.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// Transactor implements ports.Transactor: every ledger mutation runs through
// RunSerializable. On a serialization or deadlock abort the unit of work is
// replayed from scratch after a randomized backoff, up to MaxRetries
// attempts. The store's serializable isolation is the sole concurrency
// control; no application locks exist anywhere above this.
type Transactor struct {
	pool        Pool
	maxRetries  int
	backoffBase time.Duration
	log         zerolog.Logger
}

// NewTransactor creates a Transactor wrapping the connection pool.
func NewTransactor(pool Pool, maxRetries int, backoffBase time.Duration, log zerolog.Logger) *Transactor {
	if maxRetries <= 0 {
		maxRetries = 5
	}
	if backoffBase <= 0 {
		backoffBase = 20 * time.Millisecond
	}
	return &Transactor{
		pool:        pool,
		maxRetries:  maxRetries,
		backoffBase: backoffBase,
		log:         log,
	}
}

// RunSerializable executes fn inside a serializable transaction. fn is
// replayed verbatim on conflict, so it must be free of side effects outside
// the store. The ChangeSet is fresh per attempt and returned only after the
// commit succeeds, making it safe to use as the post-commit notification
// trigger set.
func (t *Transactor) RunSerializable(ctx context.Context, fn ports.UnitOfWork) (*domain.ChangeSet, error) {
	var lastErr error

	for attempt := 0; attempt < t.maxRetries; attempt++ {
		if attempt > 0 {
			if err := t.wait(ctx, attempt); err != nil {
				return nil, err
			}
		}

		changes, err := t.runOnce(ctx, fn)
		if err == nil {
			return changes, nil
		}
		if !isConflict(err) {
			return nil, err
		}

		lastErr = err
		t.log.Debug().
			Err(err).
			Int("attempt", attempt+1).
			Int("max_retries", t.maxRetries).
			Msg("serialization conflict, replaying transaction")
	}

	return nil, apperror.ErrConflictUnresolved(t.maxRetries, lastErr)
}

func (t *Transactor) runOnce(ctx context.Context, fn ports.UnitOfWork) (*domain.ChangeSet, error) {
	tx, err := t.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	changes := &domain.ChangeSet{}
	if err := fn(ctx, tx, changes); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return changes, nil
}

// wait sleeps for an exponentially growing, jittered interval or until the
// context is cancelled.
func (t *Transactor) wait(ctx context.Context, attempt int) error {
	backoff := t.backoffBase << (attempt - 1)
	jitter := time.Duration(rand.Int63n(int64(t.backoffBase)))

	select {
	case <-time.After(backoff + jitter):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// isConflict reports whether err is a serialization failure or deadlock
// abort anywhere in its chain.
func isConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected
}
