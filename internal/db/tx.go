package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gadme-be/internal/apperr"
	"gadme-be/internal/logger"

	"github.com/cenkalti/backoff/v4"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
	codeUniqueViolation      = "23505"
)

// newBackOff is swapped in tests to avoid sleeping between attempts.
var newBackOff = func() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 20 * time.Millisecond
	b.MaxInterval = 250 * time.Millisecond
	b.MaxElapsedTime = 2 * time.Second
	return b
}

// retryError marks a failure the caller knows is safe to retry even though
// Postgres does not report it as a conflict.
type retryError struct {
	err error
}

func (e *retryError) Error() string { return e.err.Error() }
func (e *retryError) Unwrap() error { return e.err }

// Retry marks err so RunInTx restarts the transaction instead of failing.
func Retry(err error) error {
	return &retryError{err: err}
}

// IsRetryable reports whether err is a Postgres serialization, deadlock or
// lock-timeout failure, or was marked with Retry. Either way the whole
// transaction can be run again from the start.
func IsRetryable(err error) bool {
	var marked *retryError
	if errors.As(err, &marked) {
		return true
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch string(pqErr.Code) {
	case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
		return true
	}
	return false
}

// IsUniqueViolation reports whether err is a unique violation of the named
// constraint. An empty constraint matches any unique violation.
func IsUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != codeUniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

// RunInTx runs fn inside a transaction, committing on success and rolling
// back on any error. Retryable failures restart fn up to maxRetries times;
// when they keep failing the result is apperr.ErrRetryable.
func RunInTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, maxRetries uint64, fn func(tx *sql.Tx) error) error {
	log := logger.FromCtx(ctx).With(zap.String("layer", "db"), zap.String("method", "RunInTx"))

	attempt := 0
	op := func() error {
		attempt++
		err := runOnce(ctx, db, opts, fn)
		if err == nil {
			return nil
		}
		if IsRetryable(err) {
			log.Warn("transaction conflict, retrying", zap.Int("attempt", attempt), zap.Error(err))
			return err
		}
		return backoff.Permanent(err)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(newBackOff(), maxRetries), ctx)
	err := backoff.Retry(op, b)
	if err != nil && IsRetryable(err) {
		log.Error("transaction retries exhausted", zap.Int("attempts", attempt), zap.Error(err))
		return apperr.ErrRetryable.WithCause(err)
	}
	return err
}

func runOnce(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
