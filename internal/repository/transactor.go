package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"civic-forum-api/internal/database"
)

// ErrConflict is returned when a transaction kept losing write races and ran out of attempts
var ErrConflict = errors.New("transaction conflict")

const defaultTxAttempts = 3

type txKey struct{}

// Transactor runs a unit of work atomically. Repositories called with the
// context passed to fn join the transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type gormTransactor struct {
	db          *gorm.DB
	maxAttempts int
}

// NewTransactor creates a Transactor that retries retryable failures up to three times
func NewTransactor(db *gorm.DB) Transactor {
	return &gormTransactor{db: db, maxAttempts: defaultTxAttempts}
}

// WithinTransaction runs fn in a transaction. A nested call joins the outer transaction.
// The whole of fn is re-run when the database reports a serialization failure,
// a deadlock or a unique violation, so fn must not have side effects outside the database.
func (t *gormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	var err error
	for attempt := 1; attempt <= t.maxAttempts; attempt++ {
		err = t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(context.WithValue(ctx, txKey{}, tx))
		})
		if err == nil || !database.IsRetryable(err) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return fmt.Errorf("%w: %d attempts: %v", ErrConflict, t.maxAttempts, err)
}

// dbFromContext returns the transaction carried by ctx, or db
func dbFromContext(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// forUpdate adds a row lock where the dialect supports one.
// SQLite serializes writers at the database level instead.
func forUpdate(db *gorm.DB) *gorm.DB {
	if database.SupportsRowLocks(db) {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

// chunkIDs splits ids into slices small enough for one IN list
func chunkIDs[T any](ids []T, size int) [][]T {
	chunks := make([][]T, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
