// Package ratelimit implements a fixed-window request counter backed by
// the store. Counting is a transactional check-then-increment, so two
// concurrent callers cannot both take the last slot in a window.
package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"clinic-directory/internal/models"
)

// Decision is the outcome of one consumption attempt.
type Decision struct {
	Allowed   bool      `json:"allowed"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"resetAt"`
}

// WindowStart floors now to the nearest multiple of windowSec seconds
// since epoch.
func WindowStart(now time.Time, windowSec int) time.Time {
	if windowSec < 1 {
		windowSec = 1
	}
	sec := now.Unix()
	return time.Unix(sec-sec%int64(windowSec), 0).UTC()
}

// Limiter consumes rate-limit slots against the counter store.
type Limiter struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Limiter {
	return &Limiter{db: db}
}

// tryIncrement atomically bumps the counter when it is below limit.
// Returns the new count and whether a row was incremented.
func tryIncrement(tx *gorm.DB, key, action string, windowStart time.Time, limit int) (int, bool, error) {
	res := tx.Model(&models.RateLimitCounter{}).
		Where("key = ? AND action = ? AND window_start = ? AND count < ?", key, action, windowStart, limit).
		Update("count", gorm.Expr("count + 1"))
	if res.Error != nil {
		return 0, false, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, false, nil
	}

	var counter models.RateLimitCounter
	err := tx.Where("key = ? AND action = ? AND window_start = ?", key, action, windowStart).
		First(&counter).Error
	if err != nil {
		return 0, false, err
	}
	return counter.Count, true, nil
}

// createOrIncrement inserts the first counter row of a window with
// count 1. The create runs in a savepoint: on postgres a unique
// violation aborts the surrounding transaction, and the fallback
// increment must still be able to run. The fallback handles a
// concurrent caller having created the row first.
func createOrIncrement(tx *gorm.DB, key, action string, windowStart time.Time, limit int) (int, bool, error) {
	counter := models.RateLimitCounter{
		ID:          uuid.New(),
		Key:         key,
		Action:      action,
		WindowStart: windowStart,
		Count:       1,
	}
	createErr := tx.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&counter).Error
	})
	if createErr == nil {
		return 1, true, nil
	}
	return tryIncrement(tx, key, action, windowStart, limit)
}

// Consume takes one slot for (key, action) in the window containing
// now. A denied call does not increment the counter. The first call in
// a window creates the counter row with count 1.
func (l *Limiter) Consume(ctx context.Context, key, action string, limit, windowSec int, now time.Time) (Decision, error) {
	windowStart := WindowStart(now, windowSec)
	resetAt := windowStart.Add(time.Duration(windowSec) * time.Second)

	var decision Decision
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		count, incremented, err := tryIncrement(tx, key, action, windowStart, limit)
		if err != nil {
			return err
		}
		if incremented {
			decision = Decision{Allowed: true, Remaining: maxInt(0, limit-count), ResetAt: resetAt}
			return nil
		}

		var existing models.RateLimitCounter
		err = tx.Where("key = ? AND action = ? AND window_start = ?", key, action, windowStart).
			First(&existing).Error
		if err == nil {
			// Row exists at or above the limit: deny without touching it.
			decision = Decision{Allowed: false, Remaining: 0, ResetAt: resetAt}
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		count, incremented, err = createOrIncrement(tx, key, action, windowStart, limit)
		if err != nil {
			return err
		}
		if !incremented {
			decision = Decision{Allowed: false, Remaining: 0, ResetAt: resetAt}
			return nil
		}
		decision = Decision{Allowed: true, Remaining: maxInt(0, limit-count), ResetAt: resetAt}
		return nil
	})
	if err != nil {
		return Decision{}, err
	}

	return decision, nil
}

// PurgeStale deletes counters whose window started before the cutoff.
// Stale rows are harmless but accumulate; a cron job calls this.
func (l *Limiter) PurgeStale(ctx context.Context, before time.Time) (int64, error) {
	res := l.db.WithContext(ctx).
		Where("window_start < ?", before.UTC()).
		Delete(&models.RateLimitCounter{})
	return res.RowsAffected, res.Error
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
