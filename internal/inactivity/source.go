package inactivity

import (
	"context"
	"sync"
	"time"

	"FitMind_V0.1/internal/database"
	"github.com/jackc/pgx/v5/pgtype"
	"golang.org/x/sync/errgroup"
)

// Message is one check-in notification body.
type Message struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ActivitySource yields the most recent activity instant across every log
// source, or the zero time when the user has never logged anything.
type ActivitySource interface {
	LatestActivity(ctx context.Context, userID string) (time.Time, error)
}

// BatchSource produces a fresh batch of check-in messages. Callers fall
// back to the static batch on error.
type BatchSource interface {
	Generate(ctx context.Context, userID string) ([]Message, error)
}

// BatchFunc adapts a function to the BatchSource interface.
type BatchFunc func(ctx context.Context, userID string) ([]Message, error)

func (f BatchFunc) Generate(ctx context.Context, userID string) ([]Message, error) {
	return f(ctx, userID)
}

// Notifier is the local-notification primitive the scheduler drives. The
// returned handle is the only way to cancel a registration; the primitive
// cannot enumerate what it holds.
type Notifier interface {
	Schedule(userID, title, body string, batchIndex int, fireAt time.Time) (string, error)
	Cancel(ids []string) error
}

// OpenerFunc seeds an in-app conversational turn from a notification.
type OpenerFunc func(userID, title, body string)

// LogStore aggregates the four activity-log sources. Each source stores
// its timestamp under a different name (createdAt, time, timestamp); the
// aggregation normalizes them before taking the max.
type LogStore struct {
	q *database.Queries
}

func NewLogStore(q *database.Queries) *LogStore {
	return &LogStore{q: q}
}

// LatestActivity fetches all four collections concurrently and returns
// the global maximum timestamp. Any single fetch failure fails the whole
// call: the tick is aborted and retried at the next poll rather than
// acting on a partial view.
func (s *LogStore) LatestActivity(ctx context.Context, userID string) (time.Time, error) {
	g, grpCtx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	var latest time.Time

	note := func(ts pgtype.Timestamptz) {
		if !ts.Valid {
			return
		}
		mu.Lock()
		if ts.Time.After(latest) {
			latest = ts.Time
		}
		mu.Unlock()
	}

	g.Go(func() error {
		workouts, err := s.q.ListWorkoutResults(grpCtx, userID)
		if err != nil {
			return err
		}
		for _, w := range workouts {
			note(w.CreatedAt)
		}
		return nil
	})

	g.Go(func() error {
		water, err := s.q.ListWaterEntries(grpCtx, userID)
		if err != nil {
			return err
		}
		for _, w := range water {
			note(w.Time)
		}
		return nil
	})

	g.Go(func() error {
		meals, err := s.q.ListNutritionEntries(grpCtx, userID)
		if err != nil {
			return err
		}
		for _, m := range meals {
			note(m.Timestamp)
		}
		return nil
	})

	g.Go(func() error {
		biometrics, err := s.q.ListBiometricEntries(grpCtx, userID)
		if err != nil {
			return err
		}
		for _, b := range biometrics {
			note(b.Timestamp)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return time.Time{}, err
	}
	return latest, nil
}
