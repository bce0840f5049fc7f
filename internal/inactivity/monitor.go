/*
Package inactivity implements the notification scheduling core: a
per-user monitor that watches the activity logs, decides when the user
has gone quiet, keeps a rolling series of future check-in notifications
registered against the notification primitive, and replays the freshest
missed notification when the app comes back to the foreground.
*/
package inactivity

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ScheduledNotification mirrors one registration in the notification
// primitive. The primitive is authoritative for "will fire"; this mirror
// is authoritative for reasoning about past fire times, which the
// primitive cannot enumerate.
type ScheduledNotification struct {
	ID         string
	FireAt     time.Time
	BatchIndex int
}

// Deps are the collaborators a monitor drives. Now is injectable for tests
// and defaults to time.Now.
type Deps struct {
	Source   ActivitySource
	Batches  BatchSource
	Notifier Notifier
	Open     OpenerFunc
	Now      func() time.Time
}

// Monitor owns the scheduling state for one user session. All fields are
// guarded by mu; the tick loop, the foreground-delivery listener, and the
// resume listener may run on different goroutines.
type Monitor struct {
	userID string
	cfg    Config
	deps   Deps

	mu       sync.Mutex
	started  bool
	stop     context.CancelFunc
	inFlight bool
	gen      int

	scheduled      []ScheduledNotification
	batch          []Message
	lastFiredIndex int
	lastAnchor     time.Time
}

func newMonitor(userID string, cfg Config, deps Deps) *Monitor {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Monitor{
		userID:         userID,
		cfg:            cfg,
		deps:           deps,
		lastFiredIndex: -1,
	}
}

// Start arms the poll loop: one immediate check, then one per
// PollInterval. A second Start within the same session is a no-op.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}
	m.started = true
	ctx, m.stop = context.WithCancel(ctx)
	m.mu.Unlock()

	go m.run(ctx)
}

func (m *Monitor) run(ctx context.Context) {
	m.Check(ctx)

	ticker := time.NewTicker(m.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

// Check runs one inactivity evaluation. If a previous check is still in
// flight (a slow network call outlasting the poll interval), the tick is
// skipped rather than run concurrently. A Reset that lands while the tick
// is between its locked sections bumps the generation counter, and the
// tick discards its results instead of resurrecting the cleared schedule.
func (m *Monitor) Check(ctx context.Context) {
	m.mu.Lock()
	if m.inFlight {
		m.mu.Unlock()
		log.Debug().Str("user_id", m.userID).Msg("inactivity check still in flight, skipping tick")
		return
	}
	m.inFlight = true
	gen := m.gen
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight = false
		m.mu.Unlock()
	}()

	latest, err := m.deps.Source.LatestActivity(ctx, m.userID)
	if err != nil {
		// Tick aborted, no state mutated; the next poll retries.
		log.Warn().Err(err).Str("user_id", m.userID).Msg("activity fetch failed, aborting tick")
		return
	}

	now := m.deps.Now()

	m.mu.Lock()
	needInitial := len(m.scheduled) == 0 && m.inactiveAt(latest, now)
	needReschedule := !needInitial && latest.After(m.lastAnchor.Add(m.cfg.AnchorTolerance))
	m.mu.Unlock()

	if !needInitial && !needReschedule {
		return
	}

	// The batch fetch can call out to the model; do it outside the lock.
	batch := m.ensureBatch(ctx, gen)

	anchor := now
	if needReschedule {
		// Fresh activity pushes the inactivity clock forward: the new
		// series counts from the activity instant, not from this tick.
		anchor = latest
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		// Reset ran while the fetch was in flight; the teardown wins and
		// this tick's results are thrown away.
		return
	}
	if needReschedule {
		m.cancelAllLocked()
	}
	m.scheduleSeriesLocked(anchor, batch)
	m.lastAnchor = latest

	log.Info().
		Str("user_id", m.userID).
		Time("anchor", anchor).
		Int("scheduled", len(m.scheduled)).
		Bool("reschedule", needReschedule).
		Msg("notification series scheduled")
}

func (m *Monitor) inactiveAt(latest, now time.Time) bool {
	if latest.IsZero() {
		// No activity ever logged counts as inactive.
		return true
	}
	return now.Sub(latest) >= m.cfg.InactivityThreshold
}

// ensureBatch returns the cached batch for this inactivity episode,
// generating one if the cache is empty. The cache is only invalidated by
// Reset, never refreshed mid-episode; that keeps generation to one model
// call per episode.
func (m *Monitor) ensureBatch(ctx context.Context, gen int) []Message {
	m.mu.Lock()
	cached := m.batch
	m.mu.Unlock()
	if cached != nil {
		return cached
	}

	msgs, err := m.deps.Batches.Generate(ctx, m.userID)
	if err != nil || len(msgs) == 0 {
		log.Warn().Err(err).Str("user_id", m.userID).Msg("batch generation failed, using fallback messages")
		msgs = FallbackBatch()
	}

	m.mu.Lock()
	// A Reset during generation ended the episode; do not cache a batch
	// that belongs to the previous one.
	if m.gen == gen {
		m.batch = msgs
	}
	m.mu.Unlock()
	return msgs
}

// scheduleSeriesLocked registers one notification per Spacing from the
// anchor until the horizon, cycling through the batch round-robin. Every
// registration and its mirror entry are appended together so the two
// views cannot drift. A single registration failure is logged and the
// loop continues; a partial schedule beats none.
func (m *Monitor) scheduleSeriesLocked(anchor time.Time, batch []Message) {
	count := int(m.cfg.Horizon / m.cfg.Spacing)
	for i := 1; i <= count; i++ {
		fireAt := m.adjustForQuietHours(anchor.Add(time.Duration(i) * m.cfg.Spacing))
		idx := (i - 1) % len(batch)
		msg := batch[idx]

		id, err := m.deps.Notifier.Schedule(m.userID, msg.Title, msg.Body, idx, fireAt)
		if err != nil {
			log.Error().Err(err).Str("user_id", m.userID).Int("batch_index", idx).Msg("failed to schedule notification")
			continue
		}
		m.scheduled = append(m.scheduled, ScheduledNotification{ID: id, FireAt: fireAt, BatchIndex: idx})
	}
}

// adjustForQuietHours pushes fire times landing at or after the quiet
// start to the quiet end the next day. The shift happens before
// registration, so the registered time is the one resume reconciliation
// compares against.
func (m *Monitor) adjustForQuietHours(t time.Time) time.Time {
	if !m.cfg.QuietHoursEnabled || t.Hour() < m.cfg.QuietStartHour {
		return t
	}
	next := t.AddDate(0, 0, 1)
	return time.Date(next.Year(), next.Month(), next.Day(), m.cfg.QuietEndHour, 0, 0, 0, t.Location())
}

// cancelAllLocked empties the schedule. Cancellation at the primitive is
// best effort: the mirror is cleared unconditionally so a partial cancel
// can never leave phantom entries that block future replay logic.
func (m *Monitor) cancelAllLocked() {
	if len(m.scheduled) == 0 {
		return
	}
	ids := make([]string, 0, len(m.scheduled))
	for _, n := range m.scheduled {
		ids = append(ids, n.ID)
	}
	m.scheduled = nil

	if err := m.deps.Notifier.Cancel(ids); err != nil {
		log.Warn().Err(err).Str("user_id", m.userID).Msg("best-effort cancel failed; local schedule cleared anyway")
	}
}

// HandleDelivered is the foreground-delivery listener. Indices at or
// below the watermark are duplicates (already opened live or via resume
// replay) and are discarded.
func (m *Monitor) HandleDelivered(title, body string, batchIndex int) {
	m.mu.Lock()
	if batchIndex <= m.lastFiredIndex {
		m.mu.Unlock()
		log.Debug().Str("user_id", m.userID).Int("batch_index", batchIndex).Msg("duplicate notification discarded")
		return
	}
	m.lastFiredIndex = batchIndex
	open := m.deps.Open
	m.mu.Unlock()

	if open != nil {
		open(m.userID, title, body)
	}
}

// HandleResume runs the reconciliation pass on app resume: among mirror
// entries whose fire time has passed and whose index is above the
// watermark, only the one with the latest fire time is replayed. Older
// missed notifications are dropped so the user is not flooded.
func (m *Monitor) HandleResume() {
	now := m.deps.Now()

	m.mu.Lock()
	var best *ScheduledNotification
	for i := range m.scheduled {
		n := &m.scheduled[i]
		if n.FireAt.After(now) || n.BatchIndex <= m.lastFiredIndex {
			continue
		}
		if best == nil || n.FireAt.After(best.FireAt) {
			best = n
		}
	}
	if best == nil || best.BatchIndex >= len(m.batch) {
		m.mu.Unlock()
		return
	}
	m.lastFiredIndex = best.BatchIndex
	msg := m.batch[best.BatchIndex]
	open := m.deps.Open
	m.mu.Unlock()

	log.Info().Str("user_id", m.userID).Int("batch_index", best.BatchIndex).Msg("replaying missed notification on resume")
	if open != nil {
		open(m.userID, msg.Title, msg.Body)
	}
}

// Reset tears the monitor down: stop the poll loop, cancel every
// registered notification in bulk, and return every field to its initial
// value. Safe to call repeatedly and when nothing is scheduled.
func (m *Monitor) Reset() {
	m.mu.Lock()
	if m.stop != nil {
		m.stop()
		m.stop = nil
	}

	ids := make([]string, 0, len(m.scheduled))
	for _, n := range m.scheduled {
		ids = append(ids, n.ID)
	}
	m.scheduled = nil
	m.batch = nil
	m.lastFiredIndex = -1
	m.lastAnchor = time.Time{}
	m.started = false
	m.gen++
	notifier := m.deps.Notifier
	m.mu.Unlock()

	if len(ids) > 0 {
		if err := notifier.Cancel(ids); err != nil {
			log.Warn().Err(err).Str("user_id", m.userID).Msg("best-effort cancel failed during reset")
		}
	}
}

// Snapshot returns a copy of the current schedule, for tests and the
// debug endpoint.
func (m *Monitor) Snapshot() []ScheduledNotification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ScheduledNotification, len(m.scheduled))
	copy(out, m.scheduled)
	return out
}

// LastFiredIndex returns the current watermark.
func (m *Monitor) LastFiredIndex() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastFiredIndex
}
