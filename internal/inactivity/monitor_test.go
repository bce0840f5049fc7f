package inactivity

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* =================================================================================
							TEST FAKES
================================================================================= */

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{t: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type fakeSource struct {
	mu     sync.Mutex
	latest time.Time
	err    error
}

func (s *fakeSource) LatestActivity(context.Context, string) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.err
}

func (s *fakeSource) set(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = t
}

// blockingSource parks every LatestActivity call until release is closed,
// signalling entry on first so tests can interleave with an in-flight tick.
type blockingSource struct {
	mu      sync.Mutex
	calls   int
	entered chan struct{}
	release chan struct{}
}

func newBlockingSource() *blockingSource {
	return &blockingSource{entered: make(chan struct{}), release: make(chan struct{})}
}

func (s *blockingSource) LatestActivity(context.Context, string) (time.Time, error) {
	s.mu.Lock()
	s.calls++
	first := s.calls == 1
	s.mu.Unlock()
	if first {
		close(s.entered)
	}
	<-s.release
	return time.Time{}, nil
}

func (s *blockingSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type fakeBatches struct {
	mu    sync.Mutex
	batch []Message
	err   error
	calls int
}

func (b *fakeBatches) Generate(context.Context, string) ([]Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	return b.batch, b.err
}

type scheduledCall struct {
	id         string
	title      string
	body       string
	batchIndex int
	fireAt     time.Time
}

type fakeNotifier struct {
	mu        sync.Mutex
	seq       int
	active     map[string]scheduledCall
	scheduled  []scheduledCall
	cancelled  []string
	failAll    bool
	failCancel bool
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{active: make(map[string]scheduledCall)}
}

func (n *fakeNotifier) Schedule(_, title, body string, batchIndex int, fireAt time.Time) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failAll {
		return "", errors.New("registration refused")
	}
	n.seq++
	id := fmt.Sprintf("n-%d", n.seq)
	call := scheduledCall{id: id, title: title, body: body, batchIndex: batchIndex, fireAt: fireAt}
	n.active[id] = call
	n.scheduled = append(n.scheduled, call)
	return id, nil
}

func (n *fakeNotifier) Cancel(ids []string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failCancel {
		return errors.New("cancel rejected")
	}
	for _, id := range ids {
		delete(n.active, id)
		n.cancelled = append(n.cancelled, id)
	}
	return nil
}

func (n *fakeNotifier) activeCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.active)
}

type openRecorder struct {
	mu    sync.Mutex
	opens []Message
}

func (r *openRecorder) open(_, title, body string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opens = append(r.opens, Message{Title: title, Body: body})
}

func (r *openRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.opens)
}

/* =================================================================================
							HARNESS
================================================================================= */

func tenMessages() []Message {
	out := make([]Message, 10)
	for i := range out {
		out[i] = Message{Title: fmt.Sprintf("T%d", i), Body: fmt.Sprintf("B%d", i)}
	}
	return out
}

func testTimingConfig() Config {
	return Config{
		PollInterval:        time.Hour,
		Spacing:             time.Hour,
		Horizon:             24 * time.Hour,
		InactivityThreshold: time.Hour,
		AnchorTolerance:     time.Second,
	}
}

type harness struct {
	monitor  *Monitor
	clock    *fakeClock
	source   *fakeSource
	batches  *fakeBatches
	notifier *fakeNotifier
	opens    *openRecorder
}

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()
	clock := newFakeClock(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))
	source := &fakeSource{}
	batches := &fakeBatches{batch: tenMessages()}
	notifier := newFakeNotifier()
	opens := &openRecorder{}

	m := newMonitor("user-1", cfg, Deps{
		Source:   source,
		Batches:  batches,
		Notifier: notifier,
		Open:     opens.open,
		Now:      clock.Now,
	})
	return &harness{monitor: m, clock: clock, source: source, batches: batches, notifier: notifier, opens: opens}
}

/* =================================================================================
							SCHEDULING
================================================================================= */

func TestCheckSchedulesFullSeriesForNeverActiveUser(t *testing.T) {
	h := newHarness(t, testTimingConfig())

	// Zero latest means no activity was ever logged, which counts as
	// inactive immediately.
	h.monitor.Check(context.Background())

	snap := h.monitor.Snapshot()
	require.Len(t, snap, 24) // horizon / spacing

	now := h.clock.Now()
	for i, n := range snap {
		assert.Equal(t, now.Add(time.Duration(i+1)*time.Hour), n.FireAt)
		assert.Equal(t, i%10, n.BatchIndex)
	}
}

func TestCheckCountFloorsPartialSlot(t *testing.T) {
	cfg := testTimingConfig()
	cfg.Horizon = 2*time.Hour + 30*time.Minute

	h := newHarness(t, cfg)
	h.monitor.Check(context.Background())

	// 2.5h / 1h schedules 2 notifications; the partial slot is dropped.
	assert.Len(t, h.monitor.Snapshot(), 2)
}

func TestCheckAnchorsRescheduleAtActivityInstant(t *testing.T) {
	h := newHarness(t, testTimingConfig())
	h.monitor.Check(context.Background())
	require.Len(t, h.monitor.Snapshot(), 24)
	firstIDs := make(map[string]bool)
	for _, n := range h.monitor.Snapshot() {
		firstIDs[n.ID] = true
	}

	// The user logs a workout 30 minutes after the series went up.
	activity := h.clock.Now().Add(30 * time.Minute)
	h.source.set(activity)
	h.clock.Advance(time.Hour)
	h.monitor.Check(context.Background())

	snap := h.monitor.Snapshot()
	require.Len(t, snap, 24)
	for i, n := range snap {
		assert.False(t, firstIDs[n.ID], "old registration survived the reschedule")
		// The new series counts from the activity instant, not the tick.
		assert.Equal(t, activity.Add(time.Duration(i+1)*time.Hour), n.FireAt)
	}

	// Every old registration was cancelled at the primitive too.
	assert.Equal(t, 24, h.notifier.activeCount())
}

func TestCheckIgnoresActivityWithinTolerance(t *testing.T) {
	h := newHarness(t, testTimingConfig())
	activity := h.clock.Now().Add(-2 * time.Hour)
	h.source.set(activity)

	h.monitor.Check(context.Background())
	first := h.monitor.Snapshot()
	require.NotEmpty(t, first)

	// Same timestamp again, with sub-tolerance jitter: no reschedule.
	h.source.set(activity.Add(500 * time.Millisecond))
	h.monitor.Check(context.Background())

	assert.Equal(t, first, h.monitor.Snapshot())
	assert.Empty(t, h.notifier.cancelled)
}

func TestCheckAbortsTickOnSourceError(t *testing.T) {
	h := newHarness(t, testTimingConfig())
	h.source.err = errors.New("database down")

	h.monitor.Check(context.Background())

	assert.Empty(t, h.monitor.Snapshot())
	assert.Zero(t, h.batches.calls)
}

func TestCheckContinuesPastSingleRegistrationFailure(t *testing.T) {
	h := newHarness(t, testTimingConfig())
	h.notifier.failAll = true

	h.monitor.Check(context.Background())

	// Every registration failed; the mirror stays empty but nothing panics
	// and the next tick can retry.
	assert.Empty(t, h.monitor.Snapshot())
}

func TestCheckSkipsTickWhilePreviousStillRunning(t *testing.T) {
	src := newBlockingSource()
	notifier := newFakeNotifier()
	clock := newFakeClock(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))
	m := newMonitor("user-1", testTimingConfig(), Deps{
		Source:   src,
		Batches:  &fakeBatches{batch: tenMessages()},
		Notifier: notifier,
		Now:      clock.Now,
	})

	done := make(chan struct{})
	go func() {
		m.Check(context.Background())
		close(done)
	}()
	<-src.entered

	// The first tick is parked inside its activity fetch; this overlapping
	// tick must return immediately without a second fetch.
	m.Check(context.Background())
	assert.Equal(t, 1, src.callCount())

	close(src.release)
	<-done
	assert.Len(t, m.Snapshot(), 24)
}

/* =================================================================================
							BATCH HANDLING
================================================================================= */

func TestBatchFallsBackToStaticMessages(t *testing.T) {
	h := newHarness(t, testTimingConfig())
	h.batches.err = errors.New("model unreachable")
	h.batches.batch = nil

	h.monitor.Check(context.Background())

	snap := h.monitor.Snapshot()
	require.NotEmpty(t, snap)

	fallback := FallbackBatch()
	h.notifier.mu.Lock()
	defer h.notifier.mu.Unlock()
	assert.Equal(t, fallback[0].Title, h.notifier.scheduled[0].title)
	assert.Equal(t, fallback[1].Title, h.notifier.scheduled[1].title)
}

func TestBatchGeneratedOncePerEpisode(t *testing.T) {
	h := newHarness(t, testTimingConfig())

	h.monitor.Check(context.Background())
	require.Equal(t, 1, h.batches.calls)

	// A reschedule within the same episode reuses the cached batch.
	h.source.set(h.clock.Now().Add(-time.Minute))
	h.clock.Advance(time.Hour)
	h.monitor.Check(context.Background())
	assert.Equal(t, 1, h.batches.calls)

	// Reset ends the episode; the next schedule generates fresh.
	h.monitor.Reset()
	h.source.set(time.Time{})
	h.monitor.Check(context.Background())
	assert.Equal(t, 2, h.batches.calls)
}

/* =================================================================================
							QUIET HOURS
================================================================================= */

func TestQuietHoursShiftLandsOnNextMorning(t *testing.T) {
	cfg := testTimingConfig()
	cfg.Horizon = 4 * time.Hour
	cfg.QuietHoursEnabled = true
	cfg.QuietStartHour = 22
	cfg.QuietEndHour = 8

	h := newHarness(t, cfg)
	// Anchor at 20:00 so the series straddles the quiet boundary.
	h.clock.mu.Lock()
	h.clock.t = time.Date(2026, 3, 2, 20, 0, 0, 0, time.UTC)
	h.clock.mu.Unlock()

	h.monitor.Check(context.Background())

	snap := h.monitor.Snapshot()
	require.Len(t, snap, 4)

	nextMorning := time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 2, 21, 0, 0, 0, time.UTC), snap[0].FireAt)
	assert.Equal(t, nextMorning, snap[1].FireAt) // 22:00 shifted
	assert.Equal(t, nextMorning, snap[2].FireAt) // 23:00 shifted
	// Midnight is past the quiet start boundary check (hour 0), so it is
	// registered as-is.
	assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), snap[3].FireAt)
}

/* =================================================================================
							DELIVERY WATERMARK
================================================================================= */

func TestHandleDeliveredAdvancesWatermark(t *testing.T) {
	h := newHarness(t, testTimingConfig())
	h.monitor.Check(context.Background())

	require.Equal(t, -1, h.monitor.LastFiredIndex())

	h.monitor.HandleDelivered("T2", "B2", 2)
	assert.Equal(t, 2, h.monitor.LastFiredIndex())
	assert.Equal(t, 1, h.opens.count())
}

func TestHandleDeliveredDiscardsDuplicates(t *testing.T) {
	h := newHarness(t, testTimingConfig())
	h.monitor.Check(context.Background())

	h.monitor.HandleDelivered("T3", "B3", 3)
	require.Equal(t, 1, h.opens.count())

	// At or below the watermark is a duplicate: no open, no regression.
	h.monitor.HandleDelivered("T3", "B3", 3)
	h.monitor.HandleDelivered("T1", "B1", 1)
	assert.Equal(t, 1, h.opens.count())
	assert.Equal(t, 3, h.monitor.LastFiredIndex())

	h.monitor.HandleDelivered("T4", "B4", 4)
	assert.Equal(t, 2, h.opens.count())
	assert.Equal(t, 4, h.monitor.LastFiredIndex())
}

/* =================================================================================
							RESUME RECONCILIATION
================================================================================= */

func TestHandleResumeReplaysOnlyFreshestMissed(t *testing.T) {
	h := newHarness(t, testTimingConfig())
	h.monitor.Check(context.Background())

	// Three notifications have fired while the app was backgrounded.
	h.clock.Advance(3*time.Hour + time.Minute)
	h.monitor.HandleResume()

	require.Equal(t, 1, h.opens.count())
	h.opens.mu.Lock()
	replayed := h.opens.opens[0]
	h.opens.mu.Unlock()

	// Indices cycle 0,1,2,... so the freshest missed entry is index 2.
	assert.Equal(t, "T2", replayed.Title)
	assert.Equal(t, 2, h.monitor.LastFiredIndex())
}

func TestHandleResumeNoEligibleEntries(t *testing.T) {
	h := newHarness(t, testTimingConfig())
	h.monitor.Check(context.Background())

	// Nothing has fired yet.
	h.monitor.HandleResume()
	assert.Zero(t, h.opens.count())
	assert.Equal(t, -1, h.monitor.LastFiredIndex())
}

func TestHandleResumeRespectsWatermark(t *testing.T) {
	h := newHarness(t, testTimingConfig())
	h.monitor.Check(context.Background())

	h.clock.Advance(2*time.Hour + time.Minute)
	h.monitor.HandleDelivered("T1", "B1", 1)
	require.Equal(t, 1, h.opens.count())

	// Both elapsed entries (indices 0 and 1) sit at or below the
	// watermark; resume replays nothing.
	h.monitor.HandleResume()
	assert.Equal(t, 1, h.opens.count())
}

func TestHandleResumePicksByFireTimeNotIndex(t *testing.T) {
	cfg := testTimingConfig()
	cfg.Horizon = 15 * time.Hour // indices cycle 0..9 then 0..4

	h := newHarness(t, cfg)
	h.monitor.Check(context.Background())

	// Past a full index cycle plus one repeat: the chronologically
	// freshest missed entry carries index 0 again.
	h.clock.Advance(11*time.Hour + time.Minute)
	h.monitor.HandleResume()
	require.Equal(t, 1, h.opens.count())

	h.opens.mu.Lock()
	replayed := h.opens.opens[0]
	h.opens.mu.Unlock()
	assert.Equal(t, "T0", replayed.Title)
	assert.Equal(t, 0, h.monitor.LastFiredIndex())
}

/* =================================================================================
							RESET
================================================================================= */

func TestResetClearsEverything(t *testing.T) {
	h := newHarness(t, testTimingConfig())
	h.monitor.Check(context.Background())
	h.monitor.HandleDelivered("T0", "B0", 0)
	require.NotEmpty(t, h.monitor.Snapshot())

	h.monitor.Reset()

	assert.Empty(t, h.monitor.Snapshot())
	assert.Equal(t, -1, h.monitor.LastFiredIndex())
	assert.Zero(t, h.notifier.activeCount())
}

func TestResetDuringInFlightCheckDiscardsTick(t *testing.T) {
	src := newBlockingSource()
	notifier := newFakeNotifier()
	clock := newFakeClock(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))
	m := newMonitor("user-1", testTimingConfig(), Deps{
		Source:   src,
		Batches:  &fakeBatches{batch: tenMessages()},
		Notifier: notifier,
		Now:      clock.Now,
	})

	done := make(chan struct{})
	go func() {
		m.Check(context.Background())
		close(done)
	}()
	<-src.entered

	// The user signs out while the tick is parked inside its activity
	// fetch. Once the fetch returns, the cleared state must stay cleared:
	// no mirror entries, no live registrations at the primitive.
	m.Reset()
	close(src.release)
	<-done

	assert.Empty(t, m.Snapshot())
	assert.Zero(t, notifier.activeCount())
	assert.Equal(t, -1, m.LastFiredIndex())
}

func TestResetClearsMirrorWhenPrimitiveCancelFails(t *testing.T) {
	h := newHarness(t, testTimingConfig())
	h.monitor.Check(context.Background())
	require.NotEmpty(t, h.monitor.Snapshot())

	// Cancellation at the primitive is best effort; a refusal must not
	// leave phantom mirror entries behind.
	h.notifier.failCancel = true
	h.monitor.Reset()

	assert.Empty(t, h.monitor.Snapshot())
	assert.Equal(t, -1, h.monitor.LastFiredIndex())
}

func TestRescheduleClearsOldSeriesWhenCancelFails(t *testing.T) {
	h := newHarness(t, testTimingConfig())
	h.monitor.Check(context.Background())
	first := h.monitor.Snapshot()
	require.Len(t, first, 24)

	h.notifier.failCancel = true
	h.source.set(h.clock.Now().Add(30 * time.Minute))
	h.clock.Advance(time.Hour)
	h.monitor.Check(context.Background())

	// The failed bulk cancel never blocks the reschedule: the mirror holds
	// only the fresh series.
	snap := h.monitor.Snapshot()
	require.Len(t, snap, 24)
	assert.NotEqual(t, first[0].ID, snap[0].ID)
}

func TestResetIsIdempotent(t *testing.T) {
	h := newHarness(t, testTimingConfig())

	// Reset with nothing scheduled, twice, must not panic or cancel.
	h.monitor.Reset()
	h.monitor.Reset()
	assert.Empty(t, h.notifier.cancelled)
}

/* =================================================================================
							MANAGER
================================================================================= */

func TestManagerStartIsIdempotentPerSession(t *testing.T) {
	mgr := NewManager(testTimingConfig(), Deps{
		Source:   &fakeSource{latest: time.Now()},
		Batches:  &fakeBatches{batch: tenMessages()},
		Notifier: newFakeNotifier(),
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mgr.Start(ctx, "user-1")
	first := mgr.Monitor("user-1")
	require.NotNil(t, first)

	// Overlapping mount effects must not create a second monitor.
	mgr.Start(ctx, "user-1")
	assert.Same(t, first, mgr.Monitor("user-1"))

	mgr.Reset("user-1")
	assert.Nil(t, mgr.Monitor("user-1"))

	// Reset for an unknown user is a no-op.
	mgr.Reset("user-2")
}

/* =================================================================================
							CONFIG
================================================================================= */

func TestConfigFromEnvSelectsProfile(t *testing.T) {
	t.Setenv("INACTIVITY_TEST_MODE", "true")
	cfg := ConfigFromEnv()
	assert.Equal(t, 30*time.Second, cfg.PollInterval)
	assert.Equal(t, 2*time.Minute, cfg.Spacing)
	assert.Equal(t, 30*time.Minute, cfg.Horizon)
	assert.Equal(t, 36*time.Second, cfg.InactivityThreshold)

	t.Setenv("INACTIVITY_TEST_MODE", "")
	cfg = ConfigFromEnv()
	assert.Equal(t, 5*time.Hour, cfg.PollInterval)
	assert.Equal(t, 30*24*time.Hour, cfg.Horizon)
}

func TestFallbackBatchIsACopy(t *testing.T) {
	a := FallbackBatch()
	require.Len(t, a, 10)
	a[0].Title = "mutated"
	assert.NotEqual(t, "mutated", FallbackBatch()[0].Title)
}
