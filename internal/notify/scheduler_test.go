package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type deliverRecorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *deliverRecorder) record(_, id, _, _ string, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, id)
}

func (r *deliverRecorder) ids() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

func TestScheduleReturnsUniqueHandles(t *testing.T) {
	s := NewScheduler(NewHub())
	defer s.Cancel(nil)

	a, err := s.Schedule("user-1", "T", "B", 0, time.Now().Add(time.Hour))
	require.NoError(t, err)
	b, err := s.Schedule("user-1", "T", "B", 1, time.Now().Add(time.Hour))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	s.Cancel([]string{a, b})
}

func TestCancelStopsPendingTimer(t *testing.T) {
	rec := &deliverRecorder{}
	s := NewScheduler(NewHub())
	s.SetOnDeliver(rec.record)

	id, err := s.Schedule("user-1", "T", "B", 0, time.Now().Add(30*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, s.Cancel([]string{id}))

	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, rec.ids())
}

func TestCancelUnknownHandleIsIdempotent(t *testing.T) {
	s := NewScheduler(NewHub())
	assert.NoError(t, s.Cancel([]string{"no-such-handle"}))
	assert.NoError(t, s.Cancel(nil))
}

func TestFireWhileBackgroundedSkipsDeliverCallback(t *testing.T) {
	rec := &deliverRecorder{}
	s := NewScheduler(NewHub()) // no socket registered for anyone
	s.SetOnDeliver(rec.record)

	_, err := s.Schedule("user-1", "T", "B", 0, time.Now().Add(10*time.Millisecond))
	require.NoError(t, err)

	time.Sleep(80 * time.Millisecond)
	// The push found no connection, so the foreground-delivery listener
	// must not run; resume reconciliation owns this notification now.
	assert.Empty(t, rec.ids())
}

func TestHubConnectedLifecycle(t *testing.T) {
	h := NewHub()
	assert.False(t, h.Connected("user-1"))
	assert.False(t, h.Push("user-1", map[string]string{"kind": "notification"}))
}
