package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// NotificationPayload is what the mobile client receives on its socket.
type NotificationPayload struct {
	Kind       string `json:"kind"` // "notification" or "conversation_open"
	ID         string `json:"id,omitempty"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	BatchIndex int    `json:"batch_index"`
}

// DeliverFunc is invoked when a scheduled notification fires while the
// user is foregrounded (socket connected).
type DeliverFunc func(userID, id, title, body string, batchIndex int)

// Scheduler is the OS-notification stand-in: it registers future fire
// times against opaque uuid handles and delivers over the hub. It cannot
// enumerate what it has scheduled; callers keep their own bookkeeping.
type Scheduler struct {
	hub *Hub

	mu     sync.Mutex
	timers map[string]*time.Timer

	onDeliver DeliverFunc
}

func NewScheduler(hub *Hub) *Scheduler {
	return &Scheduler{
		hub:    hub,
		timers: make(map[string]*time.Timer),
	}
}

// SetOnDeliver installs the foreground-delivery listener. Must be called
// during wiring, before anything is scheduled.
func (s *Scheduler) SetOnDeliver(fn DeliverFunc) {
	s.onDeliver = fn
}

// Schedule registers one notification and returns its opaque handle.
func (s *Scheduler) Schedule(userID, title, body string, batchIndex int, fireAt time.Time) (string, error) {
	id := uuid.New().String()

	delay := time.Until(fireAt)
	if delay < 0 {
		delay = 0
	}

	s.mu.Lock()
	s.timers[id] = time.AfterFunc(delay, func() {
		s.fire(userID, id, title, body, batchIndex)
	})
	s.mu.Unlock()

	return id, nil
}

// Cancel stops the timers for the given handles. Unknown handles are
// ignored so cancellation stays idempotent.
func (s *Scheduler) Cancel(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if t, ok := s.timers[id]; ok {
			t.Stop()
			delete(s.timers, id)
		}
	}
	return nil
}

func (s *Scheduler) fire(userID, id, title, body string, batchIndex int) {
	s.mu.Lock()
	delete(s.timers, id)
	s.mu.Unlock()

	delivered := s.hub.Push(userID, NotificationPayload{
		Kind:       "notification",
		ID:         id,
		Title:      title,
		Body:       body,
		BatchIndex: batchIndex,
	})
	if !delivered {
		// Backgrounded: the monitor's resume reconciliation replays it
		// from its own bookkeeping when the socket comes back.
		log.Debug().Str("user_id", userID).Int("batch_index", batchIndex).Msg("notification fired while backgrounded")
		return
	}

	if s.onDeliver != nil {
		s.onDeliver(userID, id, title, body, batchIndex)
	}
}
