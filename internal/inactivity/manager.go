package inactivity

import (
	"context"
	"sync"
)

// Manager owns one Monitor per authenticated session. It is the only
// public surface the host touches: Start on session mount, Reset on
// logout, plus the two event entry points the notification primitive and
// the hub feed.
type Manager struct {
	cfg  Config
	deps Deps

	mu       sync.Mutex
	monitors map[string]*Monitor
}

func NewManager(cfg Config, deps Deps) *Manager {
	return &Manager{
		cfg:      cfg,
		deps:     deps,
		monitors: make(map[string]*Monitor),
	}
}

// Start creates and starts the user's monitor. Calling it again within
// the same session is a no-op; this is the guard against overlapping
// mount effects initializing the monitor twice.
func (mg *Manager) Start(ctx context.Context, userID string) {
	mg.mu.Lock()
	m, ok := mg.monitors[userID]
	if !ok {
		m = newMonitor(userID, mg.cfg, mg.deps)
		mg.monitors[userID] = m
	}
	mg.mu.Unlock()

	m.Start(ctx)
}

// Reset tears down the user's monitor and forgets it. Idempotent: a
// second call, or a call for a user who never started, does nothing.
func (mg *Manager) Reset(userID string) {
	mg.mu.Lock()
	m := mg.monitors[userID]
	delete(mg.monitors, userID)
	mg.mu.Unlock()

	if m != nil {
		m.Reset()
	}
}

// HandleDelivered routes a foreground delivery to the user's monitor.
func (mg *Manager) HandleDelivered(userID, id, title, body string, batchIndex int) {
	if m := mg.monitor(userID); m != nil {
		m.HandleDelivered(title, body, batchIndex)
	}
}

// HandleResume routes an app-resume signal to the user's monitor.
func (mg *Manager) HandleResume(userID string) {
	if m := mg.monitor(userID); m != nil {
		m.HandleResume()
	}
}

// Monitor exposes a user's monitor for tests and the debug endpoint.
func (mg *Manager) Monitor(userID string) *Monitor {
	return mg.monitor(userID)
}

func (mg *Manager) monitor(userID string) *Monitor {
	mg.mu.Lock()
	defer mg.mu.Unlock()
	return mg.monitors[userID]
}
