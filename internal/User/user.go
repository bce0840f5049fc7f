/*
Package user provides the implementation for user-centric features:
activity logging (workouts, water, nutrition, biometrics), profile
management, the assistant chat endpoint, and the notification socket.
*/
package user

import (
	"FitMind_V0.1/internal/assistant"
	"FitMind_V0.1/internal/database"
	"FitMind_V0.1/internal/inactivity"
	"FitMind_V0.1/internal/notify"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	queries      *database.Queries
	assistantSvc *assistant.Service
	monitors     *inactivity.Manager
	hub          *notify.Hub
)

// InitUser wires the package-level dependencies. Must be called once at
// startup before routes are registered.
func InitUser(dbpool *pgxpool.Pool, svc *assistant.Service, mgr *inactivity.Manager, h *notify.Hub) {
	queries = database.New(dbpool)
	assistantSvc = svc
	monitors = mgr
	hub = h
}
