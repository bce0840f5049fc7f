package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	user "FitMind_V0.1/internal/User"
	"FitMind_V0.1/internal/assistant"
	"FitMind_V0.1/internal/auth"
	"FitMind_V0.1/internal/database"
	"FitMind_V0.1/internal/geminiservice"
	"FitMind_V0.1/internal/inactivity"
	"FitMind_V0.1/internal/notify"
	"FitMind_V0.1/internal/server"
	"FitMind_V0.1/internal/system"
)

func gracefulShutdown(apiServer *http.Server, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	log.Println("shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	log.Println("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	dbService := database.NewService()
	defer dbService.Close()

	queries := dbService.Queries()

	// Assistant pipeline: one Gemini client shared by chat, workout
	// generation and check-in batches.
	llm := geminiservice.NewClient()
	assistantSvc := assistant.NewService(llm, queries)

	// Notification plumbing: the hub tracks foregrounded clients, the
	// scheduler is the local-notification primitive the monitors drive.
	hub := notify.NewHub()
	scheduler := notify.NewScheduler(hub)

	monitors := inactivity.NewManager(inactivity.ConfigFromEnv(), inactivity.Deps{
		Source: inactivity.NewLogStore(queries),
		Batches: inactivity.BatchFunc(func(ctx context.Context, userID string) ([]inactivity.Message, error) {
			batch, err := assistantSvc.GenerateCheckInBatch(ctx, userID)
			if err != nil {
				return nil, err
			}
			messages := make([]inactivity.Message, len(batch))
			for i, m := range batch {
				messages[i] = inactivity.Message{Title: m.Title, Body: m.Body}
			}
			return messages, nil
		}),
		Notifier: scheduler,
		Open: func(userID, title, body string) {
			hub.Push(userID, map[string]string{
				"kind":  "conversation_open",
				"title": title,
				"body":  body,
			})
		},
	})

	// A delivered notification advances the watermark; a reconnecting
	// socket counts as an app resume.
	scheduler.SetOnDeliver(monitors.HandleDelivered)
	hub.SetOnAttach(monitors.HandleResume)

	if err := auth.InitAuth(database.Dbpool, monitors.Reset); err != nil {
		log.Fatalf("Fatal error: could not initialize authentication: %v", err)
	}
	user.InitUser(database.Dbpool, assistantSvc, monitors, hub)
	system.InitSystem(database.Dbpool)

	server := server.NewServer()

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(server, done)

	err := server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		panic(fmt.Sprintf("http server error: %s", err))
	}

	// Wait for the graceful shutdown to complete
	<-done
	log.Println("Graceful shutdown complete.")
}
