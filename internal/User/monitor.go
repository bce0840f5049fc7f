package user

import (
	"context"
	"net/http"

	"FitMind_V0.1/internal/notify"
	"FitMind_V0.1/internal/utility"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

/* =================================================================================
							INACTIVITY MONITOR HANDLERS
================================================================================= */

// StartMonitorHandler handles POST /monitor/start. Mounting is idempotent:
// if the user's monitor already runs, this is a no-op.
func StartMonitorHandler(c echo.Context) error {
	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	// The monitor outlives this request; it stops on Reset or shutdown.
	monitors.Start(context.Background(), userID)

	return c.JSON(http.StatusOK, map[string]string{"status": "monitoring"})
}

// StopMonitorHandler handles POST /monitor/stop. Tears down the user's
// monitor and clears all scheduled check-ins.
func StopMonitorHandler(c echo.Context) error {
	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	monitors.Reset(userID)

	return c.JSON(http.StatusOK, map[string]string{"status": "stopped"})
}

/* =================================================================================
							NOTIFICATION SOCKET
================================================================================= */

// NotificationSocketHandler handles GET /notifications/ws. An open socket
// means the app is foregrounded; attaching (or re-attaching) counts as a
// resume and may replay the freshest missed check-in.
func NotificationSocketHandler(c echo.Context) error {
	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	conn, err := notify.Upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade notification socket")
		return err
	}

	hub.Register(userID, conn)
	defer hub.Unregister(userID, conn)

	// Drain control frames until the client goes away. The socket is
	// push-only; inbound payloads are ignored.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	return nil
}
