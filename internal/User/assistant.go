package user

import (
	"net/http"

	"FitMind_V0.1/internal/utility"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ChatRequest is the body for POST /assistant/chat. History is the client's
// rendering of the recent conversation, passed through to the model verbatim.
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
	History string `json:"history,omitempty"`
}

// ChatHandler handles POST /assistant/chat
func ChatHandler(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Message is required"})
	}

	resp, err := assistantSvc.Chat(ctx, userID, req.Message, req.History)
	if err != nil {
		log.Error().Err(err).Msg("Assistant chat failed")
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "The assistant is unavailable right now. Please try again."})
	}

	return c.JSON(http.StatusOK, resp)
}
