package controllers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/flashfrancais/backend/services/ai"
	"github.com/flashfrancais/backend/utils"
)

// Chatter is what the AI controller needs from the gateway. Narrowing it to
// an interface lets tests swap in a stub provider.
type Chatter interface {
	Chat(ctx context.Context, history []ai.Message, message string) (string, error)
}

type AIController struct {
	Gateway Chatter
}

func NewAIController(gateway Chatter) *AIController {
	return &AIController{Gateway: gateway}
}

type chatRequest struct {
	Message string       `json:"message"`
	History []ai.Message `json:"history"`
}

type chatResponse struct {
	Response string `json:"response"`
}

func (ac *AIController) Chat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}
	if strings.TrimSpace(req.Message) == "" {
		return utils.BadRequest(c, "message is required")
	}

	reply, err := ac.Gateway.Chat(c.Context(), req.History, req.Message)
	if err != nil {
		return utils.FromError(c, err)
	}
	return c.JSON(chatResponse{Response: reply})
}
