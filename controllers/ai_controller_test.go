package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashfrancais/backend/apperrors"
	"github.com/flashfrancais/backend/services/ai"
)

type stubChatter struct {
	reply   string
	err     error
	history []ai.Message
	message string
}

func (s *stubChatter) Chat(_ context.Context, history []ai.Message, message string) (string, error) {
	s.history = history
	s.message = message
	return s.reply, s.err
}

func chatApp(stub *stubChatter) *fiber.App {
	app := fiber.New()
	app.Post("/ai/chat", NewAIController(stub).Chat)
	return app
}

func postChat(t *testing.T, app *fiber.App, body interface{}) (int, map[string]string) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/ai/chat", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]string
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestAIChatForwardsHistoryAndMessage(t *testing.T) {
	stub := &stubChatter{reply: "Voici un plan de séquence."}
	app := chatApp(stub)

	status, out := postChat(t, app, fiber.Map{
		"message": "Propose un plan",
		"history": []ai.Message{
			{Role: ai.RoleUser, Content: "Bonjour"},
			{Role: ai.RoleAssistant, Content: "Bonjour, comment puis-je aider ?"},
		},
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Voici un plan de séquence.", out["response"])
	assert.Equal(t, "Propose un plan", stub.message)
	require.Len(t, stub.history, 2)
	assert.Equal(t, ai.RoleAssistant, stub.history[1].Role)
}

func TestAIChatMapsProviderErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperrors.ErrNotConfigured, fiber.StatusServiceUnavailable},
		{apperrors.ErrTimeout, fiber.StatusGatewayTimeout},
		{apperrors.ErrProvider, fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		app := chatApp(&stubChatter{err: tc.err})
		status, _ := postChat(t, app, fiber.Map{"message": "test"})
		assert.Equal(t, tc.status, status, "error %v", tc.err)
	}
}

func TestAIChatRequiresMessage(t *testing.T) {
	app := chatApp(&stubChatter{reply: "ignored"})
	status, _ := postChat(t, app, fiber.Map{"history": []ai.Message{}})
	assert.Equal(t, fiber.StatusBadRequest, status)
}
