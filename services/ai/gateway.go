// Package ai is a stateless pass-through to the configured chat-completion
// provider. It keeps no conversation state; callers send the full history
// with every request.
package ai

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/flashfrancais/backend/apperrors"
	"github.com/flashfrancais/backend/config"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is one prior conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider produces a single assistant reply for a message plus its history.
type Provider interface {
	Chat(ctx context.Context, history []Message, message string) (string, error)
}

// Gateway selects a provider by configuration on every call, so credential
// problems surface as ErrNotConfigured at request time instead of crashing
// startup.
type Gateway struct {
	cfg *config.Config
	log *zap.SugaredLogger
}

func NewGateway(cfg *config.Config, log *zap.SugaredLogger) *Gateway {
	return &Gateway{cfg: cfg, log: log}
}

func (g *Gateway) provider() (Provider, error) {
	switch g.cfg.AIProvider {
	case "openai":
		if g.cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("%w: OpenAI API key is missing", apperrors.ErrNotConfigured)
		}
		return newOpenAIProvider(g.cfg), nil
	case "gemini":
		if g.cfg.GoogleAPIKey == "" {
			return nil, fmt.Errorf("%w: Google API key is missing", apperrors.ErrNotConfigured)
		}
		return newGeminiProvider(g.cfg), nil
	default:
		return nil, fmt.Errorf("%w: unsupported AI provider %q", apperrors.ErrNotConfigured, g.cfg.AIProvider)
	}
}

// Chat forwards the message and history to the configured provider under a
// bounded deadline.
func (g *Gateway) Chat(ctx context.Context, history []Message, message string) (string, error) {
	p, err := g.provider()
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.AITimeout)
	defer cancel()

	g.log.Infow("AI chat request", "provider", g.cfg.AIProvider, "history_len", len(history))
	reply, err := p.Chat(ctx, history, message)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: provider call exceeded %s", apperrors.ErrTimeout, g.cfg.AITimeout)
		}
		if errors.Is(err, apperrors.ErrNotConfigured) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", apperrors.ErrProvider, err)
	}
	return reply, nil
}
