package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/flashfrancais/backend/config"
)

// geminiProvider wraps the Google GenAI SDK. System turns become the system
// instruction; user and assistant turns map to user/model contents.
type geminiProvider struct {
	apiKey string
	model  string
}

func newGeminiProvider(cfg *config.Config) *geminiProvider {
	return &geminiProvider{apiKey: cfg.GoogleAPIKey, model: cfg.GeminiChatModel}
}

func (p *geminiProvider) Chat(ctx context.Context, history []Message, message string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: p.apiKey})
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}

	var systemParts []string
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, msg := range history {
		switch msg.Role {
		case RoleSystem:
			systemParts = append(systemParts, msg.Content)
		case RoleAssistant:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	var genCfg *genai.GenerateContentConfig
	if len(systemParts) > 0 {
		genCfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(strings.Join(systemParts, "\n"), genai.RoleUser),
		}
	}

	result, err := client.Models.GenerateContent(ctx, p.model, contents, genCfg)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("gemini: empty completion")
	}
	return text, nil
}
