package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/aichat/internal/common"
	"github.com/dmitrijs2005/aichat/internal/server/models"
	"google.golang.org/genai"
)

// GeminiEngine generates replies via the Google Gemini API.
type GeminiEngine struct {
	client *genai.Client
	model  string
}

// NewGeminiEngine creates the Gemini client. The API key and model come from
// configuration; nothing here is process-global, so multiple engines with
// different credentials can coexist.
func NewGeminiEngine(ctx context.Context, apiKey, model string) (*GeminiEngine, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiEngine{client: client, model: model}, nil
}

// Generate sends the history plus the new input and returns the reply text.
// Any transport or API failure is reported as common.ErrorEngine.
func (e *GeminiEngine) Generate(ctx context.Context, history []models.Message, directive, input string) (string, error) {

	contents := toContents(history)
	contents = append(contents, &genai.Content{
		Parts: []*genai.Part{{Text: input}},
		Role:  "user",
	})

	if directive == "" {
		directive = DefaultPersona
	}
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(directive, genai.RoleUser),
	}

	result, err := e.client.Models.GenerateContent(ctx, e.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorEngine, err)
	}

	reply := extractText(result)
	if reply == "" {
		return "", fmt.Errorf("%w: empty response", common.ErrorEngine)
	}

	return reply, nil
}

// toContents converts stored messages to the Gemini wire format. Gemini names
// the assistant role "model".
func toContents(history []models.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)

	for _, msg := range history {
		var role string
		switch msg.Role {
		case models.RoleUser:
			role = "user"
		case models.RoleAssistant:
			role = "model"
		default:
			continue
		}

		contents = append(contents, &genai.Content{
			Parts: []*genai.Part{{Text: msg.Content}},
			Role:  role,
		})
	}

	return contents
}

// extractText concatenates the text parts of the first candidate.
func extractText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 {
		return ""
	}
	candidate := result.Candidates[0]
	if candidate.Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
