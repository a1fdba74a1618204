package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"lakbay/internal/models/request_models"
)

// GeminiGeneratorClient implements GeneratorClientInterface on Google's
// Gemini models.
type GeminiGeneratorClient struct {
	client *genai.Client
	model  string
}

func NewGeminiGeneratorClient(apiKey, model string) (GeneratorClientInterface, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiGeneratorClient{client: client, model: model}, nil
}

func (c *GeminiGeneratorClient) GenerateItinerary(ctx context.Context, selection request_models.TripSelection) (string, error) {
	if selection.DurationDays < 1 || selection.DurationDays > 30 {
		return "", fmt.Errorf("bad duration %d", selection.DurationDays)
	}

	m := c.client.GenerativeModel(c.model)
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.1)
	m.SetTopP(0.5)
	m.SetTopK(20)
	m.SetMaxOutputTokens(8000)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := m.GenerateContent(ctxWithTimeout, genai.Text(buildItineraryPrompt(selection)))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: no content generated")
	}

	// Returned as-is even when the JSON MIME hint was ignored; the
	// recovery parser owns malformed output.
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}
