package utils

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"lakbay/internal/models/request_models"
)

type OpenAIGeneratorClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIGeneratorClient(apiKey, model string) GeneratorClientInterface {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIGeneratorClient{client: openai.NewClient(apiKey), model: model}
}

func (c *OpenAIGeneratorClient) GenerateItinerary(ctx context.Context, selection request_models.TripSelection) (string, error) {
	if selection.DurationDays < 1 || selection.DurationDays > 30 {
		return "", fmt.Errorf("bad duration %d", selection.DurationDays)
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a travel planner. Respond with JSON only."},
			{Role: openai.ChatMessageRoleUser, Content: buildItineraryPrompt(selection)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no content generated")
	}
	return resp.Choices[0].Message.Content, nil
}
