package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"tripflow/internal/models/request_models"
	"tripflow/internal/models/response_models"
)

// GeminiClient implements AIClientInterface over Google's Gemini models.
type GeminiClient struct {
	client     *genai.Client
	candidates []string
}

func NewGeminiClient(apiKey, preferredModel string) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client:     client,
		candidates: ModelCandidates(preferredModel, geminiFallbackModels),
	}, nil
}

func (c *GeminiClient) GenerateTripItinerary(ctx context.Context, tc TripContext) (*response_models.GeneratedItinerary, error) {
	prompt := BuildTripPrompt(tc)
	raw, err := completeWithFallback(c.candidates, func(model string) (string, error) {
		return c.generateJSON(ctx, model, prompt)
	})
	if err != nil {
		return nil, err
	}
	return ParseTripItinerary(raw, tc.DaySpan())
}

func (c *GeminiClient) GenerateDayItinerary(ctx context.Context, tc TripContext, dayNumber int) (*response_models.GeneratedDay, error) {
	prompt := BuildDayPrompt(tc, dayNumber)
	raw, err := completeWithFallback(c.candidates, func(model string) (string, error) {
		return c.generateJSON(ctx, model, prompt)
	})
	if err != nil {
		return nil, err
	}
	return ParseDayItinerary(raw, dayNumber)
}

func (c *GeminiClient) generateJSON(ctx context.Context, model, prompt string) (string, error) {
	m := c.client.GenerativeModel(model)
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.2)
	m.SetTopP(0.5)
	m.SetTopK(20)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	return firstPartText(resp)
}

func (c *GeminiClient) ChatReply(ctx context.Context, history []request_models.ChatTurn, message string) (string, error) {
	return completeWithFallback(c.candidates, func(model string) (string, error) {
		cs := c.chatSession(model, history)
		resp, err := cs.SendMessage(ctx, genai.Text(message))
		if err != nil {
			return "", fmt.Errorf("gemini: %w", err)
		}
		return firstPartText(resp)
	})
}

func (c *GeminiClient) ChatReplyStream(ctx context.Context, history []request_models.ChatTurn, message string, chunks chan<- string) error {
	defer close(chunks)

	return streamWithFallback(c.candidates, func(model string) (bool, error) {
		cs := c.chatSession(model, history)
		iter := cs.SendMessageStream(ctx, genai.Text(message))

		sent := false
		for {
			resp, err := iter.Next()
			if err == iterator.Done {
				if !sent {
					return false, ErrEmptyReply
				}
				return true, nil
			}
			if err != nil {
				return sent, fmt.Errorf("gemini: %w", err)
			}
			text, terr := firstPartText(resp)
			if terr != nil {
				continue
			}
			sent = true
			select {
			case chunks <- text:
			case <-ctx.Done():
				return sent, ctx.Err()
			}
		}
	})
}

func (c *GeminiClient) chatSession(model string, history []request_models.ChatTurn) *genai.ChatSession {
	m := c.client.GenerativeModel(model)
	m.SetTemperature(0.7)

	cs := m.StartChat()
	for _, turn := range history {
		role := "user"
		if turn.Role == "assistant" {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(turn.Content)},
		})
	}
	return cs
}

func firstPartText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyReply
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", ErrEmptyReply
	}
	return b.String(), nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}
