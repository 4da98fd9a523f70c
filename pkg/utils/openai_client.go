package utils

import (
	"context"
	"errors"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"

	"tripflow/internal/models/request_models"
	"tripflow/internal/models/response_models"
)

// OpenAIClient implements AIClientInterface over the OpenAI chat API.
type OpenAIClient struct {
	client     *openai.Client
	candidates []string
}

func NewOpenAIClient(apiKey, preferredModel string) *OpenAIClient {
	return &OpenAIClient{
		client:     openai.NewClient(apiKey),
		candidates: ModelCandidates(preferredModel, openAIFallbackModels),
	}
}

func (c *OpenAIClient) GenerateTripItinerary(ctx context.Context, tc TripContext) (*response_models.GeneratedItinerary, error) {
	prompt := BuildTripPrompt(tc)
	raw, err := completeWithFallback(c.candidates, func(model string) (string, error) {
		return c.completeJSON(ctx, model, prompt)
	})
	if err != nil {
		return nil, err
	}
	return ParseTripItinerary(raw, tc.DaySpan())
}

func (c *OpenAIClient) GenerateDayItinerary(ctx context.Context, tc TripContext, dayNumber int) (*response_models.GeneratedDay, error) {
	prompt := BuildDayPrompt(tc, dayNumber)
	raw, err := completeWithFallback(c.candidates, func(model string) (string, error) {
		return c.completeJSON(ctx, model, prompt)
	})
	if err != nil {
		return nil, err
	}
	return ParseDayItinerary(raw, dayNumber)
}

func (c *OpenAIClient) completeJSON(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a trip-itinerary planner. Reply with exactly one JSON object and nothing else."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyReply
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) ChatReply(ctx context.Context, history []request_models.ChatTurn, message string) (string, error) {
	return completeWithFallback(c.candidates, func(model string) (string, error) {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       model,
			Temperature: 0.7,
			Messages:    chatMessages(history, message),
		})
		if err != nil {
			return "", fmt.Errorf("openai: %w", err)
		}
		if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
			return "", ErrEmptyReply
		}
		return resp.Choices[0].Message.Content, nil
	})
}

func (c *OpenAIClient) ChatReplyStream(ctx context.Context, history []request_models.ChatTurn, message string, chunks chan<- string) error {
	defer close(chunks)

	return streamWithFallback(c.candidates, func(model string) (bool, error) {
		stream, err := c.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
			Model:       model,
			Temperature: 0.7,
			Messages:    chatMessages(history, message),
		})
		if err != nil {
			return false, fmt.Errorf("openai: %w", err)
		}
		defer stream.Close()

		sent := false
		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				if !sent {
					return false, ErrEmptyReply
				}
				return true, nil
			}
			if err != nil {
				return sent, fmt.Errorf("openai: %w", err)
			}
			if len(resp.Choices) == 0 || resp.Choices[0].Delta.Content == "" {
				continue
			}
			sent = true
			select {
			case chunks <- resp.Choices[0].Delta.Content:
			case <-ctx.Done():
				return sent, ctx.Err()
			}
		}
	})
}

func chatMessages(history []request_models.ChatTurn, message string) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: "You are a friendly travel assistant helping a user refine a trip itinerary.",
	})
	for _, turn := range history {
		role := openai.ChatMessageRoleUser
		if turn.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: turn.Content})
	}
	return append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: message})
}

func (c *OpenAIClient) Close() error { return nil }
