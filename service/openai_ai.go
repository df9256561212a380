package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/tranvuminh/papermind-be/types"
)

// OpenAIService implements AIService against any OpenAI compatible
// endpoint, including local model servers.
type OpenAIService struct {
	client *openai.Client
	model  string
	apiKey string
}

func NewOpenAIService(baseURL, apiKey, model string) *OpenAIService {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIService{
		client: openai.NewClientWithConfig(config),
		model:  model,
		apiKey: apiKey,
	}
}

func (s *OpenAIService) Complete(ctx context.Context, prompt string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("%w: OPENAI_API_KEY is not set", types.ErrAuthenticationFailed)
	}

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		},
	)
	if err != nil {
		return "", translateOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response generated")
	}

	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonContentFilter {
		return "", fmt.Errorf("%w: response stopped by content filter", types.ErrGenerationRejected)
	}
	return choice.Message.Content, nil
}

func (s *OpenAIService) CompleteStream(ctx context.Context, prompt string, handler types.StreamHandler) error {
	if s.apiKey == "" {
		return fmt.Errorf("%w: OPENAI_API_KEY is not set", types.ErrAuthenticationFailed)
	}

	stream, err := s.client.CreateChatCompletionStream(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		},
	)
	if err != nil {
		return translateOpenAIError(err)
	}
	defer stream.Close()

	for {
		resp, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return translateOpenAIError(err)
		}
		if len(resp.Choices) == 0 {
			continue
		}
		handler(resp.Choices[0].Delta.Content)
	}
}

func translateOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case 401, 403:
			return fmt.Errorf("%w: %s", types.ErrAuthenticationFailed, apiErr.Message)
		case 400:
			if code, ok := apiErr.Code.(string); ok && code == "content_filter" {
				return fmt.Errorf("%w: %s", types.ErrGenerationRejected, apiErr.Message)
			}
			if strings.Contains(strings.ToLower(apiErr.Message), "safety") {
				return fmt.Errorf("%w: %s", types.ErrGenerationRejected, apiErr.Message)
			}
		}
	}
	return err
}
