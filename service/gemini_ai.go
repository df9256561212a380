package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/tranvuminh/papermind-be/types"
)

// GeminiService implements AIService on the Google generative AI API.
// The client is created lazily so a missing credential surfaces on the
// first call, not at startup.
type GeminiService struct {
	apiKey    string
	modelName string

	mu     sync.Mutex
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiService(apiKey, modelName string) *GeminiService {
	return &GeminiService{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

func (s *GeminiService) ensureModel(ctx context.Context) (*genai.GenerativeModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.apiKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY is not set", types.ErrAuthenticationFailed)
	}
	if s.model == nil {
		client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
		if err != nil {
			return nil, translateGeminiError(err)
		}
		s.client = client
		s.model = client.GenerativeModel(s.modelName)
	}
	return s.model, nil
}

func (s *GeminiService) Complete(ctx context.Context, prompt string) (string, error) {
	model, err := s.ensureModel(ctx)
	if err != nil {
		return "", err
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", translateGeminiError(err)
	}
	if len(resp.Candidates) == 0 {
		return "", errors.New("no response generated")
	}

	var content strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				content.WriteString(string(text))
			}
		}
	}
	return content.String(), nil
}

func (s *GeminiService) CompleteStream(ctx context.Context, prompt string, handler types.StreamHandler) error {
	model, err := s.ensureModel(ctx)
	if err != nil {
		return err
	}

	iter := model.GenerateContentStream(ctx, genai.Text(prompt))
	for {
		resp, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return translateGeminiError(err)
		}
		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				if text, ok := part.(genai.Text); ok {
					handler(string(text))
				}
			}
		}
	}
}

func translateGeminiError(err error) error {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return fmt.Errorf("%w: %v", types.ErrGenerationRejected, err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401, 403:
			return fmt.Errorf("%w: %s", types.ErrAuthenticationFailed, apiErr.Message)
		case 400:
			if strings.Contains(strings.ToLower(apiErr.Message), "api key") {
				return fmt.Errorf("%w: %s", types.ErrAuthenticationFailed, apiErr.Message)
			}
		}
	}
	return err
}
