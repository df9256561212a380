package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	customsearch "google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// WebSearchService fetches web snippets via the Google Custom Search
// API to enrich chat context when the caller asks for it.
type WebSearchService struct {
	apiKey   string
	engineID string
	logger   *zap.Logger
}

// NewWebSearchService returns nil when no credential is configured so
// callers can treat web search as an optional collaborator.
func NewWebSearchService(apiKey, engineID string, logger *zap.Logger) *WebSearchService {
	if apiKey == "" || engineID == "" {
		return nil
	}
	return &WebSearchService{
		apiKey:   apiKey,
		engineID: engineID,
		logger:   logger,
	}
}

// Snippets runs the query and returns up to limit result snippets,
// each prefixed with its source title.
func (s *WebSearchService) Snippets(ctx context.Context, query string, limit int) ([]string, error) {
	searchService, err := customsearch.NewService(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create search service: %v", err)
	}

	call := searchService.Cse.List().Context(ctx)
	call.Q(query)
	call.Cx(s.engineID)
	call.Num(int64(limit))

	result, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to execute search: %v", err)
	}

	snippets := make([]string, 0, len(result.Items))
	for _, item := range result.Items {
		snippets = append(snippets, fmt.Sprintf("%s: %s", item.Title, item.Snippet))
	}
	s.logger.Debug("web search", zap.String("query", query), zap.Int("results", len(snippets)))
	return snippets, nil
}
