package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/tranvuminh/papermind-be/types"
)

const webSearchSnippetLimit = 3

// ChatService runs the question-answering and summarize flows over the
// active session: assemble a bounded prompt from the session's chunks,
// send it through the gateway, and hand the response back untouched.
type ChatService struct {
	sessions *SessionService
	prompts  *PromptService
	ai       AIService
	search   *WebSearchService // nil when no search credential is configured
	logger   *zap.Logger
}

func NewChatService(
	sessions *SessionService,
	prompts *PromptService,
	ai AIService,
	search *WebSearchService,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		sessions: sessions,
		prompts:  prompts,
		ai:       ai,
		search:   search,
		logger:   logger,
	}
}

// Ask answers a question about the loaded paper. Web snippets are
// mixed into the context when requested and available; a failed search
// degrades to document-only context and never fails the chat.
func (s *ChatService) Ask(ctx context.Context, req types.ChatRequest) (*types.ChatResponse, error) {
	session, err := s.sessions.Get(req.DocumentID)
	if err != nil {
		return nil, err
	}

	snippets := s.webSnippets(ctx, req)
	prompt, err := s.prompts.Assemble(PromptRequest{
		Task:        TaskChat,
		Question:    req.Question,
		WebSnippets: snippets,
	}, session.Chunks)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("assembled chat prompt",
		zap.Int("chars", len(prompt.Text)),
		zap.Int("tokens", prompt.Tokens),
		zap.Bool("truncated", prompt.Truncated),
	)

	answer, err := s.ai.Complete(ctx, prompt.Text)
	if err != nil {
		return nil, err
	}

	sources := []string{session.Document.FileName}
	if len(snippets) > 0 {
		sources = append(sources, "web search")
	}
	return &types.ChatResponse{
		Answer:    answer,
		Truncated: prompt.Truncated,
		Sources:   sources,
	}, nil
}

// AskStream is Ask with incremental delivery of the model output.
func (s *ChatService) AskStream(ctx context.Context, req types.ChatRequest, handler types.StreamHandler) error {
	session, err := s.sessions.Get(req.DocumentID)
	if err != nil {
		return err
	}

	prompt, err := s.prompts.Assemble(PromptRequest{
		Task:        TaskChat,
		Question:    req.Question,
		WebSnippets: s.webSnippets(ctx, req),
	}, session.Chunks)
	if err != nil {
		return err
	}
	return s.ai.CompleteStream(ctx, prompt.Text, handler)
}

// Summarize returns the paper summary, generating and caching it on
// first call. The cache lives until the next upload replaces the
// session.
func (s *ChatService) Summarize(ctx context.Context) (*types.SummaryResponse, error) {
	session, err := s.sessions.Current()
	if err != nil {
		return nil, err
	}

	if summary, ok := s.sessions.CachedSummary(); ok {
		return &types.SummaryResponse{
			FileName: session.Document.FileName,
			Summary:  summary,
			Cached:   true,
		}, nil
	}

	prompt, err := s.prompts.Assemble(PromptRequest{Task: TaskSummarize}, session.Chunks)
	if err != nil {
		return nil, err
	}

	summary, err := s.ai.Complete(ctx, prompt.Text)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.CacheSummary(session.Document.ID, summary); err != nil {
		return nil, err
	}

	return &types.SummaryResponse{
		FileName:  session.Document.FileName,
		Summary:   summary,
		Cached:    false,
		Truncated: prompt.Truncated,
	}, nil
}

func (s *ChatService) webSnippets(ctx context.Context, req types.ChatRequest) []string {
	if !req.UseWebSearch || s.search == nil {
		return nil
	}
	snippets, err := s.search.Snippets(ctx, req.Question, webSearchSnippetLimit)
	if err != nil {
		s.logger.Warn("web search failed, continuing with document context only", zap.Error(err))
		return nil
	}
	return snippets
}
