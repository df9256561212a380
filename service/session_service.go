package service

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/tranvuminh/papermind-be/types"
)

// SessionService holds the single active session: one document, its
// normalized text and chunks, and an optional cached summary. State is
// volatile; a new upload replaces everything, process restart loses it.
// The mutex only guards against concurrent transport requests, there is
// no multi-session isolation.
type SessionService struct {
	mu      sync.RWMutex
	session *types.Session
	logger  *zap.Logger
}

func NewSessionService(logger *zap.Logger) *SessionService {
	return &SessionService{logger: logger}
}

// Replace installs a freshly extracted document as the active session,
// discarding any previous document and cached summary.
func (s *SessionService) Replace(doc *types.Document, text string, chunks []types.DocumentChunk) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil {
		s.logger.Info("replacing active session",
			zap.String("previous_document_id", s.session.Document.ID),
			zap.String("document_id", doc.ID),
		)
	}
	s.session = &types.Session{
		Document: doc,
		Text:     text,
		Chunks:   chunks,
	}
}

// Current returns the active session or ErrNoDocument.
func (s *SessionService) Current() (*types.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return nil, types.ErrNoDocument
	}
	return s.session, nil
}

// Get returns the active session if it matches the given document id.
// An empty id matches the current document.
func (s *SessionService) Get(documentID string) (*types.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return nil, types.ErrNoDocument
	}
	if documentID != "" && documentID != s.session.Document.ID {
		return nil, fmt.Errorf("%w: document %s is not the active document", types.ErrNoDocument, documentID)
	}
	return s.session, nil
}

// CacheSummary stores a generated summary on the active session.
// Summaries are reused by later summarize calls until the next upload.
func (s *SessionService) CacheSummary(documentID, summary string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return types.ErrNoDocument
	}
	if documentID != "" && documentID != s.session.Document.ID {
		return fmt.Errorf("%w: document %s is not the active document", types.ErrNoDocument, documentID)
	}
	s.session.Summary = summary
	return nil
}

// CachedSummary returns the stored summary, if any.
func (s *SessionService) CachedSummary() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil || s.session.Summary == "" {
		return "", false
	}
	return s.session.Summary, true
}

// Clear drops the active session.
func (s *SessionService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
}
