package service

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"

	"github.com/tranvuminh/papermind-be/types"
)

type PromptTask string

const (
	TaskChat      PromptTask = "chat"
	TaskSummarize PromptTask = "summarize"
	TaskGenerate  PromptTask = "generate"
)

// PromptRequest is the transient input to prompt assembly. Which
// fields matter depends on the task: Question for chat, Title,
// PaperType and Details for generation.
type PromptRequest struct {
	Task        PromptTask
	Question    string
	Title       string
	PaperType   types.PaperType
	Details     string
	WebSnippets []string
}

// AssembledPrompt is the bounded prompt string plus assembly metadata.
// Truncated reports that chunk text had to be cut to respect the
// budget; it is a warning, not a failure.
type AssembledPrompt struct {
	Text      string
	Truncated bool
	Tokens    int
}

const (
	chatPromptPrefix      = "You are answering questions about the following paper. "
	summarizePromptPrefix = "Summarize the following paper comprehensively: "
	chunkSeparator        = "\n\n"
)

// PromptService builds the prompt variants under a fixed character
// budget. Context filling is not retrieval: chunks are included in
// document order from the start until the budget is reached.
type PromptService struct {
	contextBudget int

	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
}

func NewPromptService(contextBudget int) *PromptService {
	if contextBudget <= 0 {
		contextBudget = 24000
	}
	return &PromptService{contextBudget: contextBudget}
}

// Assemble builds the prompt for the request. The returned text never
// exceeds the configured budget.
func (s *PromptService) Assemble(req PromptRequest, chunks []types.DocumentChunk) (*AssembledPrompt, error) {
	var text string
	var truncated bool

	switch req.Task {
	case TaskChat:
		suffix := "\n\nQuestion: " + req.Question
		context, cut := s.buildContext(chunks, req.WebSnippets, s.contextBudget-len(chatPromptPrefix)-len(suffix))
		text = chatPromptPrefix + context + suffix
		truncated = cut
	case TaskSummarize:
		context, cut := s.buildContext(chunks, nil, s.contextBudget-len(summarizePromptPrefix))
		text = summarizePromptPrefix + context
		truncated = cut
	case TaskGenerate:
		description, ok := types.PaperTypeDescriptions[req.PaperType]
		if !ok {
			return nil, fmt.Errorf("unknown paper type %q", req.PaperType)
		}
		text = fmt.Sprintf("Write %s titled '%s' covering: %s.", description, req.Title, req.Details)
	default:
		return nil, fmt.Errorf("unknown prompt task %q", req.Task)
	}

	// The templates themselves can blow the budget on degenerate input
	// (an enormous question or details field).
	if len(text) > s.contextBudget {
		text = truncateString(text, s.contextBudget)
		truncated = true
	}

	return &AssembledPrompt{
		Text:      text,
		Truncated: truncated,
		Tokens:    s.countTokens(text),
	}, nil
}

// AssembleGenerateSection builds the prompt for one section of a
// generated paper, still bounded by the budget.
func (s *PromptService) AssembleGenerateSection(req PromptRequest, sectionTitle, sectionDescription string) (*AssembledPrompt, error) {
	base, err := s.Assemble(req, nil)
	if err != nil {
		return nil, err
	}

	text := fmt.Sprintf("%s\n\nWrite only the %s section. %s", base.Text, sectionTitle, sectionDescription)
	truncated := base.Truncated
	if len(text) > s.contextBudget {
		text = truncateString(text, s.contextBudget)
		truncated = true
	}
	return &AssembledPrompt{
		Text:      text,
		Truncated: truncated,
		Tokens:    s.countTokens(text),
	}, nil
}

// buildContext concatenates chunk contents in order until the budget is
// reached. If even the first chunk cannot fit, it is truncated rather
// than dropped so the prompt always carries some document context.
// Optional web snippets are appended after the chunks under the same
// budget, best effort.
func (s *PromptService) buildContext(chunks []types.DocumentChunk, snippets []string, budget int) (string, bool) {
	if len(chunks) == 0 && len(snippets) == 0 {
		return "", false
	}
	if budget <= 0 {
		return "", len(chunks) > 0
	}

	var b strings.Builder
	truncated := false
	for i, chunk := range chunks {
		piece := chunk.Content
		if i > 0 {
			piece = chunkSeparator + piece
		}
		if b.Len()+len(piece) > budget {
			if i == 0 {
				b.WriteString(truncateString(chunk.Content, budget))
				truncated = true
			}
			break
		}
		b.WriteString(piece)
	}

	for _, snippet := range snippets {
		piece := chunkSeparator + snippet
		if b.Len() == 0 {
			piece = snippet
		}
		if b.Len()+len(piece) > budget {
			break
		}
		b.WriteString(piece)
	}

	return b.String(), truncated
}

// countTokens estimates the token footprint of the prompt for logging.
// The tiktoken encoding is loaded lazily; if it cannot be loaded a
// rough character heuristic is used instead.
func (s *PromptService) countTokens(text string) int {
	s.encodingOnce.Do(func() {
		if encoding, err := tiktoken.GetEncoding("cl100k_base"); err == nil {
			s.encoding = encoding
		}
	})
	if s.encoding != nil {
		return len(s.encoding.Encode(text, nil, nil))
	}
	return len([]rune(text)) / 4
}

// truncateString cuts s to at most max bytes without splitting a rune.
func truncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
