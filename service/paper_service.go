package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tranvuminh/papermind-be/types"
)

type paperSection struct {
	title       string
	description string
}

// Generated papers are composed section by section; one model call per
// section keeps each call well inside output limits.
var paperSections = []paperSection{
	{"Abstract", "A comprehensive abstract (250-350 words) summarizing the motivation, methodology, key findings, and implications."},
	{"Introduction", "Problem statement, motivation, research gap, objectives, and paper organization."},
	{"Related Work", "A thorough review of relevant literature, organized thematically with critical analysis."},
	{"Methodology", "Detailed methodology including algorithms, architectures, frameworks, and implementation details."},
	{"Results", "Comprehensive results with analysis and comparisons to baselines."},
	{"Discussion", "In-depth discussion of results, implications, and connections to broader research."},
	{"Conclusion", "A strong conclusion summarizing contributions and significance, with future directions."},
}

// PaperService generates a full paper on a topic, no uploaded document
// required.
type PaperService struct {
	ai      AIService
	prompts *PromptService
	logger  *zap.Logger
}

func NewPaperService(ai AIService, prompts *PromptService, logger *zap.Logger) *PaperService {
	return &PaperService{
		ai:      ai,
		prompts: prompts,
		logger:  logger,
	}
}

// Generate produces the paper text with section headings separated by
// blank lines, ready for DOCX export.
func (s *PaperService) Generate(ctx context.Context, req types.GeneratePaperRequest) (*types.GeneratePaperResponse, error) {
	if !req.PaperType.Valid() {
		return nil, fmt.Errorf("invalid paper type %q", req.PaperType)
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("paper title is required")
	}

	promptReq := PromptRequest{
		Task:      TaskGenerate,
		Title:     req.Title,
		PaperType: req.PaperType,
		Details:   strings.TrimSpace(req.Details),
	}

	var paper strings.Builder
	paper.WriteString(req.Title)
	for _, section := range paperSections {
		s.logger.Info("generating paper section",
			zap.String("title", req.Title),
			zap.String("section", section.title),
		)
		prompt, err := s.prompts.AssembleGenerateSection(promptReq, section.title, section.description)
		if err != nil {
			return nil, err
		}
		content, err := s.ai.Complete(ctx, prompt.Text)
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", section.title, err)
		}
		paper.WriteString("\n\n")
		paper.WriteString(section.title)
		paper.WriteString("\n\n")
		paper.WriteString(strings.TrimSpace(content))
	}

	return &types.GeneratePaperResponse{
		Title: req.Title,
		Paper: paper.String(),
	}, nil
}
