package types

import "time"

// DocumentFormat identifies the supported upload formats.
type DocumentFormat string

const (
	FormatPDF  DocumentFormat = "pdf"
	FormatDOCX DocumentFormat = "docx"
	FormatTXT  DocumentFormat = "txt"
	FormatMD   DocumentFormat = "md"
)

// Document describes one uploaded paper. It is created on upload and
// never mutated afterwards; a re-upload creates a new Document.
type Document struct {
	ID          string         `json:"id"`
	FileName    string         `json:"file_name"`
	Format      DocumentFormat `json:"format"`
	ByteSize    int64          `json:"byte_size"`
	ExtractedAt time.Time      `json:"extracted_at"`
}

// DocumentChunk is a bounded, contiguous segment of a document's
// normalized text. Chunks are ordered and non-overlapping: concatenating
// Content in Index order reproduces the normalized text, minus trailing
// whitespace discarded from the final chunk.
type DocumentChunk struct {
	Index   int    `json:"index"`
	Content string `json:"content"`
	Start   int    `json:"start"` // byte offset into the normalized text
	End     int    `json:"end"`
}

// Session ties the single active Document to its normalized text,
// chunks, and an optional cached summary. State is volatile: it lives
// for the process lifetime or until the next upload replaces it.
type Session struct {
	Document *Document
	Text     string
	Chunks   []DocumentChunk
	Summary  string
}

// PaperType enumerates the kinds of paper the generator can produce.
type PaperType string

const (
	PaperResearch    PaperType = "research"
	PaperSurvey      PaperType = "survey"
	PaperMethodology PaperType = "methodology"
	PaperCaseStudy   PaperType = "case_study"
)

// Descriptions fed into generation prompts, one per paper type.
var PaperTypeDescriptions = map[PaperType]string{
	PaperResearch:    "a research paper with empirical experiments, results, and analysis",
	PaperSurvey:      "a comprehensive survey paper that analyzes and synthesizes existing literature",
	PaperMethodology: "a methodology paper focusing on a novel method or algorithm with theoretical foundations",
	PaperCaseStudy:   "a case study paper demonstrating application in a specific domain with practical insights",
}

func (p PaperType) Valid() bool {
	_, ok := PaperTypeDescriptions[p]
	return ok
}
