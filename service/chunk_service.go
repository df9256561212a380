package service

import (
	"strings"
	"unicode/utf8"

	"github.com/tranvuminh/papermind-be/types"
)

// ChunkService splits normalized text into ordered, bounded segments.
// Chunks are contiguous and non-overlapping: concatenating them in
// order reproduces the input, minus trailing whitespace trimmed from
// the final chunk. The split is deterministic.
type ChunkService struct {
	maxChunkSize      int // maximum chunk size in bytes
	boundaryTolerance int // how far below the limit a break may move
}

func NewChunkService(maxChunkSize, boundaryTolerance int) *ChunkService {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if boundaryTolerance < 0 || boundaryTolerance >= maxChunkSize {
		boundaryTolerance = maxChunkSize / 5
	}
	return &ChunkService{
		maxChunkSize:      maxChunkSize,
		boundaryTolerance: boundaryTolerance,
	}
}

// Split chunks text greedily up to the size limit, preferring to break
// at a paragraph, then sentence, then word boundary within the
// tolerance window, and hard-cutting at the limit otherwise. Empty
// input yields no chunks; the caller treats that as an upstream
// extraction failure, not a valid zero-chunk document.
func (s *ChunkService) Split(text string) []types.DocumentChunk {
	if text == "" {
		return nil
	}

	var chunks []types.DocumentChunk
	pos := 0
	for pos < len(text) {
		if len(text)-pos <= s.maxChunkSize {
			content := strings.TrimRight(text[pos:], " \t\n")
			if content != "" {
				chunks = append(chunks, types.DocumentChunk{
					Index:   len(chunks),
					Content: content,
					Start:   pos,
					End:     len(text),
				})
			}
			break
		}

		cut := s.findBreak(text, pos, pos+s.maxChunkSize)
		chunks = append(chunks, types.DocumentChunk{
			Index:   len(chunks),
			Content: text[pos:cut],
			Start:   pos,
			End:     cut,
		})
		pos = cut
	}
	return chunks
}

// findBreak picks the cut position for a chunk starting at pos with a
// hard limit at limit. The boundary characters stay in the left chunk.
func (s *ChunkService) findBreak(text string, pos, limit int) int {
	window := limit - s.boundaryTolerance
	if window < pos+1 {
		window = pos + 1
	}

	// Paragraph boundary: cut after the blank line.
	if i := strings.LastIndex(text[window:limit], "\n\n"); i != -1 {
		return window + i + 2
	}

	// Sentence boundary: terminator followed by whitespace.
	for i := limit - 1; i >= window; i-- {
		c := text[i]
		if (c == '.' || c == '?' || c == '!') && i+1 < len(text) && isSpace(text[i+1]) {
			return i + 1
		}
	}

	// Word boundary.
	for i := limit - 1; i >= window; i-- {
		if isSpace(text[i]) {
			return i + 1
		}
	}

	// Hard cut, backed up to a rune boundary.
	cut := limit
	for cut > pos+1 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return cut
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}
