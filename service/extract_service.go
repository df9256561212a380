package service

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/tranvuminh/papermind-be/types"
)

// ExtractService turns uploaded file bytes into normalized text. The
// true format is sniffed from magic bytes first; the declared filename
// only breaks ties between the plain-text formats.
type ExtractService struct {
	maxFileSize int64
	logger      *zap.Logger
}

func NewExtractService(maxFileSize int64, logger *zap.Logger) *ExtractService {
	return &ExtractService{
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// Extract produces a Document and its normalized text. On any failure
// no partial result is returned. Oversized files are rejected before
// any parsing is attempted.
func (s *ExtractService) Extract(fileName string, data []byte) (*types.Document, string, error) {
	if int64(len(data)) > s.maxFileSize {
		return nil, "", fmt.Errorf("%w: %d bytes exceeds limit of %d", types.ErrFileTooLarge, len(data), s.maxFileSize)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: empty file %s", types.ErrExtractionFailed, fileName)
	}

	format, err := s.detectFormat(fileName, data)
	if err != nil {
		return nil, "", err
	}

	var text string
	switch format {
	case types.FormatPDF:
		text, err = s.extractPDF(data)
	case types.FormatDOCX:
		text, err = s.extractDOCX(data)
	case types.FormatTXT, types.FormatMD:
		text, err = s.extractPlainText(data)
	}
	if err != nil {
		return nil, "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, "", fmt.Errorf("%w: no text content in %s", types.ErrExtractionFailed, fileName)
	}

	doc := &types.Document{
		ID:          uuid.NewString(),
		FileName:    filepath.Base(fileName),
		Format:      format,
		ByteSize:    int64(len(data)),
		ExtractedAt: time.Now().UTC(),
	}
	s.logger.Info("extracted document",
		zap.String("document_id", doc.ID),
		zap.String("file_name", doc.FileName),
		zap.String("format", string(format)),
		zap.Int("text_len", len(text)),
	)
	return doc, text, nil
}

func (s *ExtractService) detectFormat(fileName string, data []byte) (types.DocumentFormat, error) {
	if isPDF(data) {
		return types.FormatPDF, nil
	}
	if isZip(data) {
		if isWordArchive(data) {
			return types.FormatDOCX, nil
		}
		return "", fmt.Errorf("%w: zip container is not a docx document", types.ErrUnsupportedFormat)
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".pdf":
		return "", fmt.Errorf("%w: %s claims pdf but the %%PDF header is missing", types.ErrExtractionFailed, fileName)
	case ".docx":
		return "", fmt.Errorf("%w: %s claims docx but is not a valid zip container", types.ErrExtractionFailed, fileName)
	case ".md", ".markdown":
		if !isProbablyText(data) {
			return "", fmt.Errorf("%w: %s contains binary content", types.ErrExtractionFailed, fileName)
		}
		return types.FormatMD, nil
	case ".txt":
		if !isProbablyText(data) {
			return "", fmt.Errorf("%w: %s contains binary content", types.ErrExtractionFailed, fileName)
		}
		return types.FormatTXT, nil
	}

	if isProbablyText(data) {
		return types.FormatTXT, nil
	}
	return "", fmt.Errorf("%w: %s (ext %q)", types.ErrUnsupportedFormat, fileName, ext)
}

// extractPDF pulls text page by page in page order. Whitespace runs are
// collapsed within a page; pages are joined with blank lines so the
// chunker still sees paragraph boundaries.
func (s *ExtractService) extractPDF(data []byte) (text string, err error) {
	// The parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: pdf parse: %v", types.ErrExtractionFailed, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: pdf reader: %v", types.ErrExtractionFailed, err)
	}

	var pages []string
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: pdf page %d: %v", types.ErrExtractionFailed, pageNum, err)
		}
		if collapsed := collapseWhitespace(content); collapsed != "" {
			pages = append(pages, collapsed)
		}
	}
	return strings.Join(pages, "\n\n"), nil
}

// extractDOCX reads word/document.xml and emits paragraph text in
// document order, one paragraph per line.
func (s *ExtractService) extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: docx container: %v", types.ErrExtractionFailed, err)
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", fmt.Errorf("%w: docx document part: %v", types.ErrExtractionFailed, err)
			}
			docXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return "", fmt.Errorf("%w: docx document part: %v", types.ErrExtractionFailed, err)
			}
			break
		}
	}
	if docXML == nil {
		return "", fmt.Errorf("%w: docx missing word/document.xml", types.ErrExtractionFailed)
	}

	dec := xml.NewDecoder(bytes.NewReader(docXML))
	var paragraphs []string
	var current strings.Builder
	inParagraph := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: docx xml: %v", types.ErrExtractionFailed, err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "p":
				inParagraph = true
				current.Reset()
			case "t":
				var run string
				if err := dec.DecodeElement(&run, &el); err != nil {
					return "", fmt.Errorf("%w: docx text run: %v", types.ErrExtractionFailed, err)
				}
				current.WriteString(run)
			}
		case xml.EndElement:
			if el.Name.Local == "p" && inParagraph {
				if p := collapseWhitespace(current.String()); p != "" {
					paragraphs = append(paragraphs, p)
				}
				inParagraph = false
			}
		}
	}
	return strings.Join(paragraphs, "\n"), nil
}

// extractPlainText covers TXT and MD uploads. Markdown is treated as
// plain text, no markup parsing.
func (s *ExtractService) extractPlainText(data []byte) (string, error) {
	text := string(data)
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\x00", "")
	return text, nil
}

func isPDF(b []byte) bool {
	return len(b) >= 5 && string(b[:5]) == "%PDF-"
}

func isZip(b []byte) bool {
	return len(b) >= 4 && b[0] == 'P' && b[1] == 'K' && b[2] == 3 && b[3] == 4
}

func isWordArchive(b []byte) bool {
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "word/") {
			return true
		}
	}
	return false
}

// isProbablyText reports whether the sample looks like UTF-8 text:
// no NUL bytes and mostly printable characters.
func isProbablyText(b []byte) bool {
	sample := b
	if len(sample) > 4096 {
		sample = sample[:4096]
	}
	good := 0
	for _, c := range sample {
		if c == 0x00 {
			return false
		}
		if c == '\n' || c == '\r' || c == '\t' || (c >= 0x20 && c <= 0x7E) || c >= 0x80 {
			good++
		}
	}
	return float64(good)/float64(len(sample)) > 0.9
}

func collapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}
