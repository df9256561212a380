package service

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/tranvuminh/papermind-be/types"
)

// DOCXContentType is the MIME type served with exported documents.
const DOCXContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

var paragraphBreak = regexp.MustCompile(`\r?\n[ \t]*\r?\n`)

// ExportService renders a text body as a downloadable DOCX stream.
// Blank-line separated paragraphs become separate paragraph elements;
// no rich formatting is synthesized.
type ExportService struct {
	logger *zap.Logger
}

func NewExportService(logger *zap.Logger) *ExportService {
	return &ExportService{logger: logger}
}

// BuildDOCX renders body into a minimal wordprocessingml container.
func (s *ExportService) BuildDOCX(body string) ([]byte, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: empty body", types.ErrFormattingFailed)
	}

	var paragraphs []string
	for _, p := range paragraphBreak.Split(body, -1) {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	var doc strings.Builder
	doc.WriteString(xml.Header)
	doc.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		doc.WriteString(`<w:p><w:r><w:t xml:space="preserve">`)
		doc.WriteString(escapeXML(p))
		doc.WriteString(`</w:t></w:r></w:p>`)
	}
	doc.WriteString(`<w:sectPr/></w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relationshipsXML},
		{"word/document.xml", doc.String()},
	}
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", types.ErrFormattingFailed, part.name, err)
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", types.ErrFormattingFailed, part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrFormattingFailed, err)
	}

	s.logger.Info("rendered docx",
		zap.Int("paragraphs", len(paragraphs)),
		zap.Int("bytes", buf.Len()),
	)
	return buf.Bytes(), nil
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	// xml.EscapeText only fails on a bad writer; a bytes.Buffer never is.
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

const relationshipsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`
