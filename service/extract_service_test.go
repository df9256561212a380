package service

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tranvuminh/papermind-be/types"
)

func newTestExtractService() *ExtractService {
	return NewExtractService(1<<20, zap.NewNop())
}

func buildDocxArchive(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractPlainText(t *testing.T) {
	s := newTestExtractService()

	doc, text, err := s.Extract("paper.txt", []byte("Line one.\r\nLine two.\r\n"))
	require.NoError(t, err)

	assert.Equal(t, types.FormatTXT, doc.Format)
	assert.Equal(t, "paper.txt", doc.FileName)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "Line one.\nLine two.", text)
}

func TestExtractMarkdown(t *testing.T) {
	s := newTestExtractService()

	doc, text, err := s.Extract("notes.md", []byte("# Title\n\nSome *markdown* body.\n"))
	require.NoError(t, err)

	assert.Equal(t, types.FormatMD, doc.Format)
	assert.Contains(t, text, "*markdown*")
}

func TestExtractStripsBOM(t *testing.T) {
	s := newTestExtractService()

	_, text, err := s.Extract("bom.txt", append([]byte{0xEF, 0xBB, 0xBF}, []byte("content")...))
	require.NoError(t, err)
	assert.Equal(t, "content", text)
}

func TestExtractDeterministicText(t *testing.T) {
	s := newTestExtractService()
	data := []byte("Same input, same text.\n")

	_, first, err := s.Extract("a.txt", data)
	require.NoError(t, err)
	_, second, err := s.Extract("a.txt", data)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestExtractDocx(t *testing.T) {
	s := newTestExtractService()
	docXML := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r><w:r><w:t xml:space="preserve"> Continued.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`

	doc, text, err := s.Extract("report.docx", buildDocxArchive(t, docXML))
	require.NoError(t, err)

	assert.Equal(t, types.FormatDOCX, doc.Format)
	assert.Equal(t, "First paragraph. Continued.\nSecond paragraph.", text)
}

func TestExtractDocxMissingDocumentPart(t *testing.T) {
	s := newTestExtractService()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<styles/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, _, err = s.Extract("broken.docx", buf.Bytes())
	assert.ErrorIs(t, err, types.ErrExtractionFailed)
}

func TestExtractRejectsOversizedFile(t *testing.T) {
	s := NewExtractService(16, zap.NewNop())

	_, _, err := s.Extract("big.txt", []byte(strings.Repeat("a", 17)))
	assert.ErrorIs(t, err, types.ErrFileTooLarge)
}

func TestExtractRejectsEmptyFile(t *testing.T) {
	s := newTestExtractService()

	_, _, err := s.Extract("empty.txt", nil)
	assert.ErrorIs(t, err, types.ErrExtractionFailed)
}

func TestExtractRejectsUnsupportedBinary(t *testing.T) {
	s := newTestExtractService()
	data := []byte{0x00, 0x01, 0x02, 0x7F, 0x00, 0xFF, 0x00, 0x03}

	_, _, err := s.Extract("image.png", data)
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)
}

func TestExtractCorruptPDF(t *testing.T) {
	s := newTestExtractService()

	_, _, err := s.Extract("paper.pdf", []byte("%PDF-1.7 garbage that is not a pdf body"))
	assert.ErrorIs(t, err, types.ErrExtractionFailed)

	_, _, err = s.Extract("claims.pdf", []byte{0x00, 0x01, 0x02, 0x00})
	assert.ErrorIs(t, err, types.ErrExtractionFailed)
}

func TestExtractZipThatIsNotDocx(t *testing.T) {
	s := newTestExtractService()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("data/readme.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("not a docx"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, _, err = s.Extract("archive.zip", buf.Bytes())
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)
}
