package extractor

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
)

// DocumentExtractor turns a named byte blob into plain text. The format
// is dispatched on the filename extension; unsupported extensions yield
// an empty string, not an error.
type DocumentExtractor struct {
	logger      *slog.Logger
	convertWord func(r io.Reader, mimeType string, readability bool) (*docconv.Response, error)
}

func NewDocumentExtractor(logger *slog.Logger) *DocumentExtractor {
	return &DocumentExtractor{
		logger:      logger,
		convertWord: docconv.Convert,
	}
}

func (e *DocumentExtractor) Extract(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".txt":
		return e.extractPlainText(data), nil
	case ".pdf":
		return e.extractPDF(data)
	case ".html", ".htm":
		return e.extractHTML(data)
	case ".doc":
		return e.extractWord(data, "application/msword")
	case ".docx":
		return e.extractWord(data, "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	default:
		e.logger.Debug("Unsupported file extension, returning empty text",
			slog.String("filename", filename))
		return "", nil
	}
}

// extractPlainText decodes bytes as UTF-8, dropping invalid sequences
// instead of failing.
func (e *DocumentExtractor) extractPlainText(data []byte) string {
	return strings.ToValidUTF8(string(data), "")
}

func (e *DocumentExtractor) extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		e.logger.Error("Failed to create PDF reader",
			slog.String("error", err.Error()),
			slog.Int("data_size", len(data)))
		return "", fmt.Errorf("failed to create PDF reader: %w", err)
	}

	totalPage := reader.NumPage()
	var fullText strings.Builder
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			e.logger.Warn("Null page encountered",
				slog.Int("page_number", pageIndex))
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Error("Failed to extract text from page",
				slog.Int("page_number", pageIndex),
				slog.String("error", err.Error()))
			return "", fmt.Errorf("failed to extract text from page %d: %w", pageIndex, err)
		}

		fullText.WriteString(text)
	}

	e.logger.Debug("Extracted text from PDF",
		slog.Int("total_pages", totalPage),
		slog.Int("text_length", fullText.Len()))

	return fullText.String(), nil
}

func (e *DocumentExtractor) extractHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML document: %w", err)
	}

	doc.Find("script, style").Remove()
	text := doc.Find("body").Text()
	if text == "" {
		text = doc.Text()
	}

	return strings.Join(strings.Fields(text), " "), nil
}

func (e *DocumentExtractor) extractWord(data []byte, mimeType string) (string, error) {
	result, err := e.convertWord(bytes.NewReader(data), mimeType, true)
	if err != nil {
		e.logger.Error("Failed to extract text from Word document",
			slog.String("error", err.Error()),
			slog.Int("data_size", len(data)))
		return "", fmt.Errorf("failed to extract text from Word document: %w", err)
	}

	return result.Body, nil
}
