// Package extractor turns uploaded documents into plain text.
//
// Supported formats:
//   - .pdf  text of every page, via github.com/ledongthuc/pdf
//   - .docx paragraphs of word/document.xml
//   - .txt  UTF-8, with a Latin-1 fallback for legacy files
//
// Dispatch is by file extension only.
package extractor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"mcq-generator/internal/domain"
	"mcq-generator/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"
)

// blockSeparator joins pages and paragraphs.
const blockSeparator = "\n\n"

type extractFunc func(ctx context.Context, path string) (string, error)

// Extractor dispatches extraction by file extension.
type Extractor struct {
	byExt map[string]extractFunc
}

func New() *Extractor {
	return &Extractor{
		byExt: map[string]extractFunc{
			".pdf":  extractPDF,
			".docx": extractDocx,
			".txt":  extractText,
		},
	}
}

// SupportedExtensions returns the accepted extensions without the leading dot.
func (e *Extractor) SupportedExtensions() []string {
	exts := make([]string, 0, len(e.byExt))
	for ext := range e.byExt {
		exts = append(exts, strings.TrimPrefix(ext, "."))
	}
	sort.Strings(exts)
	return exts
}

// Supports reports whether a file name carries an accepted extension.
func (e *Extractor) Supports(name string) bool {
	_, ok := e.byExt[strings.ToLower(filepath.Ext(name))]
	return ok
}

func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	fn, ok := e.byExt[ext]
	if !ok {
		return "", domain.NewExtractionError(fmt.Sprintf("unsupported file type %q", ext), nil).
			WithContext("supported", e.SupportedExtensions())
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text, err := fn(ctx, path)
	if err != nil {
		logger.Get().Warn("Text extraction failed",
			zap.String("path", path),
			zap.String("format", ext),
			zap.Error(err))
		return "", domain.NewExtractionError(fmt.Sprintf("failed to extract text from %s file", strings.TrimPrefix(ext, ".")), err)
	}

	logger.Get().Debug("Extracted document text",
		zap.String("path", path),
		zap.String("format", ext),
		zap.Int("chars", utf8.RuneCountInString(text)))
	return text, nil
}

func extractText(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return decodeText(data)
}

// decodeText reads data as UTF-8, falling back to Latin-1 which accepts any byte sequence.
func decodeText(data []byte) (string, error) {
	data = trimBOM(data)
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("latin-1 decode: %w", err)
	}
	return string(decoded), nil
}

func trimBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}

var _ domain.TextExtractor = (*Extractor)(nil)
