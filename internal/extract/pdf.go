package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// extractPDF reads up to opts.MaxPages pages of plain text. A PDF that
// cannot be parsed or has no text layer is replaced by SampleText with a
// warning rather than failing the run.
func extractPDF(path string, opts Options) (Document, error) {
	text, pages, err := readPDF(path, opts.MaxPages)
	if err == nil && strings.TrimSpace(text) != "" {
		return Document{Source: path, Format: FormatPDF, Title: titleOf(path), Text: text, Pages: pages}, nil
	}

	if err == nil {
		err = fmt.Errorf("no extractable text in %d pages", pages)
	}
	opts.Logger.Warn("pdf extraction failed, using sample text",
		zap.String("path", path),
		zap.Error(err))

	doc := Sample()
	doc.Source = path
	doc.Fallback = true
	return doc, nil
}

func readPDF(path string, maxPages int) (string, int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	n := min(r.NumPage(), maxPages)
	var b strings.Builder
	for i := 1; i <= n; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", i - 1, fmt.Errorf("page %d: %w", i, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), n, nil
}
