// pdf.go - PDF text extraction for the classification pipeline

package extractor

import (
	"bytes"
	"strings"

	"github.com/bosocmputer/document_classifier/configs"
	"github.com/ledongthuc/pdf"
)

// ExtractText pulls machine-readable text from the first pages of a PDF.
// It returns "" (absent) when the document fails to parse, yields no text,
// or yields less than the configured minimum - the caller treats absence as
// "scanned or image-based PDF, use the visual path instead". Parse failures
// never propagate as errors.
//
// At most MAX_PDF_PAGES pages are read, stopping early once accumulated text
// reaches TEXT_MAX_LENGTH characters. Pages are joined with a single newline
// and the result is trimmed and truncated to TEXT_MAX_LENGTH.
func ExtractText(pdfBytes []byte) (result string) {
	// ledongthuc/pdf panics on some malformed xref tables; the contract here
	// is absent-not-error, so degrade any panic to ""
	defer func() {
		if r := recover(); r != nil {
			result = ""
		}
	}()

	if len(pdfBytes) == 0 {
		return ""
	}

	reader, err := pdf.NewReader(bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	if err != nil {
		return ""
	}

	maxPages := reader.NumPage()
	if maxPages > configs.MAX_PDF_PAGES {
		maxPages = configs.MAX_PDF_PAGES
	}

	var pages []string
	total := 0
	for i := 1; i <= maxPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue // skip unreadable pages
		}

		pages = append(pages, pageText)
		total += len(pageText)
		if total >= configs.TEXT_MAX_LENGTH {
			break
		}
	}

	return FinalizeText(pages)
}

// FinalizeText joins per-page text with a single newline, trims surrounding
// whitespace, applies the minimum-length heuristic, and truncates to the
// maximum length (rune-safe).
func FinalizeText(pages []string) string {
	text := strings.TrimSpace(strings.Join(pages, "\n"))

	if len(text) < configs.TEXT_MIN_LENGTH {
		return ""
	}

	runes := []rune(text)
	if len(runes) > configs.TEXT_MAX_LENGTH {
		runes = runes[:configs.TEXT_MAX_LENGTH]
	}
	return string(runes)
}
