// Package pdftext converts raw PDF bytes to plain text for the extraction
// engine.
package pdftext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dslipak/pdf"
)

// Provider extracts text and page counts from PDF documents.
type Provider struct{}

func New() *Provider {
	return &Provider{}
}

// ExtractText extracts the plain text of every page and joins pages with a
// newline. Blank or unreadable pages are skipped entirely, not inserted as
// empty lines. Malformed documents surface as an error, never a panic.
func (p *Provider) ExtractText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parsing failed: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil || pageText == "" {
			continue
		}
		pages = append(pages, pageText)
	}

	return strings.Join(pages, "\n"), nil
}

// CountPages returns the page count of the document, or 0 when the document
// cannot be read. It never fails.
func (p *Provider) CountPages(data []byte) (n int) {
	defer func() {
		if recover() != nil {
			n = 0
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0
	}
	return reader.NumPage()
}
