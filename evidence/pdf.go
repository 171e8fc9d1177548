package evidence

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFLoader extracts one evidence chunk per PDF page. Pages that fail
// text extraction are skipped; the rest still load.
type PDFLoader struct{}

func (l *PDFLoader) SupportedExtensions() []string { return []string{"pdf"} }

func (l *PDFLoader) Load(ctx context.Context, path string) ([]string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	var chunks []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip pages that fail to extract
			continue
		}
		text = strings.TrimSpace(text)
		if text != "" {
			chunks = append(chunks, text)
		}
	}

	if len(chunks) == 0 {
		return nil, fmt.Errorf("no extractable text in %s", path)
	}
	return chunks, nil
}
