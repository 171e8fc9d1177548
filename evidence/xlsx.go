package evidence

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXLoader produces one evidence chunk per non-empty worksheet, with
// rows rendered as pipe-separated lines.
type XLSXLoader struct{}

func (l *XLSXLoader) SupportedExtensions() []string { return []string{"xlsx", "xls"} }

func (l *XLSXLoader) Load(ctx context.Context, path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening XLSX: %w", err)
	}
	defer f.Close()

	var chunks []string
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}

		var content strings.Builder
		content.WriteString(sheet)
		content.WriteString("\n")
		for _, row := range rows {
			content.WriteString("| " + strings.Join(row, " | ") + " |\n")
		}
		chunks = append(chunks, content.String())
	}

	if len(chunks) == 0 {
		return nil, fmt.Errorf("no data found in %s", path)
	}
	return chunks, nil
}
