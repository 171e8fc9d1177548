package evidence

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// TextLoader splits plain-text and markdown files into one chunk per
// blank-line-separated paragraph.
type TextLoader struct{}

func (l *TextLoader) SupportedExtensions() []string { return []string{"txt", "md", "text"} }

func (l *TextLoader) Load(ctx context.Context, path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading text file: %w", err)
	}

	var chunks []string
	for _, para := range strings.Split(string(data), "\n\n") {
		para = strings.TrimSpace(para)
		if para != "" {
			chunks = append(chunks, para)
		}
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no text content in %s", path)
	}
	return chunks, nil
}
