// Package evidence loads context chunks from raw files so callers can
// point the engine at documents instead of pre-chunked JSON. Loaders are
// selected by file extension through a small registry; the engine itself
// never touches the filesystem.
package evidence

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Loader extracts evidence chunks from a file.
type Loader interface {
	// SupportedExtensions lists the lowercase extensions (without dot)
	// this loader handles.
	SupportedExtensions() []string

	// Load returns the ordered evidence chunks found in the file.
	Load(ctx context.Context, path string) ([]string, error)
}

var loaders = map[string]Loader{}

func register(l Loader) {
	for _, ext := range l.SupportedExtensions() {
		loaders[ext] = l
	}
}

func init() {
	register(&TextLoader{})
	register(&PDFLoader{})
	register(&XLSXLoader{})
}

// LoadChunks loads evidence chunks from a single file, dispatching on its
// extension.
func LoadChunks(ctx context.Context, path string) ([]string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	l, ok := loaders[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported evidence format %q (%s)", ext, path)
	}
	return l.Load(ctx, path)
}

// LoadAll loads evidence from several files, concatenating chunks in file
// order. A file that fails to load is skipped and reported in the returned
// error slice; remaining files still contribute — per-source failures are
// isolated, matching the engine's own partial-evidence policy.
func LoadAll(ctx context.Context, paths []string) ([]string, []error) {
	var chunks []string
	var errs []error
	for _, p := range paths {
		cs, err := LoadChunks(ctx, p)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p, err))
			continue
		}
		chunks = append(chunks, cs...)
	}
	return chunks, errs
}
