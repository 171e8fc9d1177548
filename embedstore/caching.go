package embedstore

import (
	"context"
	"log/slog"

	"github.com/brunobiangulo/ragcheck/embed"
)

// CachingProvider wraps an embed.Provider with a Store: texts already in
// the cache skip the provider entirely, and fresh embeddings are written
// back. Cache errors degrade to the underlying provider — caching is an
// optimization, never a correctness dependency.
type CachingProvider struct {
	inner embed.Provider
	store *Store
	model string
}

// NewCachingProvider wraps provider with the given cache. model
// namespaces the cache entries so switching embedding models never
// returns stale vectors.
func NewCachingProvider(provider embed.Provider, store *Store, model string) *CachingProvider {
	return &CachingProvider{inner: provider, store: store, model: model}
}

// Nearest embeds text (through the cache) and returns the k cached
// entries closest to it by vector distance, identified by content hash.
func (c *CachingProvider) Nearest(ctx context.Context, text string, k int) ([]Neighbor, error) {
	vecs, err := c.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return c.store.Nearest(ctx, vecs[0], k)
}

// Embed satisfies embed.Provider.
func (c *CachingProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	result := make([][]float32, len(texts))
	var missing []string
	var missingIdx []int

	for i, text := range texts {
		vec, err := c.store.Get(ctx, c.model, text)
		if err != nil {
			slog.Warn("embedstore: cache read failed", "error", err)
		}
		if vec != nil {
			result[i] = vec
			continue
		}
		missing = append(missing, text)
		missingIdx = append(missingIdx, i)
	}

	if len(missing) == 0 {
		return result, nil
	}

	fresh, err := c.inner.Embed(ctx, missing)
	if err != nil {
		return nil, err
	}
	for j, vec := range fresh {
		result[missingIdx[j]] = vec
		if err := c.store.Put(ctx, c.model, missing[j], vec); err != nil {
			slog.Warn("embedstore: cache write failed", "error", err)
		}
	}
	return result, nil
}
