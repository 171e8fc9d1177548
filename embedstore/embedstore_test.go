package embedstore

import (
	"context"
	"testing"
)

func openTestStore(t *testing.T, dim int) *Store {
	t.Helper()
	s, err := Open(":memory:", dim)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorePutGet(t *testing.T) {
	s := openTestStore(t, 3)
	ctx := context.Background()

	vec := []float32{0.1, 0.2, 0.3}
	if err := s.Put(ctx, "model-a", "the clinic opens at 9am", vec); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "model-a", "the clinic opens at 9am")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d dims, want 3", len(got))
	}
	for i := range vec {
		if got[i] != vec[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], vec[i])
		}
	}
}

func TestStoreGetMiss(t *testing.T) {
	s := openTestStore(t, 3)

	got, err := s.Get(context.Background(), "model-a", "never stored")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Errorf("cache miss should return nil, got %v", got)
	}
}

func TestStoreModelNamespacing(t *testing.T) {
	s := openTestStore(t, 2)
	ctx := context.Background()

	if err := s.Put(ctx, "model-a", "text", []float32{1, 0}); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, "model-b", "text")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Error("entry for model-a must not be visible under model-b")
	}
}

func TestStoreRejectsWrongDimension(t *testing.T) {
	s := openTestStore(t, 3)
	if err := s.Put(context.Background(), "m", "text", []float32{1, 2}); err == nil {
		t.Error("expected error for mismatched dimension")
	}
}

func TestOpenRejectsBadDimension(t *testing.T) {
	if _, err := Open(":memory:", 0); err == nil {
		t.Error("expected error for non-positive dimension")
	}
}

func TestStoreNearest(t *testing.T) {
	s := openTestStore(t, 2)
	ctx := context.Background()

	if err := s.Put(ctx, "m", "the clinic opens at 9am", []float32{1, 0}); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, "m", "consultations cost $50", []float32{0, 1}); err != nil {
		t.Fatal(err)
	}

	got, err := s.Nearest(ctx, []float32{0.9, 0.1}, 2)
	if err != nil {
		t.Fatalf("Nearest: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d neighbors, want 2", len(got))
	}
	if got[0].ContentHash != contentHash("the clinic opens at 9am") {
		t.Errorf("nearest = %s, want the hash of the closer vector", got[0].ContentHash)
	}
	if got[0].Distance > got[1].Distance {
		t.Errorf("neighbors out of distance order: %v", got)
	}
}

// countingProvider records how many texts it was asked to embed.
type countingProvider struct {
	calls int
	texts int
}

func (p *countingProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	p.calls++
	p.texts += len(texts)
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{float32(len(texts[i])), 1}
	}
	return out, nil
}

func TestCachingProvider(t *testing.T) {
	s := openTestStore(t, 2)
	inner := &countingProvider{}
	p := NewCachingProvider(inner, s, "model-a")
	ctx := context.Background()

	first, err := p.Embed(ctx, []string{"alpha", "beta"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if inner.texts != 2 {
		t.Errorf("cold cache should embed 2 texts, embedded %d", inner.texts)
	}

	// Second call with one cached text and one new: only the new text
	// reaches the provider.
	second, err := p.Embed(ctx, []string{"alpha", "gamma"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if inner.texts != 3 {
		t.Errorf("warm cache should embed 1 more text, total %d", inner.texts)
	}
	if second[0][0] != first[0][0] {
		t.Errorf("cached vector differs: %v vs %v", second[0], first[0])
	}

	// Fully cached call never touches the provider.
	before := inner.calls
	if _, err := p.Embed(ctx, []string{"alpha", "beta", "gamma"}); err != nil {
		t.Fatal(err)
	}
	if inner.calls != before {
		t.Errorf("fully cached batch made %d provider calls", inner.calls-before)
	}
}

func TestCachingProviderNearest(t *testing.T) {
	s := openTestStore(t, 2)
	p := NewCachingProvider(&countingProvider{}, s, "model-a")
	ctx := context.Background()

	// countingProvider embeds each text as {len(text), 1}, so texts of
	// different lengths land at distinct points.
	if _, err := p.Embed(ctx, []string{"short", "a much longer evidence chunk"}); err != nil {
		t.Fatal(err)
	}

	got, err := p.Nearest(ctx, "short", 1)
	if err != nil {
		t.Fatalf("Nearest: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d neighbors, want 1", len(got))
	}
	if got[0].ContentHash != contentHash("short") {
		t.Errorf("nearest = %s, want the query's own cached entry", got[0].ContentHash)
	}
	if got[0].Distance != 0 {
		t.Errorf("distance = %v, want 0 for an exact cached match", got[0].Distance)
	}
}
