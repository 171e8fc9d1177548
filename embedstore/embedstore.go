// Package embedstore caches embedding vectors in SQLite with the
// sqlite-vec extension, keyed by content hash. Batch runs over large
// evidence sets re-embed only what changed. The cache stores embeddings
// of texts, never evaluation results.
package embedstore

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	_ "github.com/mattn/go-sqlite3"
)

func init() {
	sqlite_vec.Auto()
}

// Store is a sqlite-vec backed embedding cache. Open with ":memory:" for
// a per-process cache or a file path for persistence across runs.
type Store struct {
	db  *sql.DB
	dim int
}

// Open opens (and if needed initializes) an embedding cache for vectors
// of the given dimension. The dimension must match the embedding model.
func Open(path string, dim int) (*Store, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("embedstore: dimension must be positive, got %d", dim)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("embedstore: opening database: %w", err)
	}

	schema := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS embed_keys (
    id INTEGER PRIMARY KEY,
    content_hash TEXT NOT NULL,
    model TEXT NOT NULL,
    UNIQUE(content_hash, model)
);

CREATE VIRTUAL TABLE IF NOT EXISTS vec_embeddings USING vec0(
    key_id INTEGER PRIMARY KEY,
    embedding float[%d]
);`, dim)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("embedstore: creating schema: %w", err)
	}
	return &Store{db: db, dim: dim}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Put stores the embedding of text produced by model, replacing any
// previous entry.
func (s *Store) Put(ctx context.Context, model, text string, embedding []float32) error {
	if len(embedding) != s.dim {
		return fmt.Errorf("embedstore: embedding has %d dimensions, store expects %d", len(embedding), s.dim)
	}

	hash := contentHash(text)
	res, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO embed_keys (content_hash, model) VALUES (?, ?)",
		hash, model)
	if err != nil {
		return fmt.Errorf("embedstore: inserting key: %w", err)
	}
	keyID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO vec_embeddings (key_id, embedding) VALUES (?, ?)",
		keyID, serializeFloat32(embedding))
	if err != nil {
		return fmt.Errorf("embedstore: inserting embedding: %w", err)
	}
	return nil
}

// Get returns the cached embedding for text under model, or (nil, nil)
// on a cache miss.
func (s *Store) Get(ctx context.Context, model, text string) ([]float32, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT v.embedding FROM vec_embeddings v
		JOIN embed_keys k ON k.id = v.key_id
		WHERE k.content_hash = ? AND k.model = ?`,
		contentHash(text), model).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("embedstore: reading embedding: %w", err)
	}
	return deserializeFloat32(blob), nil
}

// Nearest performs a KNN search over all cached vectors and returns the
// content hashes of the k nearest entries with their distances.
func (s *Store) Nearest(ctx context.Context, query []float32, k int) ([]Neighbor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT k.content_hash, v.distance
		FROM vec_embeddings v
		JOIN embed_keys k ON k.id = v.key_id
		WHERE v.embedding MATCH ? AND k = ?
		ORDER BY v.distance`,
		serializeFloat32(query), k)
	if err != nil {
		return nil, fmt.Errorf("embedstore: knn search: %w", err)
	}
	defer rows.Close()

	var out []Neighbor
	for rows.Next() {
		var n Neighbor
		if err := rows.Scan(&n.ContentHash, &n.Distance); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Neighbor is one KNN search hit.
type Neighbor struct {
	ContentHash string
	Distance    float64
}

func contentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func serializeFloat32(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func deserializeFloat32(b []byte) []float32 {
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
