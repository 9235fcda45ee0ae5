package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/seorim/newsgate/storage"
)

// vectorIndex implements storage.VectorIndex with a brute-force cosine
// scan over normalized vectors. Fine at ingestion scale: one top-1 query
// per finalized document.
type vectorIndex struct {
	backend *Backend
	logger  *slog.Logger
}

// NewVectorIndex creates the vector index on a backend.
func NewVectorIndex(backend *Backend) (storage.VectorIndex, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &vectorIndex{
		backend: backend,
		logger:  slog.Default().With("store", "vectors"),
	}, nil
}

// normalizeVector normalizes a vector to unit length. Returns a new
// vector; a zero vector stays zero.
func normalizeVector(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	var magnitude float32
	for _, val := range v {
		magnitude += val * val
	}
	magnitude = float32(math.Sqrt(float64(magnitude)))

	result := make([]float32, len(v))
	if magnitude == 0 {
		return result
	}
	for i, val := range v {
		result[i] = val / magnitude
	}
	return result
}

// dot computes the inner product of two equal-length vectors. With both
// sides normalized this is the cosine similarity.
func dot(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func (x *vectorIndex) Upsert(ctx context.Context, id string, vector []float32, meta storage.VectorMeta) error {
	if id == "" || len(vector) == 0 {
		return errors.New("vector upsert requires id and a non-empty vector")
	}

	data := storage.MarshalVectorEntry(normalizeVector(vector), meta)
	return x.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeKey(vectorPrefix, id), data); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

func (x *vectorIndex) QueryNearest(ctx context.Context, vector []float32, k int) ([]storage.Match, error) {
	if len(vector) == 0 || k <= 0 {
		return nil, nil
	}
	query := normalizeVector(vector)

	var matches []storage.Match
	err := x.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = keyPrefix(vectorPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			id := strings.TrimPrefix(string(item.Key()), vectorPrefix+":")

			err := item.Value(func(val []byte) error {
				stored, _, uerr := storage.UnmarshalVectorEntry(val)
				if uerr != nil {
					return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, uerr)
				}
				if len(stored) != len(query) {
					// Dimension mismatch from an older embedding model;
					// skip rather than fail the whole query.
					x.logger.Warn("skipping vector with mismatched dimension",
						"id", id, "stored", len(stored), "query", len(query))
					return nil
				}
				matches = append(matches, storage.Match{ID: id, Score: dot(query, stored)})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

func (x *vectorIndex) Get(ctx context.Context, id string) ([]float32, storage.VectorMeta, error) {
	var (
		vector []float32
		meta   storage.VectorMeta
	)
	err := x.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeKey(vectorPrefix, id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var uerr error
			vector, meta, uerr = storage.UnmarshalVectorEntry(val)
			return uerr
		})
	}, false)
	if err != nil {
		return nil, storage.VectorMeta{}, err
	}
	return vector, meta, nil
}

func (x *vectorIndex) Delete(ctx context.Context, id string) error {
	return x.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeKey(vectorPrefix, id)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
