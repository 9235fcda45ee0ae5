package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/seorim/newsgate/core"
	"github.com/seorim/newsgate/storage"
)

// documentStore implements storage.DocumentStore over one key prefix.
type documentStore struct {
	backend *Backend
	prefix  string
	logger  *slog.Logger
}

// NewDocumentStore creates the primary document store on a backend.
func NewDocumentStore(backend *Backend) (storage.DocumentStore, error) {
	return newDocumentStore(backend, documentPrefix, "documents")
}

func newDocumentStore(backend *Backend, prefix, name string) (*documentStore, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &documentStore{
		backend: backend,
		prefix:  prefix,
		logger:  slog.Default().With("store", name),
	}, nil
}

func (s *documentStore) Put(ctx context.Context, doc *core.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	if s.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	data := storage.MarshalDocument(doc)
	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeKey(s.prefix, doc.ID), data); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

func (s *documentStore) Get(ctx context.Context, id string) (*core.Document, error) {
	var doc *core.Document
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeKey(s.prefix, id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var uerr error
			doc, uerr = storage.UnmarshalDocument(val)
			if uerr != nil {
				return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, uerr)
			}
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentStore) Exists(ctx context.Context, id string) (bool, error) {
	exists := false
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(makeKey(s.prefix, id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		exists = true
		return nil
	}, false)
	return exists, err
}

func (s *documentStore) Delete(ctx context.Context, id string) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		key := makeKey(s.prefix, id)
		if _, err := tx.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		} else if err != nil {
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

func (s *documentStore) Count(ctx context.Context) (int, error) {
	count := 0
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = keyPrefix(s.prefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()
		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

func (s *documentStore) List(ctx context.Context) ([]*core.Document, error) {
	var docs []*core.Document
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = keyPrefix(s.prefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()
		for iter.Rewind(); iter.Valid(); iter.Next() {
			var doc *core.Document
			err := iter.Item().Value(func(val []byte) error {
				var uerr error
				doc, uerr = storage.UnmarshalDocument(val)
				return uerr
			})
			if err != nil {
				return err
			}
			docs = append(docs, doc)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// blacklistStore implements storage.BlacklistStore.
type blacklistStore struct {
	documentStore
}

// NewBlacklistStore creates the blacklist store on a backend.
func NewBlacklistStore(backend *Backend) (storage.BlacklistStore, error) {
	inner, err := newDocumentStore(backend, blacklistPrefix, "blacklist")
	if err != nil {
		return nil, err
	}
	return &blacklistStore{documentStore: *inner}, nil
}

func (s *blacklistStore) PutRejected(ctx context.Context, doc *core.Document, stage core.Stage, reasonTag string) error {
	doc.EnsureID()
	doc.SetCheck("dropped_stage", string(stage))
	doc.SetCheck("dropped_reason_tag", reasonTag)
	doc.SetCheck("dropped_at", time.Now().UTC().Format(time.RFC3339))

	s.logger.Info("blacklisting document",
		"id", doc.ID, "stage", stage, "reason", reasonTag)
	return s.Put(ctx, doc)
}
