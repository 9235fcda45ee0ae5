// Package storage provides the storage abstraction layer for newsgate.
//
// It defines the three durable collaborators of the ingestion pipeline as
// interfaces so backends can be swapped without touching stage logic:
//
//   - DocumentStore: the primary store of accepted documents
//   - BlacklistStore: rejected/duplicate documents, keyed the same way
//   - VectorIndex: nearest-neighbor search over document embeddings
//
// The storage/badger subpackage implements all three on a single embedded
// BadgerDB instance. Public constructors return interfaces; internal
// constructors may return concrete types.
//
// All implementations must be thread-safe and accept context.Context on
// every operation.
package storage
