// Package reindex re-embeds the stored documents and refreshes the
// vector index, for use after an embedding model change. Documents are
// processed in batches with retry and progress reporting.
package reindex
