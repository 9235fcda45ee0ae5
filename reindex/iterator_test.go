package reindex

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seorim/newsgate/core"
)

func TestForEachBatching(t *testing.T) {
	documents, _ := newTestStores(t)
	for i := 0; i < 5; i++ {
		storedDocument(t, documents, fmt.Sprintf("https://news.example.com/i/%d", i), "본문")
	}

	it := NewDocumentIterator(documents, 2)

	var batchSizes []int
	seen := 0
	err := it.ForEach(context.Background(), func(docs []*core.Document) error {
		batchSizes = append(batchSizes, len(docs))
		seen += len(docs)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5, seen)
	assert.Equal(t, []int{2, 2, 1}, batchSizes)
}

func TestForEachEmptyStore(t *testing.T) {
	documents, _ := newTestStores(t)

	it := NewDocumentIterator(documents, 10)
	calls := 0
	err := it.ForEach(context.Background(), func(docs []*core.Document) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestForEachStopsOnError(t *testing.T) {
	documents, _ := newTestStores(t)
	for i := 0; i < 4; i++ {
		storedDocument(t, documents, fmt.Sprintf("https://news.example.com/i/e/%d", i), "본문")
	}

	it := NewDocumentIterator(documents, 1)
	boom := errors.New("boom")
	calls := 0
	err := it.ForEach(context.Background(), func(docs []*core.Document) error {
		calls++
		if calls == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestForEachInvalidBatchSizeDefaults(t *testing.T) {
	documents, _ := newTestStores(t)
	it := NewDocumentIterator(documents, 0)
	assert.Equal(t, DefaultBatchSize, it.batchSize)
}
