package newsgate

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seorim/newsgate/ai/mock"
	"github.com/seorim/newsgate/config"
	"github.com/seorim/newsgate/core"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Store.Path = ""
	cfg.Store.InMemory = true
	cfg.Queue.Path = ":memory:"
	return cfg
}

func openTestSystem(t *testing.T) *System {
	t.Helper()
	sys, err := Open(context.Background(), testConfig(t), WithAIProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	t.Cleanup(func() { sys.Close() })
	return sys
}

func TestOpen(t *testing.T) {
	t.Run("assembles all components", func(t *testing.T) {
		sys := openTestSystem(t)

		assert.NotNil(t, sys.Documents())
		assert.NotNil(t, sys.Blacklist())
		assert.NotNil(t, sys.Vectors())
		assert.NotNil(t, sys.Queue())
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Pipeline.SimilarityThreshold = 2
		sys, err := Open(context.Background(), cfg, WithAIProvider(mock.NewMockProvider()))
		assert.Error(t, err)
		assert.Nil(t, sys)
	})

	t.Run("on-disk store path", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Store.InMemory = false
		cfg.Store.Path = filepath.Join(t.TempDir(), "store")

		sys, err := Open(context.Background(), cfg, WithAIProvider(mock.NewMockProvider()))
		require.NoError(t, err)
		require.NoError(t, sys.Close())
	})
}

func TestSystemNewDispatcher(t *testing.T) {
	sys := openTestSystem(t)

	d, err := sys.NewDispatcher()
	require.NoError(t, err)
	defer d.Release()

	doc := &core.Document{
		Title:       "테스트 기사",
		URL:         "https://news.example.com/sys/1",
		PublishedAt: "2020-01-01 00:00:00",
	}
	require.NoError(t, d.Submit(context.Background(), doc))

	stats, err := sys.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Pending)
}

func TestSystemNewReindexer(t *testing.T) {
	ctx := context.Background()
	sys := openTestSystem(t)

	doc := &core.Document{
		Title:   "재색인 대상 기사",
		URL:     "https://news.example.com/reindex/1",
		Content: "재색인 테스트 본문",
	}
	doc.EnsureID()
	require.NoError(t, sys.Documents().Put(ctx, doc))

	var progress bytes.Buffer
	reindexer, err := sys.NewReindexer(nil, &progress)
	require.NoError(t, err)

	require.NoError(t, reindexer.Run(ctx))
	assert.Contains(t, progress.String(), "Reindex complete")

	stored, err := sys.Documents().Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.Embedding)
}

func TestSystemStats(t *testing.T) {
	ctx := context.Background()
	sys := openTestSystem(t)

	stats, err := sys.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Documents)
	assert.Zero(t, stats.Blacklisted)
	assert.Zero(t, stats.Pending)

	doc := &core.Document{Title: "기사", URL: "https://news.example.com/stats/1"}
	doc.EnsureID()
	require.NoError(t, sys.Documents().Put(ctx, doc))

	stats, err = sys.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Documents)
}
