package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seorim/newsgate/core"
)

func TestDocumentRoundTrip(t *testing.T) {
	doc := &core.Document{
		ID:          core.IDFromURL("https://news.example.com/a"),
		Title:       "삼성전자 반도체 실적 발표",
		Content:     "본문 텍스트",
		Summary:     "요약",
		URL:         "https://news.example.com/a",
		Source:      "NAVER_NEWS",
		PublishedAt: "2026-08-30T09:00:00+09:00",
		Keywords:    []string{"삼성전자", "반도체", "실적"},
		Embedding:   []float32{0.1, -0.2, 0.3},
		KeywordEmbeddings: [][]float32{
			{0.5, 0.5},
			{-0.5, 0.5},
		},
		Checked: map[string]string{
			"initial_checks":     "true",
			"content_extraction": "true",
			"content_source":     "scraper_naver",
		},
	}

	got, err := UnmarshalDocument(MarshalDocument(doc))
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestDocumentRoundTripZeroValue(t *testing.T) {
	got, err := UnmarshalDocument(MarshalDocument(&core.Document{}))
	require.NoError(t, err)
	assert.Equal(t, &core.Document{}, got)
}

func TestUnmarshalDocumentTruncated(t *testing.T) {
	data := MarshalDocument(&core.Document{ID: "abc", URL: "https://x.test/a"})
	_, err := UnmarshalDocument(data[:len(data)/2])
	assert.Error(t, err)
}

func TestVectorEntryRoundTrip(t *testing.T) {
	vector := []float32{0.6, 0.8}
	meta := VectorMeta{
		URL:         "https://news.example.com/a",
		Title:       "title",
		PublishedAt: "2026-08-30T09:00:00Z",
		Source:      "RSS",
		Summary:     "summary",
		Content:     "content snapshot",
		Keywords:    []string{"one", "two"},
	}

	gotVec, gotMeta, err := UnmarshalVectorEntry(MarshalVectorEntry(vector, meta))
	require.NoError(t, err)
	assert.Equal(t, vector, gotVec)
	assert.Equal(t, meta, gotMeta)
}
