// Copyright 2026 Seorim Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seorim/newsgate/ai/mock"
	"github.com/seorim/newsgate/core"
	badgerstore "github.com/seorim/newsgate/storage/badger"
)

// fakeFetcher serves canned HTML without touching the network.
type fakeFetcher struct {
	fetchFunc    func(ctx context.Context, url string) (string, error)
	fetchRawFunc func(ctx context.Context, url string) (string, error)
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.fetchFunc != nil {
		return f.fetchFunc(ctx, url)
	}
	return articlePage, nil
}

func (f *fakeFetcher) FetchRaw(ctx context.Context, url string) (string, error) {
	if f.fetchRawFunc != nil {
		return f.fetchRawFunc(ctx, url)
	}
	return articlePage, nil
}

const articlePage = `<!DOCTYPE html>
<html><head>
<title>기사 | 뉴스</title>
<meta property="og:title" content="한국은행 기준금리 동결 결정">
<meta property="article:published_time" content="2026-08-30T09:00:00+09:00">
</head><body>
<header><nav>홈 경제 정치</nav></header>
<article>
<p>한국은행 금융통화위원회는 목요일 기준금리를 연 3.50퍼센트로 세 차례 연속 동결하기로 결정했다고 밝혔다.</p>
<p>위원회는 물가 상승률이 목표 범위로 수렴하고 있으나 가계부채 증가세를 더 지켜볼 필요가 있다고 설명했다.</p>
</article>
<footer>무단 전재 및 재배포 금지</footer>
</body></html>`

func newTestResources(t *testing.T, settings Settings) (*Resources, *mock.MockProvider, *fakeFetcher) {
	t.Helper()

	backend, err := badgerstore.OpenBackend("", true)
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	documents, err := badgerstore.NewDocumentStore(backend)
	require.NoError(t, err)
	blacklist, err := badgerstore.NewBlacklistStore(backend)
	require.NoError(t, err)
	vectors, err := badgerstore.NewVectorIndex(backend)
	require.NoError(t, err)

	provider := mock.NewMockProvider()
	fetcher := &fakeFetcher{}

	res, err := NewResources(documents, blacklist, vectors, provider, fetcher, settings)
	require.NoError(t, err)
	return res, provider.(*mock.MockProvider), fetcher
}

func freshDocument(url string) *core.Document {
	doc := &core.Document{
		Title:       "기준금리 동결",
		URL:         url,
		Source:      "연합뉴스",
		PublishedAt: time.Now().UTC().Add(-time.Hour).Format("2006-01-02 15:04:05"),
	}
	doc.EnsureID()
	return doc
}

func TestInitialChecksPass(t *testing.T) {
	res, _, _ := newTestResources(t, DefaultSettings())
	doc := freshDocument("https://news.example.com/economy/1")

	outcome := runInitialChecks(context.Background(), doc, res)

	assert.Equal(t, core.ActionAdvance, outcome.Kind)
	assert.Equal(t, core.StageContentExtraction, outcome.Next)
	assert.True(t, doc.CheckIsTrue("initial_checks"))
}

func TestInitialChecksRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc *core.Document)
		reason string
	}{
		{
			name:   "missing url",
			mutate: func(doc *core.Document) { doc.URL = "" },
			reason: "INVALID_OR_MISSING_URL",
		},
		{
			name:   "non http scheme",
			mutate: func(doc *core.Document) { doc.URL = "ftp://example.com/a" },
			reason: "INVALID_OR_MISSING_URL",
		},
		{
			name:   "blocked url",
			mutate: func(doc *core.Document) { doc.URL = "https://google.com/search?q=a" },
			reason: "HARDCODED_DROP_URL (google.com/search)",
		},
		{
			name:   "missing published_at",
			mutate: func(doc *core.Document) { doc.PublishedAt = "" },
			reason: "MISSING_PUBLISHED_AT",
		},
		{
			name:   "unparseable published_at",
			mutate: func(doc *core.Document) { doc.PublishedAt = "어제 오후" },
			reason: "INVALID_PUBLISHED_AT_FORMAT",
		},
		{
			name: "stale article",
			mutate: func(doc *core.Document) {
				doc.PublishedAt = time.Now().UTC().Add(-25 * time.Hour).Format(time.RFC3339)
			},
			reason: "ARTICLE_OLDER_THAN_24H",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, _, _ := newTestResources(t, DefaultSettings())
			doc := freshDocument("https://news.example.com/economy/1")
			tt.mutate(doc)

			outcome := runInitialChecks(context.Background(), doc, res)

			assert.Equal(t, core.ActionBlacklist, outcome.Kind)
			assert.Equal(t, tt.reason, outcome.Reason)
			assert.False(t, doc.CheckIsTrue("initial_checks"))
			got, _ := doc.Check("initial_checks_reason")
			assert.Equal(t, tt.reason, got)
		})
	}
}

func TestInitialChecksFreshnessBoundary(t *testing.T) {
	res, _, _ := newTestResources(t, DefaultSettings())

	inside := freshDocument("https://news.example.com/a")
	inside.PublishedAt = time.Now().UTC().Add(-23*time.Hour - 59*time.Minute).Format(time.RFC3339)
	assert.Equal(t, core.ActionAdvance, runInitialChecks(context.Background(), inside, res).Kind)

	outside := freshDocument("https://news.example.com/b")
	outside.PublishedAt = time.Now().UTC().Add(-24*time.Hour - time.Second).Format(time.RFC3339)
	outcome := runInitialChecks(context.Background(), outside, res)
	assert.Equal(t, core.ActionBlacklist, outcome.Kind)
	assert.Equal(t, "ARTICLE_OLDER_THAN_24H", outcome.Reason)
}

func TestInitialChecksDuplicateID(t *testing.T) {
	ctx := context.Background()
	res, _, _ := newTestResources(t, DefaultSettings())

	saved := freshDocument("https://news.example.com/saved")
	require.NoError(t, res.Documents.Put(ctx, saved))

	dup := freshDocument("https://news.example.com/saved")
	outcome := runInitialChecks(ctx, dup, res)
	assert.Equal(t, core.ActionBlacklist, outcome.Kind)
	assert.Equal(t, "ARTICLES_DB_DUPLICATE_ID", outcome.Reason)

	rejected := freshDocument("https://news.example.com/rejected")
	require.NoError(t, res.Blacklist.PutRejected(ctx, rejected, core.StageInitialChecks, "MISSING_PUBLISHED_AT"))

	again := freshDocument("https://news.example.com/rejected")
	outcome = runInitialChecks(ctx, again, res)
	assert.Equal(t, core.ActionBlacklist, outcome.Kind)
	assert.Equal(t, "BLACKLIST_DB_DUPLICATE_ID", outcome.Reason)
}

func TestContentExtractionParserWins(t *testing.T) {
	res, provider, _ := newTestResources(t, DefaultSettings())
	doc := freshDocument("https://news.example.com/economy/1")

	outcome := runContentExtraction(context.Background(), doc, res)

	require.Equal(t, core.ActionAdvance, outcome.Kind)
	assert.Equal(t, core.StageCategorization, outcome.Next)
	assert.True(t, doc.CheckIsTrue("content_extraction"))

	source, _ := doc.Check("content_source")
	assert.Equal(t, "parser", source)
	assert.Contains(t, doc.Content, "금융통화위원회")
	assert.Contains(t, doc.Title, "기준금리 동결 결정")
	assert.Equal(t, "2026-08-30T09:00:00+09:00", doc.PublishedAt)
	assert.Contains(t, doc.Summary, "summary:")
	assert.Zero(t, provider.MockBodyExtractorInstance().CallCount())
}

func TestContentExtractionFallsBackToScraperBeforeLLM(t *testing.T) {
	res, provider, fetcher := newTestResources(t, DefaultSettings())

	// No semantic landmark for the parser; the generic scraper's
	// whole-body fallback picks the text up. The LLM rung must not fire.
	fetcher.fetchFunc = func(ctx context.Context, url string) (string, error) {
		return `<html><body>
<div>정부는 다음 달부터 소상공인 전기요금 특별 지원 사업의 신청 대상을 연 매출 육천만원 이하로 확대한다고 발표했다.</div>
<div>지원 금액은 사업장당 최대 이십만원이며 신청은 온라인 전용 창구를 통해 이번 주 금요일부터 받는다.</div>
</body></html>`, nil
	}

	doc := freshDocument("https://news.example.com/policy/2")
	outcome := runContentExtraction(context.Background(), doc, res)

	require.Equal(t, core.ActionAdvance, outcome.Kind)
	source, _ := doc.Check("content_source")
	assert.Equal(t, "scraper_generic", source)
	assert.Contains(t, doc.Content, "소상공인")
	assert.Zero(t, provider.MockBodyExtractorInstance().CallCount())
}

func TestContentExtractionLLMLastResort(t *testing.T) {
	res, provider, fetcher := newTestResources(t, DefaultSettings())

	fetcher.fetchFunc = func(ctx context.Context, url string) (string, error) {
		return `<html><body><div>짧은 조각</div></body></html>`, nil
	}
	provider.MockBodyExtractorInstance().ExtractBodyFunc = func(ctx context.Context, html string) (string, error) {
		return "모델이 원문에서 그대로 복사해 낸 기사 본문이다. 본문은 충분히 길어서 최소 길이 검증을 통과한다. 추가 문장이 이어진다.", nil
	}

	doc := freshDocument("https://news.example.com/odd/3")
	outcome := runContentExtraction(context.Background(), doc, res)

	require.Equal(t, core.ActionAdvance, outcome.Kind)
	source, _ := doc.Check("content_source")
	assert.Equal(t, "llm_html", source)
	assert.Equal(t, 1, provider.MockBodyExtractorInstance().CallCount())
}

func TestContentExtractionInsufficientContentDrops(t *testing.T) {
	res, _, fetcher := newTestResources(t, DefaultSettings())

	fetcher.fetchFunc = func(ctx context.Context, url string) (string, error) {
		return `<html><body><div>짧은 조각</div></body></html>`, nil
	}
	// Default mock body extractor refuses, so nothing clears the bar.

	doc := freshDocument("https://news.example.com/thin/4")
	outcome := runContentExtraction(context.Background(), doc, res)

	assert.Equal(t, core.ActionDrop, outcome.Kind)
	assert.Equal(t, "INSUFFICIENT_CONTENT_LENGTH", outcome.Reason)
	assert.False(t, doc.CheckIsTrue("content_extraction"))
	source, _ := doc.Check("content_source")
	assert.Equal(t, "llm_no_body", source)
}

func TestContentExtractionFetchFailureRetries(t *testing.T) {
	res, _, fetcher := newTestResources(t, DefaultSettings())

	fetcher.fetchFunc = func(ctx context.Context, url string) (string, error) {
		return "", errors.New("connection reset")
	}

	doc := freshDocument("https://news.example.com/down/5")
	outcome := runContentExtraction(context.Background(), doc, res)

	assert.Equal(t, core.ActionRetry, outcome.Kind)
	assert.True(t, core.IsRetryable(outcome.Err))
}

func TestContentExtractionDisclosure(t *testing.T) {
	res, provider, _ := newTestResources(t, DefaultSettings())

	doc := freshDocument("https://dart.fss.or.kr/report/77")
	doc.Source = "DART"
	doc.Title = "주요사항보고서"
	doc.Summary = "유상증자 결정"

	outcome := runContentExtraction(context.Background(), doc, res)

	require.Equal(t, core.ActionAdvance, outcome.Kind)
	source, _ := doc.Check("content_source")
	assert.Equal(t, "disclosure", source)
	assert.Contains(t, doc.Content, "유상증자")
	// No fetch, no summarization for disclosures.
	assert.Zero(t, provider.MockSummarizerInstance().CallCount())

	empty := freshDocument("https://dart.fss.or.kr/report/78")
	empty.Source = "DART"
	empty.Title = ""
	empty.Summary = ""
	outcome = runContentExtraction(context.Background(), empty, res)
	assert.Equal(t, core.ActionDrop, outcome.Kind)
	assert.Equal(t, "DART_CONTENT_MISSING", outcome.Reason)
}

func TestCategorizationExtractsKeywords(t *testing.T) {
	res, _, _ := newTestResources(t, DefaultSettings())

	doc := freshDocument("https://news.example.com/kw/1")
	doc.Content = "기준금리 동결 물가 가계부채 전망"

	outcome := runCategorization(context.Background(), doc, res)

	assert.Equal(t, core.ActionAdvance, outcome.Kind)
	assert.Equal(t, core.StageContentAnalysis, outcome.Next)
	assert.True(t, doc.CheckIsTrue("categorization"))
	assert.NotEmpty(t, doc.Keywords)
}

func TestCategorizationFailureIsNonFatal(t *testing.T) {
	res, provider, _ := newTestResources(t, DefaultSettings())
	provider.MockKeywordExtractorInstance().ExtractKeywordsFunc = func(ctx context.Context, text string) ([]string, error) {
		return nil, errors.New("model unavailable")
	}

	doc := freshDocument("https://news.example.com/kw/2")
	doc.Content = "본문"

	outcome := runCategorization(context.Background(), doc, res)

	assert.Equal(t, core.ActionAdvance, outcome.Kind)
	assert.False(t, doc.CheckIsTrue("categorization"))
	reason, _ := doc.Check("categorization_reason")
	assert.Equal(t, "KEYWORD_EXTRACTION_FAILED", reason)
	assert.Empty(t, doc.Keywords)
}

func TestCategorizationSkipsDisclosure(t *testing.T) {
	res, provider, _ := newTestResources(t, DefaultSettings())

	doc := freshDocument("https://dart.fss.or.kr/report/79")
	doc.Source = "DART"
	doc.Keywords = []string{"stale"}

	outcome := runCategorization(context.Background(), doc, res)

	assert.Equal(t, core.ActionAdvance, outcome.Kind)
	assert.Nil(t, doc.Keywords)
	got, _ := doc.Check("categorization")
	assert.Equal(t, "skipped_disclosure", got)
	assert.Zero(t, provider.MockKeywordExtractorInstance().CallCount())
}

func TestContentAnalysisBannedWord(t *testing.T) {
	settings := DefaultSettings()
	settings.BannedWords = []string{"충격", "단독"}
	res, _, _ := newTestResources(t, settings)

	doc := freshDocument("https://news.example.com/q/1")
	doc.Title = "단독 보도"
	doc.Content = "본문 내용"

	outcome := runContentAnalysis(context.Background(), doc, res)

	assert.Equal(t, core.ActionDrop, outcome.Kind)
	assert.Equal(t, "CONTAINS_QUALITY_DROP_WORD", outcome.Reason)
	assert.False(t, doc.CheckIsTrue("content_analysis"))
}

func TestContentAnalysisBannedDomainAndWordCombine(t *testing.T) {
	settings := DefaultSettings()
	settings.BannedWords = []string{"광고"}
	settings.BannedDomains = []string{"spam.example.com"}
	res, _, _ := newTestResources(t, settings)

	doc := freshDocument("https://spam.example.com/a")
	doc.Content = "광고성 본문"

	outcome := runContentAnalysis(context.Background(), doc, res)

	assert.Equal(t, core.ActionDrop, outcome.Kind)
	assert.Equal(t, "CONTAINS_QUALITY_DROP_WORD, CONTAINS_QUALITY_DROP_URL", outcome.Reason)
}

func TestContentAnalysisCleanRecordAdvances(t *testing.T) {
	settings := DefaultSettings()
	settings.BannedWords = []string{"충격"}
	res, _, _ := newTestResources(t, settings)

	doc := freshDocument("https://news.example.com/q/2")
	doc.Content = "평범한 경제 기사 본문"

	outcome := runContentAnalysis(context.Background(), doc, res)

	assert.Equal(t, core.ActionAdvance, outcome.Kind)
	assert.Equal(t, core.StageEmbedding, outcome.Next)
	assert.True(t, doc.CheckIsTrue("content_analysis"))
}

func TestEmbeddingGeneratesVectors(t *testing.T) {
	res, _, _ := newTestResources(t, DefaultSettings())

	doc := freshDocument("https://news.example.com/e/1")
	doc.Content = "기준금리 동결 본문"
	doc.Keywords = []string{"기준금리", "동결"}

	outcome := runEmbedding(context.Background(), doc, res)

	assert.Equal(t, core.ActionAdvance, outcome.Kind)
	assert.Equal(t, core.StageFinalization, outcome.Next)
	assert.Len(t, doc.Embedding, 384)
	assert.Len(t, doc.KeywordEmbeddings, 2)
	assert.True(t, doc.CheckIsTrue("embedding_generation"))
}

func TestEmbeddingFailureStillAdvances(t *testing.T) {
	res, provider, _ := newTestResources(t, DefaultSettings())
	provider.MockEmbedderInstance().EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("embedding service down")
	}

	doc := freshDocument("https://news.example.com/e/2")
	doc.Content = "본문"
	doc.Keywords = []string{"본문"}

	outcome := runEmbedding(context.Background(), doc, res)

	assert.Equal(t, core.ActionAdvance, outcome.Kind)
	assert.Equal(t, core.StageFinalization, outcome.Next)
	assert.Nil(t, doc.Embedding)
	assert.Empty(t, doc.KeywordEmbeddings)
	reason, _ := doc.Check("embedding_generation_reason")
	assert.Equal(t, "EMBEDDING_FAILED", reason)
	assert.False(t, doc.CheckIsTrue("embedding_generation"))
}

func TestEmbeddingNoText(t *testing.T) {
	res, _, _ := newTestResources(t, DefaultSettings())

	doc := &core.Document{URL: "https://news.example.com/e/3"}
	doc.EnsureID()

	outcome := runEmbedding(context.Background(), doc, res)

	assert.Equal(t, core.ActionAdvance, outcome.Kind)
	assert.Nil(t, doc.Embedding)
	reason, _ := doc.Check("embedding_generation_reason")
	assert.Equal(t, "NO_TEXT_TO_EMBED", reason)
}

func TestFinalizationSavesAndIndexes(t *testing.T) {
	ctx := context.Background()
	res, _, _ := newTestResources(t, DefaultSettings())

	doc := freshDocument("https://news.example.com/f/1")
	doc.Content = "금융통화위원회 기준금리 동결 기사 본문"
	doc.Embedding = mock.DeterministicVector(doc.Content, 384)

	outcome := runFinalization(ctx, doc, res)

	assert.Equal(t, core.ActionComplete, outcome.Kind)
	assert.True(t, doc.CheckIsTrue("finalization_completed"))
	assert.True(t, doc.CheckIsTrue("saved_to_main_db"))
	assert.False(t, doc.CheckIsTrue("blacklisted"))

	saved, err := res.Documents.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.Content, saved.Content)

	vector, meta, err := res.Vectors.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Len(t, vector, 384)
	assert.Equal(t, doc.URL, meta.URL)
}

func TestFinalizationRejectsNearDuplicate(t *testing.T) {
	ctx := context.Background()
	res, _, _ := newTestResources(t, DefaultSettings())

	first := freshDocument("https://news.example.com/f/original")
	first.Content = "동일한 기사 본문"
	first.Embedding = mock.DeterministicVector("동일한 텍스트", 384)
	require.Equal(t, core.ActionComplete, runFinalization(ctx, first, res).Kind)

	second := freshDocument("https://news.example.com/f/copy")
	second.Content = "동일한 기사 본문"
	second.Embedding = mock.DeterministicVector("동일한 텍스트", 384)

	outcome := runFinalization(ctx, second, res)

	assert.Equal(t, core.ActionBlacklist, outcome.Kind)
	assert.Equal(t, "duplicate_content_similarity", outcome.Reason)
	assert.False(t, second.CheckIsTrue("saved_to_main_db"))
	assert.True(t, second.CheckIsTrue("blacklisted"))
	reason, _ := second.Check("finalization_reason")
	assert.Contains(t, reason, "SIMILARITY_DUPLICATE_CONTENT")
	assert.Contains(t, reason, first.ID)

	// The duplicate never reaches the primary store.
	_, err := res.Documents.Get(ctx, second.ID)
	assert.Error(t, err)
}

func TestFinalizationReindexSameIDIsNotDuplicate(t *testing.T) {
	ctx := context.Background()
	res, _, _ := newTestResources(t, DefaultSettings())

	doc := freshDocument("https://news.example.com/f/again")
	doc.Content = "재처리되는 기사 본문"
	doc.Embedding = mock.DeterministicVector(doc.Content, 384)

	require.Equal(t, core.ActionComplete, runFinalization(ctx, doc, res).Kind)
	// Re-running the same record must not trip over its own vector.
	require.Equal(t, core.ActionComplete, runFinalization(ctx, doc, res).Kind)
}

func TestFinalizationBelowThresholdSaves(t *testing.T) {
	ctx := context.Background()
	res, _, _ := newTestResources(t, DefaultSettings())

	first := freshDocument("https://news.example.com/f/a")
	first.Content = "기준금리 동결 기사"
	first.Embedding = mock.DeterministicVector("완전히 다른 첫번째 텍스트", 384)
	require.Equal(t, core.ActionComplete, runFinalization(ctx, first, res).Kind)

	second := freshDocument("https://news.example.com/f/b")
	second.Content = "부동산 정책 기사"
	second.Embedding = mock.DeterministicVector("전혀 무관한 두번째 텍스트", 384)

	outcome := runFinalization(ctx, second, res)

	assert.Equal(t, core.ActionComplete, outcome.Kind)
	assert.True(t, second.CheckIsTrue("saved_to_main_db"))
}

func TestFinalizationWithoutEmbeddingSaves(t *testing.T) {
	ctx := context.Background()
	res, _, _ := newTestResources(t, DefaultSettings())

	doc := freshDocument("https://news.example.com/f/novec")
	doc.Content = "임베딩 없이 저장되는 본문"

	outcome := runFinalization(ctx, doc, res)

	assert.Equal(t, core.ActionComplete, outcome.Kind)
	assert.True(t, doc.CheckIsTrue("saved_to_main_db"))
	note, _ := doc.Check("finalization_note")
	assert.Equal(t, "NO_EMBEDDING_FOR_VECTOR_INDEX", note)

	_, _, err := res.Vectors.Get(ctx, doc.ID)
	assert.Error(t, err)
}

func TestFinalizationPrimarySaveFailureBlacklists(t *testing.T) {
	ctx := context.Background()
	res, _, _ := newTestResources(t, DefaultSettings())
	res.Documents = &failingDocumentStore{}

	doc := freshDocument("https://news.example.com/f/broken")
	doc.Content = "저장에 실패하는 본문"

	outcome := runFinalization(ctx, doc, res)

	assert.Equal(t, core.ActionBlacklist, outcome.Kind)
	assert.Equal(t, "failed_primary_save", outcome.Reason)
	assert.False(t, doc.CheckIsTrue("saved_to_main_db"))
	reason, _ := doc.Check("finalization_reason")
	assert.Equal(t, "PRIMARY_SAVE_FAILED", reason)
}

// failingDocumentStore rejects every write.
type failingDocumentStore struct{}

func (s *failingDocumentStore) Put(ctx context.Context, doc *core.Document) error {
	return fmt.Errorf("disk full")
}

func (s *failingDocumentStore) Get(ctx context.Context, id string) (*core.Document, error) {
	return nil, fmt.Errorf("disk full")
}

func (s *failingDocumentStore) Exists(ctx context.Context, id string) (bool, error) {
	return false, nil
}

func (s *failingDocumentStore) Delete(ctx context.Context, id string) error {
	return fmt.Errorf("disk full")
}

func (s *failingDocumentStore) Count(ctx context.Context) (int, error) {
	return 0, nil
}

func (s *failingDocumentStore) List(ctx context.Context) ([]*core.Document, error) {
	return nil, fmt.Errorf("disk full")
}
