package fetch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const naverPage = `<!DOCTYPE html>
<html><head><title>뉴스</title></head><body>
<nav>메뉴 목록</nav>
<div id="dic_area">
  <div>삼성전자가 3분기 잠정 실적을 발표했다. 영업이익은 시장 전망치를 웃돌았다.</div>
  <div>반도체 부문이 실적 개선을 이끌었다는 분석이 나온다. 메모리 가격 반등이 주효했다.</div>
  <div class="ad">광고 배너입니다</div>
</div>
<footer>회사 소개</footer>
</body></html>`

const genericPage = `<!DOCTYPE html>
<html><head>
<meta property="og:title" content="금리 동결 결정" />
<meta property="article:published_time" content="2026-08-30T09:00:00+09:00" />
</head><body>
<header>사이트 헤더</header>
<article>
  <p>한국은행 금융통화위원회가 기준금리를 현 수준에서 동결하기로 결정했다.</p>
  <p>물가 상승세 둔화와 가계부채 부담을 함께 고려한 결정으로 풀이된다.</p>
  <p>짧은 문장.</p>
  <div class="share">공유하기</div>
</article>
<script>var tracker = 1;</script>
</body></html>`

func TestScrapeNaverSelectors(t *testing.T) {
	text, err := Scrape(naverPage, true)
	require.NoError(t, err)

	assert.Contains(t, text, "삼성전자가 3분기 잠정 실적을 발표했다")
	assert.Contains(t, text, "반도체 부문이 실적 개선을 이끌었다")
	assert.NotContains(t, text, "광고 배너")
	assert.NotContains(t, text, "메뉴 목록")
}

func TestScrapeGenericSelectors(t *testing.T) {
	text, err := Scrape(genericPage, false)
	require.NoError(t, err)

	assert.Contains(t, text, "기준금리를 현 수준에서 동결")
	assert.Contains(t, text, "가계부채 부담")
	// Paragraphs of 20 chars or fewer are boilerplate noise.
	assert.NotContains(t, text, "짧은 문장")
	assert.NotContains(t, text, "공유하기")
	assert.NotContains(t, text, "tracker")
}

func TestScrapeNaverPageWithoutContainer(t *testing.T) {
	_, err := Scrape("<html><body><p>no naver container here</p></body></html>", true)
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestScrapeFallsBackToBodyText(t *testing.T) {
	page := `<html><body><div class="odd-layout">컨테이너 없이 본문만 길게 쓰여 있는 오래된 형식의 페이지입니다.</div></body></html>`
	text, err := Scrape(page, false)
	require.NoError(t, err)
	assert.Contains(t, text, "오래된 형식의 페이지")
}

func TestReadArticle(t *testing.T) {
	article, err := ReadArticle(genericPage)
	require.NoError(t, err)

	assert.Equal(t, "금리 동결 결정", article.Title)
	assert.Equal(t, "2026-08-30T09:00:00+09:00", article.PublishedAt)
	assert.Contains(t, article.Body, "기준금리를 현 수준에서 동결")
}

func TestReadArticleTitleFallbacks(t *testing.T) {
	page := `<html><head><title>타이틀 태그 제목</title></head><body>
<article><p>` + strings.Repeat("본문 문장입니다. ", 5) + `</p></article></body></html>`

	article, err := ReadArticle(page)
	require.NoError(t, err)
	assert.Equal(t, "타이틀 태그 제목", article.Title)
	assert.Empty(t, article.PublishedAt)
}

func TestReadArticleNoContent(t *testing.T) {
	article, err := ReadArticle("<html><body><nav>메뉴</nav></body></html>")
	assert.ErrorIs(t, err, ErrNoContent)
	assert.NotNil(t, article)
}
