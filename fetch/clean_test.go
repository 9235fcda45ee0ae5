package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanTextStripsMarkupAndLowercases(t *testing.T) {
	in := "<p>삼성전자 Q3 실적 &amp; 전망</p>"
	assert.Equal(t, "삼성전자 q3 실적 전망", CleanText(in))
}

func TestCleanTextKeepsAllowedPunctuation(t *testing.T) {
	in := "금리는 3.5%로 동결! 맞나요? 네, 그렇습니다."
	assert.Equal(t, "금리는 3.5%로 동결! 맞나요? 네, 그렇습니다.", CleanText(in))
}

func TestCleanTextDropsDisallowedCharacters(t *testing.T) {
	in := "价格 ₩1000 #해시 @멘션 [대괄호]"
	got := CleanText(in)
	assert.NotContains(t, got, "#")
	assert.NotContains(t, got, "@")
	assert.NotContains(t, got, "[")
	assert.NotContains(t, got, "₩")
	assert.Contains(t, got, "1000")
	assert.Contains(t, got, "해시")
}

func TestCleanTextCollapsesWhitespace(t *testing.T) {
	in := "  첫   줄 \n\n 둘째\t줄  "
	assert.Equal(t, "첫 줄 둘째 줄", CleanText(in))
}

func TestCleanTextEmpty(t *testing.T) {
	assert.Equal(t, "", CleanText(""))
	assert.Equal(t, "", CleanText("   \n\t "))
}

func TestCleanTextReplacesReplacementChar(t *testing.T) {
	in := "앞�뒤"
	assert.Equal(t, "앞 뒤", CleanText(in))
}

func TestIsNaverNews(t *testing.T) {
	assert.True(t, IsNaverNews("https://n.news.naver.com/mnews/article/001/0012345678"))
	assert.True(t, IsNaverNews("https://sports.naver.com/news?oid=001&aid=0012345678"))
	assert.False(t, IsNaverNews("https://news.example.com/article/1"))
	assert.False(t, IsNaverNews(""))
}
